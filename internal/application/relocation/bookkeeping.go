package relocation

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-relocation/internal/domain"
	"github.com/jhoicas/stock-relocation/internal/domain/entity"
	"github.com/jhoicas/stock-relocation/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// updateProductLocations mantiene las asociaciones producto-ubicación implicadas por una reubicación válida:
//   - crea la del destino (secuencia 999) si el producto no la tiene;
//   - si la reubicación vacía el origen y origen y destino están en la misma bodega, borra la del origen.
func updateProductLocations(ctx context.Context, repos TxRepos, r *entity.Relocation, available decimal.Decimal) error {
	assocs, err := repos.ProductLocations.ListByProduct(ctx, r.ProductID)
	if err != nil {
		return err
	}

	to, err := repos.Locations.GetByID(ctx, r.ToLocationID)
	if err != nil {
		return err
	}
	if to == nil {
		return fmt.Errorf("ubicación destino %s: %w", r.ToLocationID, domain.ErrNotFound)
	}
	toWarehouse, err := stock.WarehouseOf(ctx, to, repos.Locations.GetByID)
	if err != nil {
		return err
	}

	if !hasLocation(assocs, to.ID) {
		if toWarehouse == nil {
			return fmt.Errorf("ubicación destino %s sin bodega: %w", to.ID, domain.ErrInvalidLocation)
		}
		pl := &entity.ProductLocation{
			ProductID:   r.ProductID,
			WarehouseID: toWarehouse.ID,
			LocationID:  to.ID,
			Sequence:    entity.PlaceholderSequence,
		}
		if err := repos.ProductLocations.Create(ctx, pl); err != nil {
			return err
		}
	}

	// Sin salida real de existencias el origen no queda vacío.
	if !r.Quantity.Equal(available) || r.FromLocationID == to.ID {
		return nil
	}
	from, err := repos.Locations.GetByID(ctx, r.FromLocationID)
	if err != nil {
		return err
	}
	if from == nil {
		return fmt.Errorf("ubicación origen %s: %w", r.FromLocationID, domain.ErrNotFound)
	}
	fromWarehouse, err := stock.WarehouseOf(ctx, from, repos.Locations.GetByID)
	if err != nil {
		return err
	}
	// Entre bodegas distintas la asociación del origen se conserva aunque quede vacío.
	if !stock.SameWarehouse(fromWarehouse, toWarehouse) {
		return nil
	}
	var toDelete []string
	for _, a := range assocs {
		if a.LocationID == from.ID {
			toDelete = append(toDelete, a.ID)
		}
	}
	if len(toDelete) == 0 {
		return nil
	}
	return repos.ProductLocations.Delete(ctx, toDelete)
}

func hasLocation(assocs []*entity.ProductLocation, locationID string) bool {
	for _, a := range assocs {
		if a.LocationID == locationID {
			return true
		}
	}
	return false
}
