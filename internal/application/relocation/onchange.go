package relocation

import (
	"context"
	"time"

	"github.com/jhoicas/stock-relocation/internal/domain/entity"
	"github.com/jhoicas/stock-relocation/internal/domain/repository"
	"github.com/jhoicas/stock-relocation/internal/domain/stock"
	"github.com/shopspring/decimal"
)

// Form estado editable del formulario de una reubicación en borrador.
type Form struct {
	ProductID      string
	WarehouseID    string
	FromLocationID string
	UomID          string
	UnitDigits     int32
	Quantity       decimal.Decimal
}

// FormUseCase recalcula los campos derivados de una reubicación mientras se edita.
type FormUseCase struct {
	productRepo repository.ProductRepository
	uomRepo     repository.UomRepository
	prodLocRepo repository.ProductLocationRepository
	stockRepo   repository.StockRepository
	now         func() time.Time
}

// NewFormUseCase construye el caso de uso. now puede ser nil (time.Now).
func NewFormUseCase(
	productRepo repository.ProductRepository,
	uomRepo repository.UomRepository,
	prodLocRepo repository.ProductLocationRepository,
	stockRepo repository.StockRepository,
	now func() time.Time,
) *FormUseCase {
	if now == nil {
		now = time.Now
	}
	return &FormUseCase{
		productRepo: productRepo,
		uomRepo:     uomRepo,
		prodLocRepo: prodLocRepo,
		stockRepo:   stockRepo,
		now:         now,
	}
}

// UnitDigits precisión de la unidad uomID; 2 si no hay unidad.
func (uc *FormUseCase) UnitDigits(ctx context.Context, uomID string) (int32, error) {
	if uomID == "" {
		return entity.DefaultUnitDigits, nil
	}
	uom, err := uc.uomRepo.GetByID(ctx, uomID)
	if err != nil {
		return 0, err
	}
	return stock.UnitDigits(uom), nil
}

// OnChangeProduct reinicia unidad y ubicación origen; con producto, toma su unidad por defecto
// y recalcula origen y cantidad con UpdateQuantity.
func (uc *FormUseCase) OnChangeProduct(ctx context.Context, f Form) (Form, error) {
	f.UomID = ""
	f.UnitDigits = entity.DefaultUnitDigits
	f.FromLocationID = ""
	if f.ProductID == "" {
		return f, nil
	}
	product, err := uc.productRepo.GetByID(ctx, f.ProductID)
	if err != nil {
		return f, err
	}
	if product == nil {
		return f, nil
	}
	f.UomID = product.DefaultUomID
	if f.UnitDigits, err = uc.UnitDigits(ctx, f.UomID); err != nil {
		return f, err
	}
	return uc.UpdateQuantity(ctx, f)
}

// UpdateQuantity infiere la ubicación origen (primera asociación del producto en la bodega del
// formulario) si falta, y con origen conocido fija la cantidad a las existencias de hoy en esa ubicación.
func (uc *FormUseCase) UpdateQuantity(ctx context.Context, f Form) (Form, error) {
	if f.ProductID == "" {
		return f, nil
	}
	if f.FromLocationID == "" && f.WarehouseID != "" {
		assocs, err := uc.prodLocRepo.ListByProduct(ctx, f.ProductID)
		if err != nil {
			return f, err
		}
		for _, a := range assocs {
			if a.WarehouseID == f.WarehouseID {
				f.FromLocationID = a.LocationID
				break
			}
		}
	}
	if f.FromLocationID == "" {
		return f, nil
	}
	qty, err := uc.onHand(ctx, f.FromLocationID, f.ProductID)
	if err != nil {
		return f, err
	}
	f.Quantity = qty
	return f, nil
}

// OnChangeWithQuantity cantidad disponible mostrada en el formulario: cero salvo que
// producto, bodega y ubicación origen estén definidos.
func (uc *FormUseCase) OnChangeWithQuantity(ctx context.Context, f Form) (decimal.Decimal, error) {
	if f.ProductID == "" || f.WarehouseID == "" || f.FromLocationID == "" {
		return decimal.Zero, nil
	}
	f, err := uc.UpdateQuantity(ctx, f)
	if err != nil {
		return decimal.Zero, err
	}
	return f.Quantity, nil
}

func (uc *FormUseCase) onHand(ctx context.Context, locationID, productID string) (decimal.Decimal, error) {
	today := stock.BusinessDate(uc.now())
	q, err := uc.stockRepo.ProductsByLocation(ctx, []string{locationID}, []string{productID}, today)
	if err != nil {
		return decimal.Zero, err
	}
	return q.Get(stock.Key{LocationID: locationID, ProductID: productID}), nil
}
