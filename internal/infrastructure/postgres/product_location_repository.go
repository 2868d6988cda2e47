package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-relocation/internal/domain/entity"
	"github.com/jhoicas/stock-relocation/internal/domain/repository"
)

var _ repository.ProductLocationRepository = (*ProductLocationRepo)(nil)

// ProductLocationRepo asociaciones producto-ubicación sobre PostgreSQL (usable con pool o tx).
type ProductLocationRepo struct {
	q Querier
}

// NewProductLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductLocationRepository(q Querier) *ProductLocationRepo {
	return &ProductLocationRepo{q: q}
}

// ListByProduct lista las asociaciones del producto ordenadas por ubicación.
func (r *ProductLocationRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.ProductLocation, error) {
	query := `
		SELECT id, product_id, warehouse_id, location_id, sequence
		FROM stock_product_locations
		WHERE product_id = $1
		ORDER BY location_id, sequence, id`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list product locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductLocation
	for rows.Next() {
		var pl entity.ProductLocation
		if err := rows.Scan(&pl.ID, &pl.ProductID, &pl.WarehouseID, &pl.LocationID, &pl.Sequence); err != nil {
			return nil, fmt.Errorf("scan product location: %w", err)
		}
		list = append(list, &pl)
	}
	return list, rows.Err()
}

// Create persiste una asociación; asigna ID si no lo tiene.
func (r *ProductLocationRepo) Create(ctx context.Context, pl *entity.ProductLocation) error {
	if pl.ID == "" {
		pl.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_product_locations (id, product_id, warehouse_id, location_id, sequence)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, pl.ID, pl.ProductID, pl.WarehouseID, pl.LocationID, pl.Sequence); err != nil {
		return fmt.Errorf("insert product location: %w", err)
	}
	return nil
}

// Delete borra las asociaciones indicadas.
func (r *ProductLocationRepo) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_product_locations WHERE id = ANY($1)`, ids); err != nil {
		return fmt.Errorf("delete product locations: %w", err)
	}
	return nil
}
