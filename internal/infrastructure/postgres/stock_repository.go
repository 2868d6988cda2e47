package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-relocation/internal/domain/repository"
	"github.com/jhoicas/stock-relocation/internal/domain/stock"
	"github.com/shopspring/decimal"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// Entradas menos salidas de movimientos realizados hasta la fecha, sin previsión.
// Solo la ubicación pedida, sin sumar sus hijas.
const productsByLocationQuery = `
	SELECT location_id, product_id, SUM(qty)
	FROM (
		SELECT to_location_id AS location_id, product_id, quantity AS qty
		FROM stock_moves
		WHERE state = 'done' AND effective_date <= $3
		  AND to_location_id = ANY($1) AND product_id = ANY($2)
		UNION ALL
		SELECT from_location_id AS location_id, product_id, -quantity AS qty
		FROM stock_moves
		WHERE state = 'done' AND effective_date <= $3
		  AND from_location_id = ANY($1) AND product_id = ANY($2)
	) m
	GROUP BY location_id, product_id`

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// ProductsByLocation calcula las existencias por (ubicación, producto) en una sola consulta.
func (r *StockRepo) ProductsByLocation(ctx context.Context, locationIDs, productIDs []string, date time.Time) (stock.Quantities, error) {
	out := make(stock.Quantities)
	if len(locationIDs) == 0 || len(productIDs) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, productsByLocationQuery, locationIDs, productIDs, date)
	if err != nil {
		return nil, fmt.Errorf("products by location: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			key stock.Key
			qty decimal.Decimal
		)
		if err := rows.Scan(&key.LocationID, &key.ProductID, &qty); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out[key] = qty
	}
	return out, rows.Err()
}
