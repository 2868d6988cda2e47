package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-relocation/internal/domain/stock"
)

// StockRepository consulta de existencias calculadas desde los movimientos.
type StockRepository interface {
	// ProductsByLocation devuelve la cantidad disponible por (ubicación, producto) a la fecha date,
	// considerando solo movimientos realizados (sin previsión) y agrupando por producto.
	// Los pares sin movimientos no aparecen en el resultado.
	ProductsByLocation(ctx context.Context, locationIDs, productIDs []string, date time.Time) (stock.Quantities, error)
}
