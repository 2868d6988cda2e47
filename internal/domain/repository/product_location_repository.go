package repository

import (
	"context"

	"github.com/jhoicas/stock-relocation/internal/domain/entity"
)

// ProductLocationRepository asociaciones producto-ubicación.
type ProductLocationRepository interface {
	// ListByProduct devuelve las asociaciones del producto ordenadas por ID de ubicación.
	ListByProduct(ctx context.Context, productID string) ([]*entity.ProductLocation, error)
	Create(ctx context.Context, pl *entity.ProductLocation) error
	Delete(ctx context.Context, ids []string) error
}
