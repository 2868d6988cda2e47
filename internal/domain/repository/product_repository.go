package repository

import (
	"context"

	"github.com/jhoicas/stock-relocation/internal/domain/entity"
)

// ProductRepository lectura de productos (maestro).
type ProductRepository interface {
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error)
}
