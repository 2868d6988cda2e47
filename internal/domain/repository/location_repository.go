package repository

import (
	"context"

	"github.com/jhoicas/stock-relocation/internal/domain/entity"
)

// LocationRepository lectura del árbol de ubicaciones (maestro).
type LocationRepository interface {
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Location, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Location, error)
	ListByType(ctx context.Context, locType string) ([]*entity.Location, error)
}
