package repository

import (
	"context"

	"github.com/jhoicas/stock-relocation/internal/domain/entity"
)

// RelocationFilter filtros de listado de reubicaciones.
type RelocationFilter struct {
	CompanyID string
	State     string // vacío = todos
	Limit     int
	Offset    int
}

// RelocationRepository persistencia de reubicaciones.
// Los listados usan el orden por defecto: fecha planificada DESC, bodega, ubicación origen, ID.
type RelocationRepository interface {
	Create(ctx context.Context, r *entity.Relocation) error
	// GetByID devuelve nil, nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Relocation, error)
	// GetByIDs devuelve las reubicaciones existentes en el orden por defecto.
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Relocation, error)
	List(ctx context.Context, f RelocationFilter) ([]*entity.Relocation, error)
	Update(ctx context.Context, r *entity.Relocation) error
	// SaveConfirmed persiste move_id y state de todas las reubicaciones en un solo lote.
	SaveConfirmed(ctx context.Context, rs []*entity.Relocation) error
	Delete(ctx context.Context, id string) error
}
