package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-relocation/internal/domain/entity"
)

// MoveRepository persistencia de movimientos de stock.
type MoveRepository interface {
	// CreateBatch inserta los movimientos en una sola ida al servidor y les asigna ID.
	CreateBatch(ctx context.Context, moves []*entity.Move) error
	// Do marca los movimientos como realizados con su fecha efectiva.
	Do(ctx context.Context, moves []*entity.Move, effectiveDate time.Time) error
	GetByID(ctx context.Context, id string) (*entity.Move, error)
}
