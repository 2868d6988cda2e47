package repository

import (
	"context"

	"github.com/jhoicas/stock-relocation/internal/domain/entity"
)

// UomRepository lectura de unidades de medida.
type UomRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Uom, error)
}
