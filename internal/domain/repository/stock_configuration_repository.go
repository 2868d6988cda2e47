package repository

import (
	"context"

	"github.com/jhoicas/stock-relocation/internal/domain/entity"
)

// StockConfigurationRepository lectura/escritura de la configuración de stock (fila única).
type StockConfigurationRepository interface {
	Get(ctx context.Context) (*entity.StockConfiguration, error)
	Save(ctx context.Context, cfg *entity.StockConfiguration) error
}
