package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-relocation/internal/domain/entity"
	"github.com/jhoicas/stock-relocation/internal/domain/repository"
)

var _ repository.StockConfigurationRepository = (*StockConfigurationRepo)(nil)

// StockConfigurationRepo configuración de stock (fila única id = 1).
type StockConfigurationRepo struct {
	q Querier
}

// NewStockConfigurationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockConfigurationRepository(q Querier) *StockConfigurationRepo {
	return &StockConfigurationRepo{q: q}
}

// Get devuelve la configuración; vacía si la fila no existe.
func (r *StockConfigurationRepo) Get(ctx context.Context) (*entity.StockConfiguration, error) {
	var cfg entity.StockConfiguration
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(to_relocation_location_id, '') FROM stock_configuration WHERE id = 1`,
	).Scan(&cfg.ToRelocationLocationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockConfiguration{}, nil
		}
		return nil, fmt.Errorf("get stock configuration: %w", err)
	}
	return &cfg, nil
}

// Save inserta o actualiza la fila única.
func (r *StockConfigurationRepo) Save(ctx context.Context, cfg *entity.StockConfiguration) error {
	query := `
		INSERT INTO stock_configuration (id, to_relocation_location_id)
		VALUES (1, NULLIF($1, ''))
		ON CONFLICT (id) DO UPDATE SET to_relocation_location_id = EXCLUDED.to_relocation_location_id`
	if _, err := r.q.Exec(ctx, query, cfg.ToRelocationLocationID); err != nil {
		return fmt.Errorf("save stock configuration: %w", err)
	}
	return nil
}
