package relocation

import (
	"context"
	"time"

	"github.com/jhoicas/stock-relocation/internal/domain/entity"
	"github.com/jhoicas/stock-relocation/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Relocations      repository.RelocationRepository
	Moves            repository.MoveRepository
	Stock            repository.StockRepository
	ProductLocations repository.ProductLocationRepository
	Locations        repository.LocationRepository
	Products         repository.ProductRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit si fn devuelve nil, Rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

// ConfigurationReader lectura de la configuración de stock (puede estar cacheada).
type ConfigurationReader interface {
	Get(ctx context.Context) (*entity.StockConfiguration, error)
}

// ConfirmedEvent evento emitido por cada reubicación confirmada (después del commit).
type ConfirmedEvent struct {
	RelocationID   string    `json:"relocation_id"`
	MoveID         string    `json:"move_id"`
	CompanyID      string    `json:"company_id"`
	ProductID      string    `json:"product_id"`
	FromLocationID string    `json:"from_location_id"`
	ToLocationID   string    `json:"to_location_id"`
	Quantity       string    `json:"quantity"`
	ConfirmedAt    time.Time `json:"confirmed_at"`
	ConfirmedBy    string    `json:"confirmed_by"`
}

// EventPublisher publica eventos de reubicación hacia otros sistemas.
type EventPublisher interface {
	PublishConfirmed(ctx context.Context, events []ConfirmedEvent) error
}

// ConfirmMetrics registra el resultado de cada confirmación.
type ConfirmMetrics interface {
	ObserveConfirm(confirmed, rejected int, elapsed time.Duration)
}

type nopPublisher struct{}

func (nopPublisher) PublishConfirmed(context.Context, []ConfirmedEvent) error { return nil }

type nopMetrics struct{}

func (nopMetrics) ObserveConfirm(int, int, time.Duration) {}
