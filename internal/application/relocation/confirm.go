package relocation

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-relocation/internal/domain"
	"github.com/jhoicas/stock-relocation/internal/domain/entity"
	"github.com/jhoicas/stock-relocation/internal/domain/stock"
	"github.com/jhoicas/stock-relocation/pkg/logger"
	"github.com/shopspring/decimal"
)

// ConfirmInput reubicaciones a confirmar por un usuario de una empresa.
type ConfirmInput struct {
	CompanyID string
	UserID    string
	IDs       []string
}

// Warning aviso no bloqueante: la reubicación no se confirmó por falta de existencias.
type Warning struct {
	Key          string
	RelocationID string
	ProductID    string
	ProductName  string
	LocationID   string
	LocationName string
	Available    decimal.Decimal
	Requested    decimal.Decimal
	Message      string
}

// ConfirmedRelocation reubicación confirmada y el movimiento que generó.
type ConfirmedRelocation struct {
	RelocationID string
	MoveID       string
}

// ConfirmResult resultado de una confirmación por lotes.
type ConfirmResult struct {
	Confirmed []ConfirmedRelocation
	Warnings  []Warning
}

// ConfirmUseCase confirma reubicaciones en borrador: valida existencias, genera movimientos
// realizados y pasa las reubicaciones a done, todo en una transacción.
type ConfirmUseCase struct {
	txRunner  TxRunner
	publisher EventPublisher
	metrics   ConfirmMetrics
	log       *logger.Logger
	now       func() time.Time
}

// ConfirmOption configura opcionalmente el caso de uso.
type ConfirmOption func(*ConfirmUseCase)

// WithPublisher publica un evento por reubicación confirmada.
func WithPublisher(p EventPublisher) ConfirmOption {
	return func(uc *ConfirmUseCase) { uc.publisher = p }
}

// WithMetrics registra métricas de cada confirmación.
func WithMetrics(m ConfirmMetrics) ConfirmOption {
	return func(uc *ConfirmUseCase) { uc.metrics = m }
}

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) ConfirmOption {
	return func(uc *ConfirmUseCase) { uc.now = now }
}

// NewConfirmUseCase construye el caso de uso.
func NewConfirmUseCase(txRunner TxRunner, log *logger.Logger, opts ...ConfirmOption) *ConfirmUseCase {
	uc := &ConfirmUseCase{
		txRunner:  txRunner,
		publisher: nopPublisher{},
		metrics:   nopMetrics{},
		log:       log,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Confirm procesa las reubicaciones en el orden por defecto. Una reubicación sin existencias
// suficientes en su origen queda en borrador y produce un Warning; cualquier otro error
// aborta el lote completo (rollback).
func (uc *ConfirmUseCase) Confirm(ctx context.Context, in ConfirmInput) (*ConfirmResult, error) {
	ids := uniqueIDs(in.IDs)
	if in.CompanyID == "" || len(ids) == 0 {
		return nil, domain.ErrInvalidInput
	}

	start := uc.now()
	today := stock.BusinessDate(start)

	var (
		result    *ConfirmResult
		confirmed []*entity.Relocation
	)
	err := uc.txRunner.Run(ctx, func(repos TxRepos) error {
		result = &ConfirmResult{}
		confirmed = nil

		relocations, err := repos.Relocations.GetByIDs(ctx, ids)
		if err != nil {
			return err
		}
		if len(relocations) != len(ids) {
			return domain.ErrNotFound
		}
		for _, r := range relocations {
			if r.CompanyID != in.CompanyID {
				return domain.ErrNotFound
			}
			if !r.IsDraft() {
				return fmt.Errorf("reubicación %s: %w", r.ID, domain.ErrNotDraft)
			}
		}

		locationIDs, productIDs := pairsOf(relocations)
		available, err := repos.Stock.ProductsByLocation(ctx, locationIDs, productIDs, today)
		if err != nil {
			return err
		}
		products, err := repos.Products.GetByIDs(ctx, productIDs)
		if err != nil {
			return err
		}
		locations, err := repos.Locations.GetByIDs(ctx, locationIDs)
		if err != nil {
			return err
		}

		var moves []*entity.Move
		for _, r := range relocations {
			product := products[r.ProductID]
			if product == nil {
				return fmt.Errorf("producto %s: %w", r.ProductID, domain.ErrNotFound)
			}
			key := stock.Key{LocationID: r.FromLocationID, ProductID: r.ProductID}

			qty := available.Get(key)
			if qty.IsZero() {
				result.Warnings = append(result.Warnings, newWarning(r, product, locations[r.FromLocationID], qty))
				continue
			}
			// Las siguientes reubicaciones del mismo par ya no ven estas existencias.
			available.Take(key)

			if r.Quantity.GreaterThan(qty) {
				result.Warnings = append(result.Warnings, newWarning(r, product, locations[r.FromLocationID], qty))
				continue
			}

			if err := updateProductLocations(ctx, repos, r, qty); err != nil {
				return err
			}
			moves = append(moves, newMove(r, product, today, start))
			confirmed = append(confirmed, r)
		}

		if len(moves) == 0 {
			return nil
		}
		if err := repos.Moves.CreateBatch(ctx, moves); err != nil {
			return err
		}
		if err := repos.Moves.Do(ctx, moves, today); err != nil {
			return err
		}
		for i, m := range moves {
			r := confirmed[i]
			r.MoveID = m.ID
			r.State = entity.RelocationStateDone
			r.UpdatedAt = start
			result.Confirmed = append(result.Confirmed, ConfirmedRelocation{RelocationID: r.ID, MoveID: m.ID})
		}
		return repos.Relocations.SaveConfirmed(ctx, confirmed)
	})
	if err != nil {
		uc.log.Error().Err(err).Strs("relocation_ids", ids).Msg("confirmación de reubicaciones abortada")
		return nil, err
	}

	for _, w := range result.Warnings {
		uc.log.Warn().
			Str("relocation_id", w.RelocationID).
			Str("product_id", w.ProductID).
			Str("location_id", w.LocationID).
			Str("available", w.Available.String()).
			Str("requested", w.Requested.String()).
			Msg("reubicación sin existencias suficientes")
	}
	uc.log.Info().
		Int("confirmed", len(result.Confirmed)).
		Int("rejected", len(result.Warnings)).
		Msg("reubicaciones confirmadas")
	uc.metrics.ObserveConfirm(len(result.Confirmed), len(result.Warnings), uc.now().Sub(start))

	if len(confirmed) > 0 {
		events := make([]ConfirmedEvent, 0, len(confirmed))
		for _, r := range confirmed {
			events = append(events, ConfirmedEvent{
				RelocationID:   r.ID,
				MoveID:         r.MoveID,
				CompanyID:      r.CompanyID,
				ProductID:      r.ProductID,
				FromLocationID: r.FromLocationID,
				ToLocationID:   r.ToLocationID,
				Quantity:       r.Quantity.String(),
				ConfirmedAt:    start,
				ConfirmedBy:    in.UserID,
			})
		}
		// La confirmación ya está persistida; un fallo al publicar no la revierte.
		if err := uc.publisher.PublishConfirmed(ctx, events); err != nil {
			uc.log.Error().Err(err).Int("events", len(events)).Msg("publicar eventos de reubicación")
		}
	}
	return result, nil
}

// newMove construye el movimiento (aún sin persistir) de una reubicación válida.
func newMove(r *entity.Relocation, product *entity.Product, today, now time.Time) *entity.Move {
	return &entity.Move{
		ProductID:      r.ProductID,
		UomID:          r.UomID,
		Quantity:       r.Quantity,
		FromLocationID: r.FromLocationID,
		ToLocationID:   r.ToLocationID,
		State:          entity.MoveStateDraft,
		PlannedDate:    r.PlannedDate,
		EffectiveDate:  today,
		CompanyID:      r.CompanyID,
		CostPrice:      product.CostPrice,
		UnitPrice:      product.ListPrice,
		Origin:         entity.Origin{Model: entity.OriginRelocation, ID: r.ID},
		CreatedAt:      now,
	}
}

func newWarning(r *entity.Relocation, product *entity.Product, from *entity.Location, available decimal.Decimal) Warning {
	locationName := r.FromLocationID
	if from != nil {
		locationName = from.Name
	}
	productName := product.RecName()
	return Warning{
		Key:          r.WarningKey(),
		RelocationID: r.ID,
		ProductID:    r.ProductID,
		ProductName:  productName,
		LocationID:   r.FromLocationID,
		LocationName: locationName,
		Available:    available,
		Requested:    r.Quantity,
		Message: fmt.Sprintf(
			"no se puede crear el movimiento: hay %s de \"%s\" en \"%s\" y se intenta reubicar %s unidades",
			available.String(), productName, locationName, r.Quantity.String(),
		),
	}
}

// pairsOf IDs distintos de ubicaciones origen y productos, en orden de aparición.
func pairsOf(rs []*entity.Relocation) (locationIDs, productIDs []string) {
	seenLoc := make(map[string]struct{})
	seenProd := make(map[string]struct{})
	for _, r := range rs {
		if _, ok := seenLoc[r.FromLocationID]; !ok {
			seenLoc[r.FromLocationID] = struct{}{}
			locationIDs = append(locationIDs, r.FromLocationID)
		}
		if _, ok := seenProd[r.ProductID]; !ok {
			seenProd[r.ProductID] = struct{}{}
			productIDs = append(productIDs, r.ProductID)
		}
	}
	return locationIDs, productIDs
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
