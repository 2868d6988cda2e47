package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-relocation/internal/domain"
	"github.com/jhoicas/stock-relocation/internal/domain/entity"
	"github.com/jhoicas/stock-relocation/internal/domain/repository"
)

var _ repository.MoveRepository = (*MoveRepo)(nil)

// MoveRepo persistencia de movimientos de stock (usable con pool o tx).
type MoveRepo struct {
	q Querier
}

// NewMoveRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMoveRepository(q Querier) *MoveRepo {
	return &MoveRepo{q: q}
}

// CreateBatch inserta los movimientos en un único lote. Asigna ID a los que no lo tienen.
func (r *MoveRepo) CreateBatch(ctx context.Context, moves []*entity.Move) error {
	query := `
		INSERT INTO stock_moves (id, product_id, uom_id, quantity, from_location_id, to_location_id, state,
			planned_date, effective_date, company_id, cost_price, unit_price, origin_model, origin_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NULLIF($13, ''), NULLIF($14, ''), $15)`
	b := &pgx.Batch{}
	for _, m := range moves {
		if !m.Origin.Valid() {
			return fmt.Errorf("%w: %s", domain.ErrInvalidOrigin, m.Origin.Model)
		}
		if m.ID == "" {
			m.ID = uuid.New().String()
		}
		b.Queue(query,
			m.ID, m.ProductID, m.UomID, m.Quantity, m.FromLocationID, m.ToLocationID, m.State,
			nullTime(m.PlannedDate), nullTime(m.EffectiveDate), m.CompanyID, m.CostPrice, m.UnitPrice,
			m.Origin.Model, m.Origin.ID, m.CreatedAt,
		)
	}
	if err := execBatch(ctx, r.q, b); err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return fmt.Errorf("insert moves: %w", err)
	}
	return nil
}

// Do marca los movimientos como realizados con su fecha efectiva.
func (r *MoveRepo) Do(ctx context.Context, moves []*entity.Move, effectiveDate time.Time) error {
	if len(moves) == 0 {
		return nil
	}
	ids := make([]string, len(moves))
	for i, m := range moves {
		ids[i] = m.ID
	}
	query := `UPDATE stock_moves SET state = 'done', effective_date = $2 WHERE id = ANY($1) AND state = 'draft'`
	tag, err := r.q.Exec(ctx, query, ids, effectiveDate)
	if err != nil {
		return fmt.Errorf("do moves: %w", err)
	}
	if tag.RowsAffected() != int64(len(ids)) {
		return fmt.Errorf("do moves: %d de %d movimientos: %w", tag.RowsAffected(), len(ids), domain.ErrConflict)
	}
	for _, m := range moves {
		m.State = entity.MoveStateDone
		m.EffectiveDate = effectiveDate
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MoveRepo) GetByID(ctx context.Context, id string) (*entity.Move, error) {
	query := `
		SELECT id, product_id, uom_id, quantity, from_location_id, to_location_id, state,
			planned_date, effective_date, company_id, cost_price, unit_price,
			COALESCE(origin_model, ''), COALESCE(origin_id, ''), created_at
		FROM stock_moves WHERE id = $1`
	var (
		m                    entity.Move
		planned, effectiveAt *time.Time
	)
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.ProductID, &m.UomID, &m.Quantity, &m.FromLocationID, &m.ToLocationID, &m.State,
		&planned, &effectiveAt, &m.CompanyID, &m.CostPrice, &m.UnitPrice,
		&m.Origin.Model, &m.Origin.ID, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get move: %w", err)
	}
	if planned != nil {
		m.PlannedDate = *planned
	}
	if effectiveAt != nil {
		m.EffectiveDate = *effectiveAt
	}
	return &m, nil
}

// nullTime NULL para la fecha cero.
func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
