package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-relocation/internal/domain"
	"github.com/jhoicas/stock-relocation/internal/domain/entity"
	"github.com/jhoicas/stock-relocation/internal/domain/repository"
)

var _ repository.RelocationRepository = (*RelocationRepo)(nil)

const (
	relocationSelect = `
		SELECT r.id, r.planned_date, r.employee_id, r.warehouse_id, r.from_location_id, r.to_location_id,
			r.product_id, r.quantity, r.uom_id, COALESCE(u.digits, 2), r.company_id, COALESCE(r.move_id, ''),
			r.state, r.created_by, r.created_at, r.updated_at
		FROM stock_relocations r
		LEFT JOIN product_uoms u ON u.id = r.uom_id`
	relocationOrder = ` ORDER BY r.planned_date DESC, r.warehouse_id, r.from_location_id, r.id`
)

// RelocationRepo persistencia de reubicaciones (usable con pool o tx).
type RelocationRepo struct {
	q Querier
}

// NewRelocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRelocationRepository(q Querier) *RelocationRepo {
	return &RelocationRepo{q: q}
}

// Create persiste una reubicación nueva.
func (r *RelocationRepo) Create(ctx context.Context, rel *entity.Relocation) error {
	query := `
		INSERT INTO stock_relocations (id, planned_date, employee_id, warehouse_id, from_location_id, to_location_id,
			product_id, quantity, uom_id, company_id, move_id, state, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''), $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		rel.ID, rel.PlannedDate, rel.EmployeeID, rel.WarehouseID, rel.FromLocationID, rel.ToLocationID,
		rel.ProductID, rel.Quantity, rel.UomID, rel.CompanyID, rel.MoveID, rel.State, rel.CreatedBy,
		rel.CreatedAt, rel.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		if isCheckViolation(err) {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return fmt.Errorf("insert relocation: %w", err)
	}
	return nil
}

// GetByID obtiene una reubicación por ID.
func (r *RelocationRepo) GetByID(ctx context.Context, id string) (*entity.Relocation, error) {
	rel, err := scanRelocation(r.q.QueryRow(ctx, relocationSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get relocation: %w", err)
	}
	return rel, nil
}

// GetByIDs obtiene las reubicaciones existentes en el orden por defecto, bloqueando sus filas
// hasta el fin de la transacción.
func (r *RelocationRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Relocation, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := relocationSelect + ` WHERE r.id = ANY($1)` + relocationOrder + ` FOR UPDATE OF r`
	return r.list(ctx, query, ids)
}

// List lista reubicaciones de una empresa en el orden por defecto. Limit <= 0 = sin límite.
func (r *RelocationRepo) List(ctx context.Context, f repository.RelocationFilter) ([]*entity.Relocation, error) {
	var (
		sb   strings.Builder
		args = []any{f.CompanyID}
	)
	sb.WriteString(relocationSelect)
	sb.WriteString(` WHERE r.company_id = $1`)
	if f.State != "" {
		args = append(args, f.State)
		fmt.Fprintf(&sb, ` AND r.state = $%d`, len(args))
	}
	sb.WriteString(relocationOrder)
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&sb, ` LIMIT $%d`, len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		fmt.Fprintf(&sb, ` OFFSET $%d`, len(args))
	}
	return r.list(ctx, sb.String(), args...)
}

// Update guarda los campos editables de una reubicación en borrador.
func (r *RelocationRepo) Update(ctx context.Context, rel *entity.Relocation) error {
	query := `
		UPDATE stock_relocations SET planned_date = $2, employee_id = $3, warehouse_id = $4,
			from_location_id = $5, to_location_id = $6, product_id = $7, quantity = $8, uom_id = $9,
			updated_at = $10
		WHERE id = $1 AND state = 'draft'`
	tag, err := r.q.Exec(ctx, query,
		rel.ID, rel.PlannedDate, rel.EmployeeID, rel.WarehouseID, rel.FromLocationID, rel.ToLocationID,
		rel.ProductID, rel.Quantity, rel.UomID, rel.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update relocation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotDraft
	}
	return nil
}

// SaveConfirmed guarda move_id y state de todas las reubicaciones en un solo lote.
func (r *RelocationRepo) SaveConfirmed(ctx context.Context, rs []*entity.Relocation) error {
	query := `UPDATE stock_relocations SET move_id = $2, state = $3, updated_at = $4 WHERE id = $1`
	b := &pgx.Batch{}
	for _, rel := range rs {
		b.Queue(query, rel.ID, rel.MoveID, rel.State, rel.UpdatedAt)
	}
	if err := execBatch(ctx, r.q, b); err != nil {
		return fmt.Errorf("save confirmed relocations: %w", err)
	}
	return nil
}

// Delete borra una reubicación en borrador.
func (r *RelocationRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_relocations WHERE id = $1 AND state = 'draft'`, id)
	if err != nil {
		return fmt.Errorf("delete relocation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotDraft
	}
	return nil
}

func (r *RelocationRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Relocation, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list relocations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Relocation
	for rows.Next() {
		rel, err := scanRelocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan relocation: %w", err)
		}
		list = append(list, rel)
	}
	return list, rows.Err()
}

func scanRelocation(row pgx.Row) (*entity.Relocation, error) {
	var rel entity.Relocation
	err := row.Scan(
		&rel.ID, &rel.PlannedDate, &rel.EmployeeID, &rel.WarehouseID, &rel.FromLocationID, &rel.ToLocationID,
		&rel.ProductID, &rel.Quantity, &rel.UomID, &rel.UnitDigits, &rel.CompanyID, &rel.MoveID,
		&rel.State, &rel.CreatedBy, &rel.CreatedAt, &rel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rel, nil
}
