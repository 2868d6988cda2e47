package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-relocation/internal/domain/entity"
	"github.com/jhoicas/stock-relocation/internal/domain/repository"
)

var (
	_ repository.UomRepository      = (*UomRepo)(nil)
	_ repository.EmployeeRepository = (*EmployeeRepo)(nil)
)

// UomRepo lectura de unidades de medida sobre PostgreSQL.
type UomRepo struct {
	q Querier
}

// NewUomRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUomRepository(q Querier) *UomRepo {
	return &UomRepo{q: q}
}

// GetByID obtiene una unidad por ID.
func (r *UomRepo) GetByID(ctx context.Context, id string) (*entity.Uom, error) {
	query := `SELECT id, name, symbol, digits FROM product_uoms WHERE id = $1`
	var u entity.Uom
	err := r.q.QueryRow(ctx, query, id).Scan(&u.ID, &u.Name, &u.Symbol, &u.Digits)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get uom: %w", err)
	}
	return &u, nil
}

// EmployeeRepo lectura de empleados sobre PostgreSQL.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// GetByID obtiene un empleado por ID.
func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	query := `SELECT id, company_id, name FROM employees WHERE id = $1`
	var e entity.Employee
	err := r.q.QueryRow(ctx, query, id).Scan(&e.ID, &e.CompanyID, &e.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}
