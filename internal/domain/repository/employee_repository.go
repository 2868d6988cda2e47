package repository

import (
	"context"

	"github.com/jhoicas/stock-relocation/internal/domain/entity"
)

// EmployeeRepository lectura de empleados.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
}
