package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// User representa un usuario del sistema (pertenece a una empresa).
// EmployeeID y StockWarehouseID alimentan los valores por defecto de una reubicación.
type User struct {
	ID               string
	CompanyID        string
	Email            string
	PasswordHash     string // bcrypt
	Name             string
	Role             string
	Status           string // active, inactive, suspended
	EmployeeID       string
	StockWarehouseID string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
