package entity

// Employee empleado de una empresa (responsable de reubicaciones).
type Employee struct {
	ID        string
	CompanyID string
	Name      string
}
