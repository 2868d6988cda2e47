package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fechas (sin hora) en la API.
const DateLayout = "2006-01-02"

// CreateRelocationRequest body para POST /api/relocations.
// Los campos vacíos toman el valor por defecto (fecha de hoy, empleado/bodega del usuario, destino configurado, etc.).
type CreateRelocationRequest struct {
	PlannedDate    string           `json:"planned_date,omitempty"` // YYYY-MM-DD
	EmployeeID     string           `json:"employee_id,omitempty"`
	WarehouseID    string           `json:"warehouse_id,omitempty"`
	FromLocationID string           `json:"from_location_id,omitempty"`
	ToLocationID   string           `json:"to_location_id,omitempty"`
	ProductID      string           `json:"product_id"`
	UomID          string           `json:"uom_id,omitempty"`
	Quantity       *decimal.Decimal `json:"quantity,omitempty"` // nil = existencias del origen
}

// UpdateRelocationRequest body para PUT /api/relocations/:id (solo en borrador).
type UpdateRelocationRequest struct {
	PlannedDate    *string          `json:"planned_date,omitempty"`
	EmployeeID     *string          `json:"employee_id,omitempty"`
	WarehouseID    *string          `json:"warehouse_id,omitempty"`
	FromLocationID *string          `json:"from_location_id,omitempty"`
	ToLocationID   *string          `json:"to_location_id,omitempty"`
	ProductID      *string          `json:"product_id,omitempty"`
	UomID          *string          `json:"uom_id,omitempty"`
	Quantity       *decimal.Decimal `json:"quantity,omitempty"`
}

// RelocationResponse salida de una reubicación.
type RelocationResponse struct {
	ID             string          `json:"id"`
	PlannedDate    string          `json:"planned_date"`
	EmployeeID     string          `json:"employee_id"`
	WarehouseID    string          `json:"warehouse_id"`
	FromLocationID string          `json:"from_location_id"`
	ToLocationID   string          `json:"to_location_id"`
	ProductID      string          `json:"product_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	UomID          string          `json:"uom_id"`
	UnitDigits     int32           `json:"unit_digits"`
	CompanyID      string          `json:"company_id"`
	MoveID         string          `json:"move_id,omitempty"`
	State          string          `json:"state"`
	CreatedAt      time.Time       `json:"created_at,omitempty"`
	UpdatedAt      time.Time       `json:"updated_at,omitempty"`
}

// RelocationListResponse lista paginada de reubicaciones.
type RelocationListResponse struct {
	Items []RelocationResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// RelocationFormRequest estado del formulario para los recálculos (on change).
type RelocationFormRequest struct {
	ProductID      string          `json:"product_id"`
	WarehouseID    string          `json:"warehouse_id"`
	FromLocationID string          `json:"from_location_id"`
	Quantity       decimal.Decimal `json:"quantity"`
}

// RelocationFormResponse campos recalculados al cambiar el producto.
type RelocationFormResponse struct {
	UomID          string          `json:"uom_id"`
	UnitDigits     int32           `json:"unit_digits"`
	FromLocationID string          `json:"from_location_id"`
	Quantity       decimal.Decimal `json:"quantity"`
}

// QuantityResponse existencias disponibles en el origen.
type QuantityResponse struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// ConfirmRelocationsRequest body para POST /api/relocations/confirm.
type ConfirmRelocationsRequest struct {
	IDs []string `json:"ids"`
}

// ConfirmedRelocationDTO reubicación confirmada con su movimiento.
type ConfirmedRelocationDTO struct {
	RelocationID string `json:"relocation_id"`
	MoveID       string `json:"move_id"`
}

// RelocationWarningDTO aviso de existencias insuficientes.
type RelocationWarningDTO struct {
	Key          string          `json:"key"`
	RelocationID string          `json:"relocation_id"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	LocationID   string          `json:"location_id"`
	LocationName string          `json:"location_name"`
	Available    decimal.Decimal `json:"available"`
	Requested    decimal.Decimal `json:"requested"`
	Message      string          `json:"message"`
}

// ConfirmRelocationsResponse resultado de la confirmación por lotes.
type ConfirmRelocationsResponse struct {
	Confirmed []ConfirmedRelocationDTO `json:"confirmed"`
	Warnings  []RelocationWarningDTO   `json:"warnings"`
}
