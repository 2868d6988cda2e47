package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una reubicación.
const (
	RelocationStateDraft = "draft"
	RelocationStateDone  = "done"
)

// Relocation documento que solicita mover una cantidad de un producto entre dos ubicaciones de almacenamiento.
// Solo es editable en draft; pasa a done únicamente al confirmarse, junto con su movimiento.
type Relocation struct {
	ID             string
	PlannedDate    time.Time
	EmployeeID     string
	WarehouseID    string
	FromLocationID string
	ToLocationID   string
	ProductID      string
	Quantity       decimal.Decimal
	UomID          string
	UnitDigits     int32 // derivado de la unidad, no se persiste
	CompanyID      string
	MoveID         string
	State          string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsDraft indica si la reubicación sigue editable.
func (r *Relocation) IsDraft() bool {
	return r != nil && r.State == RelocationStateDraft
}

// WarningKey clave del aviso de confirmación de esta reubicación.
func (r *Relocation) WarningKey() string {
	return "stock_relocation" + r.ID + ".confirm"
}
