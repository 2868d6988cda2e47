package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un movimiento de stock.
const (
	MoveStateDraft = "draft"
	MoveStateDone  = "done"
)

// Modelos de origen de un movimiento.
const (
	OriginPurchaseLine = "purchase.line"
	OriginSaleLine     = "sale.line"
	OriginInventory    = "stock.inventory.line"
	OriginRelocation   = "stock.relocation"
)

// MoveOriginModels modelos permitidos como origen de un movimiento; incluye las reubicaciones.
var MoveOriginModels = []string{
	OriginPurchaseLine,
	OriginSaleLine,
	OriginInventory,
	OriginRelocation,
}

// Origin referencia al documento que generó un movimiento.
type Origin struct {
	Model string
	ID    string
}

// Valid indica si el origen está vacío o apunta a un modelo permitido.
func (o Origin) Valid() bool {
	if o.Model == "" && o.ID == "" {
		return true
	}
	if o.ID == "" {
		return false
	}
	for _, m := range MoveOriginModels {
		if m == o.Model {
			return true
		}
	}
	return false
}

// Move movimiento de stock entre dos ubicaciones. Los movimientos en estado done forman el libro de existencias.
type Move struct {
	ID             string
	ProductID      string
	UomID          string
	Quantity       decimal.Decimal
	FromLocationID string
	ToLocationID   string
	State          string
	PlannedDate    time.Time
	EffectiveDate  time.Time
	CompanyID      string
	CostPrice      decimal.Decimal
	UnitPrice      decimal.Decimal
	Origin         Origin
	CreatedAt      time.Time
}
