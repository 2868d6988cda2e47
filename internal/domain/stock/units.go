package stock

import (
	"time"

	"github.com/jhoicas/stock-relocation/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// UnitDigits precisión de la unidad; entity.DefaultUnitDigits si no hay unidad.
func UnitDigits(uom *entity.Uom) int32 {
	if uom == nil {
		return entity.DefaultUnitDigits
	}
	return uom.Digits
}

// RoundQuantity redondea una cantidad a la precisión de su unidad.
func RoundQuantity(q decimal.Decimal, digits int32) decimal.Decimal {
	return q.Round(digits)
}

// BusinessDate fecha contable de t (medianoche en la zona de t).
func BusinessDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
