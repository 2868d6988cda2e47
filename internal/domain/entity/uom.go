package entity

// DefaultUnitDigits precisión usada cuando no hay unidad de medida.
const DefaultUnitDigits int32 = 2

// Uom unidad de medida.
type Uom struct {
	ID     string
	Name   string
	Symbol string
	Digits int32
}
