package stock

import "github.com/shopspring/decimal"

// Key identifica las existencias de un producto en una ubicación.
type Key struct {
	LocationID string
	ProductID  string
}

// Quantities existencias disponibles por (ubicación, producto).
type Quantities map[Key]decimal.Decimal

// Get devuelve la cantidad de la clave; cero si no está.
func (q Quantities) Get(k Key) decimal.Decimal {
	if v, ok := q[k]; ok {
		return v
	}
	return decimal.Zero
}

// Take devuelve la cantidad de la clave y la elimina, de modo que una segunda
// reubicación sobre el mismo par la vea en cero.
func (q Quantities) Take(k Key) decimal.Decimal {
	v := q.Get(k)
	delete(q, k)
	return v
}
