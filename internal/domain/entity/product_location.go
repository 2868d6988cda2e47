package entity

// PlaceholderSequence secuencia de las asociaciones creadas automáticamente:
// las asociaciones explícitas (secuencia menor) tienen prioridad.
const PlaceholderSequence = 999

// ProductLocation indica que un producto se almacena (o se almacenó) en una ubicación de una bodega.
type ProductLocation struct {
	ID          string
	ProductID   string
	WarehouseID string
	LocationID  string
	Sequence    int
}
