package entity

import "time"

// Tipos de ubicación de stock.
const (
	LocationTypeWarehouse  = "warehouse"  // agrupa ubicaciones de almacenamiento
	LocationTypeView       = "view"       // nodo de árbol, no almacena
	LocationTypeStorage    = "storage"
	LocationTypeCustomer   = "customer"
	LocationTypeSupplier   = "supplier"
	LocationTypeLostFound  = "lost_found"
	LocationTypeProduction = "production"
)

// Location representa una ubicación de stock dentro del árbol de ubicaciones.
// ParentID vacío = raíz.
type Location struct {
	ID        string
	Name      string
	Code      string
	Type      string
	ParentID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsWarehouse indica si la ubicación es una bodega.
func (l *Location) IsWarehouse() bool {
	return l != nil && l.Type == LocationTypeWarehouse
}

// CanHoldRelocation indica si la ubicación puede ser origen o destino de una reubicación
// (no bodega ni vista).
func (l *Location) CanHoldRelocation() bool {
	if l == nil {
		return false
	}
	return l.Type != LocationTypeWarehouse && l.Type != LocationTypeView
}
