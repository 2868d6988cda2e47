package entity

// StockConfiguration configuración de stock del sitio (fila única).
type StockConfiguration struct {
	ToRelocationLocationID string // destino por defecto de nuevas reubicaciones; vacío = sin default
}
