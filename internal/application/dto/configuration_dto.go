package dto

// StockConfigurationDTO configuración de stock (GET y PUT /api/stock/configuration).
type StockConfigurationDTO struct {
	ToRelocationLocationID string `json:"to_relocation_location_id"`
}
