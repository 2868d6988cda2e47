package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de producto.
const (
	ProductTypeGoods   = "goods"
	ProductTypeAssets  = "assets"
	ProductTypeService = "service"
)

// Product representa un producto del maestro (solo lectura para este servicio).
type Product struct {
	ID           string
	CompanyID    string
	Code         string
	Name         string
	Type         string
	DefaultUomID string
	CostPrice    decimal.Decimal
	ListPrice    decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Stockable indica si el producto maneja existencias (los servicios no).
func (p *Product) Stockable() bool {
	return p != nil && p.Type != ProductTypeService
}

// RecName nombre para mensajes: "[code] name" si hay código.
func (p *Product) RecName() string {
	if p == nil {
		return ""
	}
	if p.Code != "" {
		return "[" + p.Code + "] " + p.Name
	}
	return p.Name
}
