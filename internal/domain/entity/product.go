package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida y estados del producto.
const (
	UnitDefault = "UN"

	ProductStatusActive       = "active"
	ProductStatusInactive     = "inactive"
	ProductStatusDiscontinued = "discontinued"
)

// Estados derivados del stock.
const (
	StockStatusLow    = "low"
	StockStatusNormal = "normal"
	StockStatusHigh   = "high"
)

// Product representa un producto del inventario.
// CurrentStock solo cambia vía StockMovement (ver domain/inventory); el valor
// inicial se fija al crear el producto.
type Product struct {
	ID           string
	Code         string // código único
	Name         string
	Description  string
	CategoryID   string
	Unit         string
	UnitPrice    decimal.Decimal
	CurrentStock int
	MinimumStock int
	MaximumStock *int
	Location     string
	Status       string
	IsActive     bool
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// StockStatus devuelve low, normal o high según los límites configurados.
func (p *Product) StockStatus() string {
	if p.CurrentStock <= p.MinimumStock {
		return StockStatusLow
	}
	if p.MaximumStock != nil && *p.MaximumStock > 0 && p.CurrentStock >= *p.MaximumStock {
		return StockStatusHigh
	}
	return StockStatusNormal
}

// NeedsRestock indica si el stock actual está en o por debajo del mínimo.
func (p *Product) NeedsRestock() bool {
	return p.CurrentStock <= p.MinimumStock
}

// StockPercentage porcentaje del stock actual respecto al máximo (0 sin máximo).
func (p *Product) StockPercentage() float64 {
	if p.MaximumStock == nil || *p.MaximumStock == 0 {
		return 0
	}
	return float64(p.CurrentStock) / float64(*p.MaximumStock) * 100
}
