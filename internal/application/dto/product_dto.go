package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductResponse salida de un producto con sus campos derivados de stock.
type ProductResponse struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	CategoryID      string          `json:"category_id"`
	Unit            string          `json:"unit"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	CurrentStock    int             `json:"current_stock"`
	MinimumStock    int             `json:"minimum_stock"`
	MaximumStock    *int            `json:"maximum_stock"`
	Location        string          `json:"location"`
	Status          string          `json:"status"`
	StockStatus     string          `json:"stock_status"`
	NeedsRestock    bool            `json:"needs_restock"`
	StockPercentage float64         `json:"stock_percentage"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ReplenishmentSuggestionDTO fila de la lista de reposición.
type ReplenishmentSuggestionDTO struct {
	Priority          int             `json:"priority"`
	ProductID         string          `json:"product_id"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	CurrentStock      int             `json:"current_stock"`
	MinimumStock      int             `json:"minimum_stock"`
	MaximumStock      *int            `json:"maximum_stock"`
	TargetStock       int             `json:"target_stock"`
	SuggestedOrderQty int             `json:"suggested_order_qty"`
	EstimatedCost     decimal.Decimal `json:"estimated_cost"`
}
