package dto

import (
	"time"

	"github.com/jhoicas/LogFlow-api/internal/domain/entity"
)

// RegisterMovementRequest entrada HTTP para registrar un movimiento manual.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id"`
	Type      string `json:"movement_type"` // in, out, adjustment, transfer
	Quantity  int    `json:"quantity"`
	Reference string `json:"reference"`
	Notes     string `json:"notes"`
}

// StockMovementResponse salida de un movimiento del libro de stock.
type StockMovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	Type          string    `json:"movement_type"`
	Quantity      int       `json:"quantity"`
	PreviousStock int       `json:"previous_stock"`
	CurrentStock  int       `json:"current_stock"`
	Reference     string    `json:"reference"`
	Notes         string    `json:"notes"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// StockMovementListResponse lista paginada de movimientos.
type StockMovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// StockMovementFromEntity mapea un movimiento de dominio a su DTO.
func StockMovementFromEntity(m *entity.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Type:          m.Type,
		Quantity:      m.Quantity,
		PreviousStock: m.PreviousStock,
		CurrentStock:  m.CurrentStock,
		Reference:     m.Reference,
		Notes:         m.Notes,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}
