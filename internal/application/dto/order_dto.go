package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/LogFlow-api/internal/domain/entity"
)

// OrderResponse salida de una orden con el indicador de atraso.
type OrderResponse struct {
	ID            string          `json:"id"`
	OrderNumber   string          `json:"order_number"`
	OrderType     string          `json:"order_type"`
	Status        string          `json:"status"`
	Priority      string          `json:"priority"`
	ClientID      string          `json:"client_id"`
	RequestedDate time.Time       `json:"requested_date"`
	ScheduledDate *time.Time      `json:"scheduled_date"`
	CompletedDate *time.Time      `json:"completed_date"`
	Description   string          `json:"description"`
	TotalWeight   decimal.Decimal `json:"total_weight"`
	TotalVolume   decimal.Decimal `json:"total_volume"`
	IsOverdue     bool            `json:"is_overdue"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// OrderFromEntity mapea una orden; is_overdue se calcula contra now.
func OrderFromEntity(o *entity.Order, now time.Time) OrderResponse {
	return OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		OrderType:     o.OrderType,
		Status:        o.Status,
		Priority:      o.Priority,
		ClientID:      o.ClientID,
		RequestedDate: o.RequestedDate,
		ScheduledDate: o.ScheduledDate,
		CompletedDate: o.CompletedDate,
		Description:   o.Description,
		TotalWeight:   o.TotalWeight,
		TotalVolume:   o.TotalVolume,
		IsOverdue:     o.IsOverdue(now),
		CreatedBy:     o.CreatedBy,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// UpdateOrderStatusRequest entrada HTTP para cambiar el estado de una orden.
// ScheduledDate, si viene, reagenda la orden en el mismo cambio.
type UpdateOrderStatusRequest struct {
	Status        string     `json:"status"`
	Notes         string     `json:"notes"`
	ScheduledDate *time.Time `json:"scheduled_date"`
}

// OrderStatusChangeResponse entrada del historial de estados.
type OrderStatusChangeResponse struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	FromStatus string    `json:"from_status"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// OrderStatusHistoryResponse historial completo de una orden.
type OrderStatusHistoryResponse struct {
	OrderID string                      `json:"order_id"`
	Items   []OrderStatusChangeResponse `json:"items"`
}

// OrderStatusChangeFromEntity mapea un cambio de estado a su DTO.
func OrderStatusChangeFromEntity(c *entity.OrderStatusChange) OrderStatusChangeResponse {
	return OrderStatusChangeResponse{
		ID:         c.ID,
		OrderID:    c.OrderID,
		FromStatus: c.FromStatus,
		Status:     c.Status,
		Notes:      c.Notes,
		CreatedBy:  c.CreatedBy,
		CreatedAt:  c.CreatedAt,
	}
}
