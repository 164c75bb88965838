package repository

import (
	"context"

	"github.com/jhoicas/LogFlow-api/internal/domain/entity"
)

// OrderStatusHistoryRepository historial de cambios de estado (append-only).
type OrderStatusHistoryRepository interface {
	Create(ctx context.Context, change *entity.OrderStatusChange) error
	// ListByOrder devuelve los cambios de la orden, más antiguos primero.
	ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderStatusChange, error)
}
