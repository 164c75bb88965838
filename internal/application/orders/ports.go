package orders

import (
	"context"
	"time"

	"github.com/jhoicas/LogFlow-api/internal/domain/repository"
)

// TxRunner abre una transacción y entrega los repositorios de orden e historial atados
// a ella; fn devolviendo error implica Rollback.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		historyRepo repository.OrderStatusHistoryRepository,
	) error) error
}

// StatusInputDTO cambio de estado pedido por un usuario.
type StatusInputDTO struct {
	UserID        string
	OrderID       string
	Status        string
	Notes         string
	ScheduledDate *time.Time
}
