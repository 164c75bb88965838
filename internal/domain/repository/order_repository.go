package repository

import (
	"context"
	"time"

	"github.com/jhoicas/LogFlow-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order.
type OrderRepository interface {
	// Create persiste la orden y completa ID y OrderNumber generados por la base.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetByIDForUpdate obtiene la orden bloqueando la fila hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error)
	// UpdateStatus persiste status, scheduled_date, completed_date y updated_at.
	UpdateStatus(ctx context.Context, order *entity.Order) error
	List(ctx context.Context, limit, offset int) ([]*entity.Order, error)
	// ListOverdue órdenes abiertas con scheduled_date anterior a now, las más atrasadas primero.
	ListOverdue(ctx context.Context, now time.Time, limit, offset int) ([]*entity.Order, error)
}
