package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/LogFlow-api/internal/domain"
	"github.com/jhoicas/LogFlow-api/internal/domain/entity"
	"github.com/jhoicas/LogFlow-api/internal/domain/repository"
)

var _ repository.OrderStatusHistoryRepository = (*OrderStatusHistoryRepo)(nil)

// OrderStatusHistoryRepo historial de estados de órdenes (append-only).
type OrderStatusHistoryRepo struct {
	q Querier
}

// NewOrderStatusHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderStatusHistoryRepository(q Querier) *OrderStatusHistoryRepo {
	return &OrderStatusHistoryRepo{q: q}
}

func (r *OrderStatusHistoryRepo) Create(ctx context.Context, change *entity.OrderStatusChange) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO order_status_history (id, order_id, from_status, status, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		change.ID, change.OrderID, change.FromStatus, change.Status, change.Notes, change.CreatedBy, change.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert order status: %w", domain.ErrNotFound)
		}
		if isCheckViolation(err) {
			return fmt.Errorf("insert order status: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert order status: %w", err)
	}
	return nil
}

// ListByOrder cambios de la orden en orden cronológico.
func (r *OrderStatusHistoryRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderStatusChange, error) {
	list := []*entity.OrderStatusChange{}
	if !validID(orderID) {
		return list, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, from_status, status, notes, created_by, created_at
		FROM order_status_history WHERE order_id = $1 ORDER BY created_at, seq`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order status: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c entity.OrderStatusChange
		if err := rows.Scan(&c.ID, &c.OrderID, &c.FromStatus, &c.Status, &c.Notes, &c.CreatedBy, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order status: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
