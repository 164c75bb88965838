package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/LogFlow-api/internal/domain"
	"github.com/jhoicas/LogFlow-api/internal/domain/entity"
	"github.com/jhoicas/LogFlow-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, order_number, order_type, status, priority, client_id, pickup_address, delivery_address,
	requested_date, scheduled_date, completed_date, description, notes, total_weight, total_volume,
	created_by, assigned_to, created_at, updated_at`

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	if err := row.Scan(
		&o.ID, &o.OrderNumber, &o.OrderType, &o.Status, &o.Priority, &o.ClientID, &o.PickupAddress,
		&o.DeliveryAddress, &o.RequestedDate, &o.ScheduledDate, &o.CompletedDate, &o.Description, &o.Notes,
		&o.TotalWeight, &o.TotalVolume, &o.CreatedBy, &o.AssignedTo, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserta la orden. order_number lo asigna la base con la secuencia order_number_seq,
// que no retrocede con el rollback del savepoint.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (id, order_type, status, priority, client_id, pickup_address, delivery_address,
			requested_date, scheduled_date, completed_date, description, notes, total_weight, total_volume,
			created_by, assigned_to, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING order_number`
	err := r.q.QueryRow(ctx, query,
		order.ID, order.OrderType, order.Status, order.Priority, order.ClientID, order.PickupAddress,
		order.DeliveryAddress, order.RequestedDate, order.ScheduledDate, order.CompletedDate,
		order.Description, order.Notes, order.TotalWeight, order.TotalVolume, order.CreatedBy,
		order.AssignedTo, order.CreatedAt, updatedAt(order.CreatedAt, order.UpdatedAt),
	).Scan(&order.OrderNumber)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert order: %w: cliente inexistente", domain.ErrInvalidInput)
		}
		if isCheckViolation(err) {
			return fmt.Errorf("insert order: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// GetByIDForUpdate obtiene la orden con SELECT ... FOR UPDATE (usar dentro de una tx).
func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lock order: %w", err)
	}
	return o, nil
}

// UpdateStatus persiste el estado y las fechas que cambian con él.
func (r *OrderRepo) UpdateStatus(ctx context.Context, order *entity.Order) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE orders SET status = $2, scheduled_date = $3, completed_date = $4, updated_at = $5 WHERE id = $1`,
		order.ID, order.Status, order.ScheduledDate, order.CompletedDate, order.UpdatedAt)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("update order status: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista órdenes, más recientes primero.
func (r *OrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC, order_number DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return collectOrders(rows)
}

// ListOverdue órdenes no cerradas con scheduled_date vencida, la más atrasada primero.
func (r *OrderRepo) ListOverdue(ctx context.Context, now time.Time, limit, offset int) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+orderColumns+` FROM orders
		WHERE scheduled_date < $1 AND status NOT IN ('completed', 'cancelled')
		ORDER BY scheduled_date, order_number LIMIT $2 OFFSET $3`,
		now, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list overdue orders: %w", err)
	}
	return collectOrders(rows)
}

func collectOrders(rows pgx.Rows) ([]*entity.Order, error) {
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}
