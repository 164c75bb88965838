package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/LogFlow-api/internal/domain"
	"github.com/jhoicas/LogFlow-api/internal/domain/entity"
	"github.com/jhoicas/LogFlow-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository      = (*CategoryRepo)(nil)
	_ repository.ProductRepository       = (*ProductRepo)(nil)
	_ repository.StockMovementRepository = (*StockMovementRepo)(nil)
	_ repository.ClientRepository        = (*ClientRepo)(nil)
	_ repository.OrderRepository         = (*OrderRepo)(nil)
	_ repository.ImportBatchRepository   = (*ImportBatchRepo)(nil)

	_ repository.OrderStatusHistoryRepository = (*OrderStatusHistoryRepo)(nil)
)

func copyProduct(p *entity.Product) *entity.Product {
	cp := *p
	if p.MaximumStock != nil {
		m := *p.MaximumStock
		cp.MaximumStock = &m
	}
	return &cp
}

func copyOrder(o *entity.Order) *entity.Order {
	cp := *o
	if o.ScheduledDate != nil {
		t := *o.ScheduledDate
		cp.ScheduledDate = &t
	}
	if o.CompletedDate != nil {
		t := *o.CompletedDate
		cp.CompletedDate = &t
	}
	return &cp
}

func copyBatch(b *entity.ImportBatch) *entity.ImportBatch {
	cp := *b
	cp.Errors = append([]string{}, b.Errors...)
	cp.Warnings = append([]string{}, b.Warnings...)
	return &cp
}

// ── Categorías ──────────────────────────────────────────────────────────────

// CategoryRepo categorías en memoria; el nombre es único.
type CategoryRepo struct{ v view }

func (r *CategoryRepo) GetOrCreateByName(ctx context.Context, category *entity.Category) (*entity.Category, bool, error) {
	if err := r.v.fault("categories.get_or_create"); err != nil {
		return nil, false, err
	}
	var out *entity.Category
	var created bool
	err := r.v.with(func(st *state) error {
		for _, c := range st.categories {
			if c.Name == category.Name {
				cp := *c
				out = &cp
				return nil
			}
		}
		cp := *category
		st.categories = append(st.categories, &cp)
		out, created = category, true
		return nil
	})
	return out, created, err
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.v.with(func(st *state) error {
		for _, c := range st.categories {
			if c.ID == id {
				cp := *c
				out = &cp
				return nil
			}
		}
		return domain.ErrNotFound
	})
	return out, err
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.v.with(func(st *state) error {
		for _, c := range st.categories {
			cp := *c
			out = append(out, &cp)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

// ── Productos ───────────────────────────────────────────────────────────────

// ProductRepo productos en memoria; el código es único.
type ProductRepo struct{ v view }

func (r *ProductRepo) CreateIfAbsent(ctx context.Context, product *entity.Product) (bool, error) {
	if err := r.v.fault("products.create"); err != nil {
		return false, err
	}
	if product.CurrentStock < 0 || product.MinimumStock < 0 {
		return false, fmt.Errorf("insert product: %w", domain.ErrNegativeStock)
	}
	var created bool
	err := r.v.with(func(st *state) error {
		for _, p := range st.products {
			if p.Code == product.Code {
				return nil
			}
		}
		st.products = append(st.products, copyProduct(product))
		created = true
		return nil
	})
	return created, err
}

func (r *ProductRepo) find(match func(*entity.Product) bool) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.with(func(st *state) error {
		for _, p := range st.products {
			if match(p) {
				out = copyProduct(p)
				return nil
			}
		}
		return domain.ErrNotFound
	})
	return out, err
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.find(func(p *entity.Product) bool { return p.ID == id })
}

func (r *ProductRepo) GetByCodeForUpdate(ctx context.Context, code string) (*entity.Product, error) {
	if err := r.v.fault("products.lock"); err != nil {
		return nil, err
	}
	return r.find(func(p *entity.Product) bool { return p.Code == code })
}

func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	if err := r.v.fault("products.lock"); err != nil {
		return nil, err
	}
	return r.find(func(p *entity.Product) bool { return p.ID == id })
}

func (r *ProductRepo) UpdateStock(ctx context.Context, product *entity.Product) error {
	if err := r.v.fault("products.update_stock"); err != nil {
		return err
	}
	if product.CurrentStock < 0 {
		return fmt.Errorf("update stock: %w", domain.ErrNegativeStock)
	}
	return r.v.with(func(st *state) error {
		for _, p := range st.products {
			if p.ID == product.ID {
				p.CurrentStock = product.CurrentStock
				p.UpdatedAt = product.UpdatedAt
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r *ProductRepo) sorted(keep func(*entity.Product) bool) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.v.with(func(st *state) error {
		for _, p := range st.products {
			if keep(p) {
				out = append(out, copyProduct(p))
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, err
}

func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	all, err := r.sorted(func(*entity.Product) bool { return true })
	if err != nil {
		return nil, err
	}
	return page(all, limit, offset), nil
}

func (r *ProductRepo) ListNeedingRestock(ctx context.Context, limit int) ([]*entity.Product, error) {
	all, err := r.sorted(func(p *entity.Product) bool { return p.IsActive && p.NeedsRestock() })
	if err != nil {
		return nil, err
	}
	return page(all, limit, 0), nil
}

// ── Movimientos ─────────────────────────────────────────────────────────────

// StockMovementRepo libro de movimientos en memoria (append-only).
type StockMovementRepo struct{ v view }

func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	if err := r.v.fault("movements.create"); err != nil {
		return err
	}
	return r.v.with(func(st *state) error {
		cp := *movement
		st.movements = append(st.movements, &cp)
		return nil
	})
}

// ListByProduct devuelve los movimientos del producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.v.with(func(st *state) error {
		for i := len(st.movements) - 1; i >= 0; i-- {
			if m := st.movements[i]; m.ProductID == productID {
				cp := *m
				out = append(out, &cp)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page(out, limit, offset), nil
}

// All devuelve todos los movimientos en orden de inserción.
func (r *StockMovementRepo) All(ctx context.Context) ([]*entity.StockMovement, error) {
	if err := r.v.fault("movements.list"); err != nil {
		return nil, err
	}
	var out []*entity.StockMovement
	err := r.v.with(func(st *state) error {
		for _, m := range st.movements {
			cp := *m
			out = append(out, &cp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ── Clientes ────────────────────────────────────────────────────────────────

// ClientRepo clientes en memoria; el nombre no es único, se resuelve al más antiguo.
type ClientRepo struct{ v view }

func (r *ClientRepo) GetOrCreateByName(ctx context.Context, client *entity.Client) (*entity.Client, bool, error) {
	if err := r.v.fault("clients.get_or_create"); err != nil {
		return nil, false, err
	}
	var out *entity.Client
	var created bool
	err := r.v.with(func(st *state) error {
		for _, c := range st.clients {
			if c.Name == client.Name {
				cp := *c
				out = &cp
				return nil
			}
		}
		cp := *client
		st.clients = append(st.clients, &cp)
		out, created = client, true
		return nil
	})
	return out, created, err
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	var out *entity.Client
	err := r.v.with(func(st *state) error {
		for _, c := range st.clients {
			if c.ID == id {
				cp := *c
				out = &cp
				return nil
			}
		}
		return domain.ErrNotFound
	})
	return out, err
}

func (r *ClientRepo) Update(ctx context.Context, client *entity.Client) error {
	if err := r.v.fault("clients.update"); err != nil {
		return err
	}
	return r.v.with(func(st *state) error {
		for i, c := range st.clients {
			if c.ID == client.ID {
				cp := *client
				st.clients[i] = &cp
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r *ClientRepo) List(ctx context.Context, limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	err := r.v.with(func(st *state) error {
		for _, c := range st.clients {
			cp := *c
			out = append(out, &cp)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

// ── Órdenes ─────────────────────────────────────────────────────────────────

// OrderRepo órdenes en memoria; el número ORD-000001 sale de un contador que,
// como una secuencia, no retrocede con el rollback.
type OrderRepo struct{ v view }

func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if err := r.v.fault("orders.create"); err != nil {
		return err
	}
	return r.v.with(func(st *state) error {
		order.OrderNumber = fmt.Sprintf("ORD-%06d", r.v.store().orderSeq.Add(1))
		st.orders = append(st.orders, copyOrder(order))
		return nil
	})
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.v.with(func(st *state) error {
		for _, o := range st.orders {
			if o.ID == id {
				out = copyOrder(o)
				return nil
			}
		}
		return domain.ErrNotFound
	})
	return out, err
}

func (r *OrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	if err := r.v.fault("orders.lock"); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, order *entity.Order) error {
	if err := r.v.fault("orders.update_status"); err != nil {
		return err
	}
	return r.v.with(func(st *state) error {
		for i, o := range st.orders {
			if o.ID == order.ID {
				next := *o
				next.Status = order.Status
				next.ScheduledDate = order.ScheduledDate
				next.CompletedDate = order.CompletedDate
				next.UpdatedAt = order.UpdatedAt
				st.orders[i] = copyOrder(&next)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

// List órdenes más recientes primero.
func (r *OrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	err := r.v.with(func(st *state) error {
		for i := len(st.orders) - 1; i >= 0; i-- {
			out = append(out, copyOrder(st.orders[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page(out, limit, offset), nil
}

// ListOverdue órdenes atrasadas, la de fecha agendada más antigua primero.
func (r *OrderRepo) ListOverdue(ctx context.Context, now time.Time, limit, offset int) ([]*entity.Order, error) {
	var out []*entity.Order
	err := r.v.with(func(st *state) error {
		for _, o := range st.orders {
			if o.IsOverdue(now) {
				out = append(out, copyOrder(o))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ScheduledDate.Before(*out[j].ScheduledDate) })
	return page(out, limit, offset), nil
}

// OrderStatusHistoryRepo historial de estados en memoria (append-only).
type OrderStatusHistoryRepo struct{ v view }

func (r *OrderStatusHistoryRepo) Create(ctx context.Context, change *entity.OrderStatusChange) error {
	if err := r.v.fault("order_status_history.create"); err != nil {
		return err
	}
	return r.v.with(func(st *state) error {
		cp := *change
		st.history = append(st.history, &cp)
		return nil
	})
}

func (r *OrderStatusHistoryRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.OrderStatusChange, error) {
	out := []*entity.OrderStatusChange{}
	err := r.v.with(func(st *state) error {
		for _, c := range st.history {
			if c.OrderID == orderID {
				cp := *c
				out = append(out, &cp)
			}
		}
		return nil
	})
	return out, err
}

// ── Historial de importaciones ──────────────────────────────────────────────

// ImportBatchRepo historial de lotes en memoria.
type ImportBatchRepo struct{ v view }

func (r *ImportBatchRepo) Create(ctx context.Context, batch *entity.ImportBatch) error {
	if err := r.v.fault("import_batches.create"); err != nil {
		return err
	}
	return r.v.with(func(st *state) error {
		st.batches = append(st.batches, copyBatch(batch))
		return nil
	})
}

func (r *ImportBatchRepo) List(ctx context.Context, limit, offset int) ([]*entity.ImportBatch, error) {
	var out []*entity.ImportBatch
	err := r.v.with(func(st *state) error {
		for i := len(st.batches) - 1; i >= 0; i-- {
			out = append(out, copyBatch(st.batches[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page(out, limit, offset), nil
}
