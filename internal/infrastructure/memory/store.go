// Package memory implementa los puertos de persistencia en memoria, con la misma semántica
// transaccional que el adaptador PostgreSQL (transacción por lote, savepoint por fila).
// Se usa en tests y con DB_DRIVER=memory.
package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jhoicas/LogFlow-api/internal/application/importer"
	"github.com/jhoicas/LogFlow-api/internal/application/inventory"
	"github.com/jhoicas/LogFlow-api/internal/application/orders"
	"github.com/jhoicas/LogFlow-api/internal/domain"
	"github.com/jhoicas/LogFlow-api/internal/domain/entity"
	"github.com/jhoicas/LogFlow-api/internal/domain/repository"
)

var (
	_ importer.TxRunner  = (*Store)(nil)
	_ inventory.TxRunner = (*Store)(nil)
	_ orders.TxRunner    = (*Store)(nil)
)

// state contenido completo de la base en memoria.
type state struct {
	categories []*entity.Category
	products   []*entity.Product
	movements  []*entity.StockMovement
	clients    []*entity.Client
	orders     []*entity.Order
	history    []*entity.OrderStatusChange
	batches    []*entity.ImportBatch
}

func (s *state) clone() *state {
	c := &state{}
	for _, v := range s.categories {
		cp := *v
		c.categories = append(c.categories, &cp)
	}
	for _, v := range s.products {
		c.products = append(c.products, copyProduct(v))
	}
	for _, v := range s.movements {
		cp := *v
		c.movements = append(c.movements, &cp)
	}
	for _, v := range s.clients {
		cp := *v
		c.clients = append(c.clients, &cp)
	}
	for _, v := range s.orders {
		c.orders = append(c.orders, copyOrder(v))
	}
	for _, v := range s.history {
		cp := *v
		c.history = append(c.history, &cp)
	}
	for _, v := range s.batches {
		c.batches = append(c.batches, copyBatch(v))
	}
	return c
}

// Store base en memoria. Las transacciones se serializan con mu.
type Store struct {
	mu       sync.Mutex
	data     *state
	orderSeq atomic.Int64

	hookMu          sync.RWMutex
	failOn          func(op string) error
	brokenSavepoint bool
	failCommit      bool
}

// NewStore crea una base vacía.
func NewStore() *Store {
	return &Store{data: &state{}}
}

// FailOn instala un hook consultado en cada operación ("products.create", "clients.update", ...).
// Si devuelve error, la operación falla con ese error.
func (s *Store) FailOn(fn func(op string) error) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	s.failOn = fn
}

// BreakSavepoints hace fallar la apertura de savepoints, como una conexión perdida.
func (s *Store) BreakSavepoints(broken bool) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	s.brokenSavepoint = broken
}

// FailCommit hace fallar el commit de la próxima transacción y de las siguientes.
func (s *Store) FailCommit(fail bool) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	s.failCommit = fail
}

func (s *Store) fault(op string) error {
	s.hookMu.RLock()
	defer s.hookMu.RUnlock()
	if s.failOn == nil {
		return nil
	}
	return s.failOn(op)
}

func (s *Store) savepointBroken() bool {
	s.hookMu.RLock()
	defer s.hookMu.RUnlock()
	return s.brokenSavepoint
}

func (s *Store) commitFails() bool {
	s.hookMu.RLock()
	defer s.hookMu.RUnlock()
	return s.failCommit
}

// view da acceso al estado: directo (autocommit, toma el lock) o dentro de una transacción.
type view interface {
	with(fn func(st *state) error) error
	fault(op string) error
	store() *Store
}

// autoView opera sobre el estado confirmado, una operación a la vez.
type autoView struct{ s *Store }

func (v autoView) with(fn func(st *state) error) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	work := v.s.data.clone()
	if err := fn(work); err != nil {
		return err
	}
	v.s.data = work
	return nil
}

func (v autoView) fault(op string) error { return v.s.fault(op) }
func (v autoView) store() *Store { return v.s }

// txView opera sobre la copia de trabajo de una transacción abierta (lock ya tomado).
type txView struct {
	s  *Store
	st *state
}

func (v *txView) with(fn func(st *state) error) error { return fn(v.st) }
func (v *txView) fault(op string) error { return v.s.fault(op) }
func (v *txView) store() *Store { return v.s }

func (s *Store) repos(v view) importer.Repos {
	return importer.Repos{
		Categories: &CategoryRepo{v: v},
		Products:   &ProductRepo{v: v},
		Movements:  &StockMovementRepo{v: v},
		Clients:    &ClientRepo{v: v},
		Orders:     &OrderRepo{v: v},
	}
}

// Categories, Products, ... repositorios fuera de transacción (lecturas y autocommit).
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{v: autoView{s}} }
func (s *Store) Products() *ProductRepo { return &ProductRepo{v: autoView{s}} }
func (s *Store) Movements() *StockMovementRepo { return &StockMovementRepo{v: autoView{s}} }
func (s *Store) Clients() *ClientRepo { return &ClientRepo{v: autoView{s}} }
func (s *Store) Orders() *OrderRepo { return &OrderRepo{v: autoView{s}} }
func (s *Store) ImportBatches() *ImportBatchRepo { return &ImportBatchRepo{v: autoView{s}} }
func (s *Store) OrderHistory() *OrderStatusHistoryRepo { return &OrderStatusHistoryRepo{v: autoView{s}} }

// transact corre fn sobre una copia de trabajo con el lock tomado. La copia solo se
// publica si fn termina sin error; el lock se libera también si fn entra en pánico.
func (s *Store) transact(fn func(tx *txView) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := &txView{s: s, st: s.data.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	if s.commitFails() {
		return fmt.Errorf("commit transaction: %w", domain.ErrBatchAborted)
	}
	s.data = tx.st
	return nil
}

// RunBatch implementa importer.TxRunner.
func (s *Store) RunBatch(ctx context.Context, fn func(tx importer.BatchTx) error) error {
	return s.transact(func(tx *txView) error {
		return fn(&batchTx{tx: tx})
	})
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return s.transact(func(tx *txView) error {
		return fn(&ProductRepo{v: tx}, &StockMovementRepo{v: tx})
	})
}

// RunOrder implementa orders.TxRunner.
func (s *Store) RunOrder(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	historyRepo repository.OrderStatusHistoryRepository,
) error) error {
	return s.transact(func(tx *txView) error {
		return fn(&OrderRepo{v: tx}, &OrderStatusHistoryRepo{v: tx})
	})
}

// batchTx savepoints sobre la copia de trabajo: una foto antes de cada fila.
type batchTx struct {
	tx *txView
}

func (b *batchTx) Row(ctx context.Context, fn func(r importer.Repos) error) error {
	if b.tx.s.savepointBroken() {
		return fmt.Errorf("savepoint: %w", domain.ErrBatchAborted)
	}
	snapshot := b.tx.st.clone()
	if err := fn(b.tx.s.repos(b.tx)); err != nil {
		b.tx.st = snapshot
		return err
	}
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
