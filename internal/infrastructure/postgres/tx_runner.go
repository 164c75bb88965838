package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/LogFlow-api/internal/application/importer"
	"github.com/jhoicas/LogFlow-api/internal/application/inventory"
	"github.com/jhoicas/LogFlow-api/internal/application/orders"
	"github.com/jhoicas/LogFlow-api/internal/domain"
	"github.com/jhoicas/LogFlow-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner = (*TxRunner)(nil)
	_ importer.TxRunner  = (*TxRunner)(nil)
	_ orders.TxRunner    = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProductRepository(tx), NewStockMovementRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunOrder como Run, con los repositorios de orden e historial de estados.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	historyRepo repository.OrderStatusHistoryRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewOrderRepository(tx), NewOrderStatusHistoryRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBatch abre la transacción del lote. Los fallos de la propia transacción (begin,
// savepoint, commit) envuelven domain.ErrBatchAborted.
func (r *TxRunner) RunBatch(ctx context.Context, fn func(tx importer.BatchTx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w: %w", domain.ErrBatchAborted, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&batchTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w: %w", domain.ErrBatchAborted, err)
	}
	return nil
}

// batchTx cada Row corre en un SAVEPOINT (pgx.Tx.Begin anidado).
type batchTx struct {
	tx pgx.Tx
}

func (b *batchTx) Row(ctx context.Context, fn func(r importer.Repos) error) error {
	sp, err := b.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("savepoint: %w: %w", domain.ErrBatchAborted, err)
	}
	if err := fn(reposFor(sp)); err != nil {
		if rbErr := sp.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback to savepoint: %w: %w", domain.ErrBatchAborted, rbErr)
		}
		return err
	}
	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("release savepoint: %w: %w", domain.ErrBatchAborted, err)
	}
	return nil
}

func reposFor(q Querier) importer.Repos {
	return importer.Repos{
		Categories: NewCategoryRepository(q),
		Products:   NewProductRepository(q),
		Movements:  NewStockMovementRepository(q),
		Clients:    NewClientRepository(q),
		Orders:     NewOrderRepository(q),
	}
}
