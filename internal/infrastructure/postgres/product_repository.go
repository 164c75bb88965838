package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/LogFlow-api/internal/domain"
	"github.com/jhoicas/LogFlow-api/internal/domain/entity"
	"github.com/jhoicas/LogFlow-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, code, name, description, category_id, unit, unit_price, current_stock,
	minimum_stock, maximum_stock, location, status, is_active, created_by, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.Description, &p.CategoryID, &p.Unit, &p.UnitPrice, &p.CurrentStock,
		&p.MinimumStock, &p.MaximumStock, &p.Location, &p.Status, &p.IsActive, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateIfAbsent inserta el producto; si el código ya existe no hace nada y devuelve false.
func (r *ProductRepo) CreateIfAbsent(ctx context.Context, product *entity.Product) (bool, error) {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (code) DO NOTHING`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.Code, product.Name, product.Description, product.CategoryID, product.Unit,
		product.UnitPrice, product.CurrentStock, product.MinimumStock, product.MaximumStock, product.Location,
		product.Status, product.IsActive, product.CreatedBy, product.CreatedAt,
		updatedAt(product.CreatedAt, product.UpdatedAt),
	)
	if err != nil {
		if isCheckViolation(err) {
			return false, fmt.Errorf("insert product: %w", domain.ErrNegativeStock)
		}
		if isForeignKeyViolation(err) {
			return false, fmt.Errorf("insert product: %w: categoria inexistente", domain.ErrInvalidInput)
		}
		return false, fmt.Errorf("insert product: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *ProductRepo) getOne(ctx context.Context, where string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidText(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	return r.getOne(ctx, `WHERE id = $1`, id)
}

// GetByCodeForUpdate obtiene el producto por código con SELECT ... FOR UPDATE.
func (r *ProductRepo) GetByCodeForUpdate(ctx context.Context, code string) (*entity.Product, error) {
	return r.getOne(ctx, `WHERE code = $1 FOR UPDATE`, code)
}

// GetByIDForUpdate obtiene el producto por ID con SELECT ... FOR UPDATE.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	return r.getOne(ctx, `WHERE id = $1 FOR UPDATE`, id)
}

// UpdateStock persiste current_stock. El CHECK (current_stock >= 0) de la tabla es la última barrera.
func (r *ProductRepo) UpdateStock(ctx context.Context, product *entity.Product) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET current_stock = $2, updated_at = $3 WHERE id = $1`,
		product.ID, product.CurrentStock, updatedAt(product.CreatedAt, product.UpdatedAt),
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("update stock: %w", domain.ErrNegativeStock)
		}
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos por código con paginación.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return r.list(ctx, `SELECT `+productColumns+` FROM products ORDER BY code LIMIT $1 OFFSET $2`, limit, offset)
}

// ListNeedingRestock productos activos con current_stock <= minimum_stock.
func (r *ProductRepo) ListNeedingRestock(ctx context.Context, limit int) ([]*entity.Product, error) {
	return r.list(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE is_active AND current_stock <= minimum_stock
		ORDER BY code LIMIT $1`, limit)
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
