package repository

import (
	"context"

	"github.com/jhoicas/LogFlow-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// CreateIfAbsent inserta el producto salvo que el código ya exista. Devuelve true si lo creó.
	CreateIfAbsent(ctx context.Context, product *entity.Product) (bool, error)
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByCodeForUpdate obtiene el producto bloqueando la fila hasta el fin de la transacción.
	GetByCodeForUpdate(ctx context.Context, code string) (*entity.Product, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// UpdateStock persiste current_stock; solo lo invoca el registro de movimientos.
	UpdateStock(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	// ListNeedingRestock productos activos con current_stock <= minimum_stock.
	ListNeedingRestock(ctx context.Context, limit int) ([]*entity.Product, error)
}
