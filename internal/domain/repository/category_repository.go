package repository

import (
	"context"

	"github.com/jhoicas/LogFlow-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	// GetOrCreateByName devuelve la categoría con ese nombre, creándola de forma atómica si no existe.
	GetOrCreateByName(ctx context.Context, category *entity.Category) (*entity.Category, bool, error)
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
}
