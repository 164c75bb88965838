package repository

import (
	"context"

	"github.com/jhoicas/LogFlow-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	// GetOrCreateByName busca por nombre y, si no existe, inserta client. La operación
	// es atómica por nombre dentro de la transacción. Devuelve true si lo creó.
	GetOrCreateByName(ctx context.Context, client *entity.Client) (*entity.Client, bool, error)
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	List(ctx context.Context, limit, offset int) ([]*entity.Client, error)
}
