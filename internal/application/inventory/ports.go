package inventory

import (
	"context"

	"github.com/jhoicas/LogFlow-api/internal/domain/repository"
)

// TxRunner abre una transacción y entrega los repositorios de producto y movimiento
// atados a ella; fn devolviendo error implica Rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// MovementInputDTO movimiento manual pedido por un usuario.
type MovementInputDTO struct {
	UserID    string
	ProductID string
	Type      string // in, out, adjustment, transfer
	Quantity  int
	Reference string
	Notes     string
}
