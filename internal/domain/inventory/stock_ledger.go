package inventory

import (
	"fmt"
	"time"

	"github.com/jhoicas/LogFlow-api/internal/domain"
	"github.com/jhoicas/LogFlow-api/internal/domain/entity"
)

// NextStock calcula el stock resultante de un movimiento (servicio de dominio).
// in/transfer suman, out resta y adjustment fija el valor absoluto.
// El resultado nunca puede ser negativo.
func NextStock(previous int, movementType string, quantity int) (int, error) {
	if quantity < 0 {
		return 0, fmt.Errorf("%w: quantidade negativa", domain.ErrInvalidInput)
	}
	var next int
	switch movementType {
	case entity.MovementTypeIn, entity.MovementTypeTransfer:
		next = previous + quantity
	case entity.MovementTypeOut:
		next = previous - quantity
	case entity.MovementTypeAdjustment:
		next = quantity
	default:
		return 0, fmt.Errorf("%w: tipo de movimento %q", domain.ErrInvalidInput, movementType)
	}
	if next < 0 {
		return 0, domain.ErrNegativeStock
	}
	return next, nil
}

// MovementInput datos de un movimiento a registrar sobre un producto.
type MovementInput struct {
	Type      string
	Quantity  int
	Reference string
	Notes     string
	UserID    string
	At        time.Time
}

// ApplyMovement construye el movimiento y actualiza product.CurrentStock en memoria.
// El caller persiste ambos dentro de la misma transacción.
func ApplyMovement(product *entity.Product, in MovementInput) (*entity.StockMovement, error) {
	next, err := NextStock(product.CurrentStock, in.Type, in.Quantity)
	if err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		ProductID:     product.ID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		PreviousStock: product.CurrentStock,
		CurrentStock:  next,
		Reference:     in.Reference,
		Notes:         in.Notes,
		CreatedBy:     in.UserID,
		CreatedAt:     in.At,
	}
	product.CurrentStock = next
	product.UpdatedAt = in.At
	return mov, nil
}
