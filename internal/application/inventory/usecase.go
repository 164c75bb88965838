package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/LogFlow-api/internal/domain"
	"github.com/jhoicas/LogFlow-api/internal/domain/entity"
	"github.com/jhoicas/LogFlow-api/internal/domain/inventory"
	"github.com/jhoicas/LogFlow-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos manuales de stock de forma transaccional
// (in, out, adjustment, transfer) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, now: time.Now}
}

// RegisterMovement inicia una transacción, bloquea el producto, calcula el nuevo stock
// con el libro de dominio y persiste producto y movimiento juntos.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*entity.StockMovement, error) {
	input.Type = strings.ToLower(strings.TrimSpace(input.Type))
	if input.ProductID == "" {
		return nil, fmt.Errorf("%w: product_id é obrigatório", domain.ErrInvalidInput)
	}
	if input.Quantity <= 0 && input.Type != entity.MovementTypeAdjustment {
		return nil, fmt.Errorf("%w: quantidade deve ser maior que zero", domain.ErrInvalidInput)
	}
	if len(input.Reference) > 100 {
		return nil, fmt.Errorf("%w: referência excede 100 caracteres", domain.ErrInvalidInput)
	}

	var created *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) error {
		product, err := productRepo.GetByIDForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		mov, err := inventory.ApplyMovement(product, inventory.MovementInput{
			Type:      input.Type,
			Quantity:  input.Quantity,
			Reference: input.Reference,
			Notes:     input.Notes,
			UserID:    input.UserID,
			At:        uc.now(),
		})
		if err != nil {
			return err
		}
		mov.ID = uuid.New().String()
		if err := productRepo.UpdateStock(ctx, product); err != nil {
			return err
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
