package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/LogFlow-api/internal/application/dto"
	"github.com/jhoicas/LogFlow-api/internal/domain"
	"github.com/jhoicas/LogFlow-api/internal/domain/entity"
	"github.com/jhoicas/LogFlow-api/internal/domain/repository"
)

// UpdateStatusUseCase cambia el estado de una orden y registra el cambio en el historial,
// ambos en la misma transacción y con la fila de la orden bloqueada.
type UpdateStatusUseCase struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewUpdateStatusUseCase construye el caso de uso.
func NewUpdateStatusUseCase(txRunner TxRunner) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{txRunner: txRunner, now: time.Now}
}

// UpdateStatus valida la transición, fija completed_date al completar y persiste orden e historial.
func (uc *UpdateStatusUseCase) UpdateStatus(ctx context.Context, input StatusInputDTO) (*entity.Order, *entity.OrderStatusChange, error) {
	input.Status = strings.ToLower(strings.TrimSpace(input.Status))
	if input.OrderID == "" {
		return nil, nil, fmt.Errorf("%w: id da ordem é obrigatório", domain.ErrInvalidInput)
	}
	if input.Status == "" {
		return nil, nil, fmt.Errorf("%w: status é obrigatório", domain.ErrInvalidInput)
	}

	var (
		updated *entity.Order
		change  *entity.OrderStatusChange
	)
	err := uc.txRunner.RunOrder(ctx, func(orderRepo repository.OrderRepository, historyRepo repository.OrderStatusHistoryRepository) error {
		order, err := orderRepo.GetByIDForUpdate(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if !order.CanTransitionTo(input.Status) {
			return fmt.Errorf("%w: transição de %s para %s não permitida", domain.ErrInvalidInput, order.Status, input.Status)
		}
		now := uc.now()
		c := &entity.OrderStatusChange{
			ID:         uuid.New().String(),
			OrderID:    order.ID,
			FromStatus: order.Status,
			Status:     input.Status,
			Notes:      input.Notes,
			CreatedBy:  input.UserID,
			CreatedAt:  now,
		}
		order.Status = input.Status
		if input.Status == entity.OrderStatusCompleted {
			order.CompletedDate = &now
		}
		if input.ScheduledDate != nil {
			order.ScheduledDate = input.ScheduledDate
		}
		order.UpdatedAt = now
		if err := orderRepo.UpdateStatus(ctx, order); err != nil {
			return err
		}
		if err := historyRepo.Create(ctx, c); err != nil {
			return err
		}
		updated, change = order, c
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return updated, change, nil
}

// UpdateStatusFromRequest adapta el request HTTP al caso de uso.
func (uc *UpdateStatusUseCase) UpdateStatusFromRequest(ctx context.Context, userID, orderID string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	order, _, err := uc.UpdateStatus(ctx, StatusInputDTO{
		UserID:        userID,
		OrderID:       orderID,
		Status:        in.Status,
		Notes:         in.Notes,
		ScheduledDate: in.ScheduledDate,
	})
	if err != nil {
		return nil, err
	}
	out := dto.OrderFromEntity(order, uc.now())
	return &out, nil
}
