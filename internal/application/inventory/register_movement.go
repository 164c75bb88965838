package inventory

import (
	"context"

	"github.com/jhoicas/LogFlow-api/internal/application/dto"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement(ctx, MovementInputDTO).
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.StockMovementResponse, error) {
	mov, err := uc.RegisterMovement(ctx, MovementInputDTO{
		UserID:    userID,
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reference: in.Reference,
		Notes:     in.Notes,
	})
	if err != nil {
		return nil, err
	}
	out := dto.StockMovementFromEntity(mov)
	return &out, nil
}
