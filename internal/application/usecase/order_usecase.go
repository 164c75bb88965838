package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/LogFlow-api/internal/application/dto"
	"github.com/jhoicas/LogFlow-api/internal/domain/entity"
	"github.com/jhoicas/LogFlow-api/internal/domain/repository"
)

// OrderUseCase consultas de órdenes; calcula is_overdue al momento de la consulta.
type OrderUseCase struct {
	repo        repository.OrderRepository
	historyRepo repository.OrderStatusHistoryRepository
	now         func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(repo repository.OrderRepository, historyRepo repository.OrderStatusHistoryRepository) *OrderUseCase {
	return &OrderUseCase{repo: repo, historyRepo: historyRepo, now: time.Now}
}

// GetByID obtiene una orden por ID.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.OrderFromEntity(order, uc.now())
	return &out, nil
}

// List lista órdenes, más recientes primero.
func (uc *OrderUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.OrderListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return uc.toList(list, page), nil
}

// ListOverdue lista las órdenes atrasadas, las de fecha agendada más antigua primero.
func (uc *OrderUseCase) ListOverdue(ctx context.Context, page dto.PageRequest) (*dto.OrderListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListOverdue(ctx, uc.now(), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return uc.toList(list, page), nil
}

// History devuelve los cambios de estado de la orden, en orden cronológico.
func (uc *OrderUseCase) History(ctx context.Context, orderID string) (*dto.OrderStatusHistoryResponse, error) {
	if _, err := uc.repo.GetByID(ctx, orderID); err != nil {
		return nil, err
	}
	list, err := uc.historyRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderStatusChangeResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.OrderStatusChangeFromEntity(c))
	}
	return &dto.OrderStatusHistoryResponse{OrderID: orderID, Items: items}, nil
}

func (uc *OrderUseCase) toList(list []*entity.Order, page dto.PageRequest) *dto.OrderListResponse {
	now := uc.now()
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, dto.OrderFromEntity(o, now))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}
