package usecase

import (
	"context"

	"github.com/jhoicas/LogFlow-api/internal/application/dto"
	"github.com/jhoicas/LogFlow-api/internal/domain/entity"
	"github.com/jhoicas/LogFlow-api/internal/domain/repository"
)

// ProductUseCase consultas de productos. El stock solo cambia vía movimientos o importación.
type ProductUseCase struct {
	repo    repository.ProductRepository
	movRepo repository.StockMovementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, movRepo repository.StockMovementRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, movRepo: movRepo}
}

// GetByID obtiene un producto por ID (domain.ErrNotFound si no existe).
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos ordenados por código con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListMovements devuelve el libro de movimientos de un producto, más recientes primero.
func (uc *ProductUseCase) ListMovements(ctx context.Context, productID string, page dto.PageRequest) (*dto.StockMovementListResponse, error) {
	page.DefaultPage()
	if _, err := uc.repo.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	list, err := uc.movRepo.ListByProduct(ctx, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.StockMovementFromEntity(m))
	}
	return &dto.StockMovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:              p.ID,
		Code:            p.Code,
		Name:            p.Name,
		Description:     p.Description,
		CategoryID:      p.CategoryID,
		Unit:            p.Unit,
		UnitPrice:       p.UnitPrice,
		CurrentStock:    p.CurrentStock,
		MinimumStock:    p.MinimumStock,
		MaximumStock:    p.MaximumStock,
		Location:        p.Location,
		Status:          p.Status,
		StockStatus:     p.StockStatus(),
		NeedsRestock:    p.NeedsRestock(),
		StockPercentage: p.StockPercentage(),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
