package usecase

import (
	"context"

	"github.com/jhoicas/LogFlow-api/internal/application/dto"
	"github.com/jhoicas/LogFlow-api/internal/domain/repository"
)

// CategoryUseCase consultas de categorías. Las categorías nacen en la importación de inventario.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// List devuelve todas las categorías ordenadas por nombre.
func (uc *CategoryUseCase) List(ctx context.Context) (*dto.CategoryListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.CategoryResponse{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			IsActive:    c.IsActive,
			CreatedAt:   c.CreatedAt,
		})
	}
	return &dto.CategoryListResponse{Items: items, Total: len(items)}, nil
}
