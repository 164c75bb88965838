package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/LogFlow-api/internal/application/dto"
	"github.com/jhoicas/LogFlow-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición: productos activos en o bajo el stock mínimo.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(productRepo repository.ProductRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo}
}

// GenerateReplenishmentList devuelve los productos a reponer con la cantidad sugerida.
// Sin máximo configurado el objetivo es el doble del mínimo.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, limit int) ([]dto.ReplenishmentSuggestionDTO, error) {
	if limit <= 0 {
		limit = 100
	}
	products, err := uc.productRepo.ListNeedingRestock(ctx, limit)
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(products))
	for _, p := range products {
		target := p.MinimumStock * 2
		if p.MaximumStock != nil && *p.MaximumStock > 0 {
			target = *p.MaximumStock
		}
		qty := target - p.CurrentStock
		if qty < 0 {
			qty = 0
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:         p.ID,
			Code:              p.Code,
			Name:              p.Name,
			CurrentStock:      p.CurrentStock,
			MinimumStock:      p.MinimumStock,
			MaximumStock:      p.MaximumStock,
			TargetStock:       target,
			SuggestedOrderQty: qty,
			EstimatedCost:     p.UnitPrice.Mul(decimal.NewFromInt(int64(qty))),
		})
	}

	// Mayor déficit relativo primero; empate por código para un orden estable.
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		da, db := a.MinimumStock-a.CurrentStock, b.MinimumStock-b.CurrentStock
		if da != db {
			return da > db
		}
		return a.Code < b.Code
	})

	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
