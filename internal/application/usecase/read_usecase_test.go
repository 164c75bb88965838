package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/LogFlow-api/internal/application/dto"
	"github.com/jhoicas/LogFlow-api/internal/application/inventory"
	"github.com/jhoicas/LogFlow-api/internal/application/usecase"
	"github.com/jhoicas/LogFlow-api/internal/domain"
	"github.com/jhoicas/LogFlow-api/internal/domain/entity"
	"github.com/jhoicas/LogFlow-api/internal/infrastructure/memory"
)

func intPtr(v int) *int { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProductUseCase_GetByIDConCamposDerivados(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	_, err := store.Products().CreateIfAbsent(ctx, &entity.Product{
		ID: "p1", Code: "A1", Name: "Widget", Unit: entity.UnitDefault,
		CurrentStock: 25, MinimumStock: 5, MaximumStock: intPtr(50),
		Status: entity.ProductStatusActive, IsActive: true,
	})
	require.NoError(t, err)
	uc := usecase.NewProductUseCase(store.Products(), store.Movements())

	out, err := uc.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "A1", out.Code)
	assert.Equal(t, entity.StockStatusNormal, out.StockStatus)
	assert.False(t, out.NeedsRestock)
	assert.InDelta(t, 50.0, out.StockPercentage, 0.001)

	_, err = uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_ListPaginaPorCodigo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	for _, code := range []string{"C", "A", "B"} {
		_, err := store.Products().CreateIfAbsent(ctx, &entity.Product{ID: "id-" + code, Code: code, Name: code})
		require.NoError(t, err)
	}
	uc := usecase.NewProductUseCase(store.Products(), store.Movements())

	out, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 20, out.Page.Limit)
	require.Len(t, out.Items, 3)
	assert.Equal(t, "A", out.Items[0].Code)
	assert.Equal(t, entity.StockStatusLow, out.Items[0].StockStatus)

	out, err = uc.List(ctx, dto.PageRequest{Limit: 1, Offset: 2})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "C", out.Items[0].Code)
}

func TestProductUseCase_ListMovements(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	_, err := store.Products().CreateIfAbsent(ctx, &entity.Product{ID: "p1", Code: "A1", Name: "Widget"})
	require.NoError(t, err)
	reg := inventory.NewRegisterMovementUseCase(store)
	for _, q := range []int{3, 4} {
		_, err := reg.RegisterMovement(ctx, inventory.MovementInputDTO{ProductID: "p1", Type: "in", Quantity: q})
		require.NoError(t, err)
	}
	uc := usecase.NewProductUseCase(store.Products(), store.Movements())

	out, err := uc.ListMovements(ctx, "p1", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, 7, out.Items[0].CurrentStock)
	assert.Equal(t, 3, out.Items[1].CurrentStock)

	_, err = uc.ListMovements(ctx, "nope", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías, clientes y órdenes
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryUseCase_ListPorNombre(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	for _, name := range []string{"Ferragens", "Embalagens"} {
		_, _, err := store.Categories().GetOrCreateByName(ctx, &entity.Category{ID: "cat-" + name, Name: name, IsActive: true})
		require.NoError(t, err)
	}

	out, err := usecase.NewCategoryUseCase(store.Categories()).List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Embalagens", out.Items[0].Name)
	assert.Equal(t, "cat-Embalagens", out.Items[0].ID)

	empty, err := usecase.NewCategoryUseCase(memory.NewStore().Categories()).List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty.Items)
	assert.Zero(t, empty.Total)
}

func TestClientUseCase_GetByID(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	_, _, err := store.Clients().GetOrCreateByName(ctx, &entity.Client{ID: "c1", Name: "Ana", Email: "ana@exemplo.com", City: "Recife"})
	require.NoError(t, err)
	uc := usecase.NewClientUseCase(store.Clients())

	out, err := uc.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", out.Name)
	assert.Equal(t, "Recife", out.City)

	_, err = uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClientUseCase_List(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	for _, name := range []string{"Bia", "Ana"} {
		_, _, err := store.Clients().GetOrCreateByName(ctx, &entity.Client{ID: "c-" + name, Name: name, IsActive: true})
		require.NoError(t, err)
	}

	out, err := usecase.NewClientUseCase(store.Clients()).List(ctx, dto.PageRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "Ana", out.Items[0].Name)
	assert.True(t, out.Items[0].IsActive)
}

func TestOrderUseCase_IsOverdue(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)
	orders := []*entity.Order{
		{ID: "o1", Status: entity.OrderStatusPending, ScheduledDate: &past},
		{ID: "o2", Status: entity.OrderStatusCompleted, ScheduledDate: &past},
		{ID: "o3", Status: entity.OrderStatusPending, ScheduledDate: &future},
		{ID: "o4", Status: entity.OrderStatusPending},
	}
	for _, o := range orders {
		o.OrderType = entity.OrderTypeDelivery
		o.Priority = entity.OrderPriorityNormal
		require.NoError(t, store.Orders().Create(ctx, o))
	}
	uc := usecase.NewOrderUseCase(store.Orders(), store.OrderHistory())

	got, err := uc.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.True(t, got.IsOverdue)
	assert.Equal(t, "ORD-000001", got.OrderNumber)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 4)
	overdue := map[string]bool{}
	for _, o := range list.Items {
		overdue[o.ID] = o.IsOverdue
	}
	assert.Equal(t, map[string]bool{"o1": true, "o2": false, "o3": false, "o4": false}, overdue)
	assert.Equal(t, "o4", list.Items[0].ID, "más recientes primero")

	_, err = uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderUseCase_ListOverdueEHistorial(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	past := time.Now().Add(-48 * time.Hour)
	older := time.Now().Add(-96 * time.Hour)
	for _, o := range []*entity.Order{
		{ID: "o1", Status: entity.OrderStatusPending, ScheduledDate: &past},
		{ID: "o2", Status: entity.OrderStatusProcessing, ScheduledDate: &older},
		{ID: "o3", Status: entity.OrderStatusCancelled, ScheduledDate: &older},
	} {
		require.NoError(t, store.Orders().Create(ctx, o))
	}
	uc := usecase.NewOrderUseCase(store.Orders(), store.OrderHistory())

	overdue, err := uc.ListOverdue(ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, overdue.Items, 2)
	assert.Equal(t, "o2", overdue.Items[0].ID)
	assert.True(t, overdue.Items[0].IsOverdue)
	assert.Equal(t, dto.DefaultPageLimit, overdue.Page.Limit)

	require.NoError(t, store.OrderHistory().Create(ctx, &entity.OrderStatusChange{
		ID: "h1", OrderID: "o1", FromStatus: entity.OrderStatusPending, Status: entity.OrderStatusProcessing,
	}))
	history, err := uc.History(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, history.Items, 1)
	assert.Equal(t, entity.OrderStatusProcessing, history.Items[0].Status)

	empty, err := uc.History(ctx, "o2")
	require.NoError(t, err)
	assert.Empty(t, empty.Items)

	_, err = uc.History(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
