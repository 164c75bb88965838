package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/LogFlow-api/internal/application/dto"
	"github.com/jhoicas/LogFlow-api/internal/application/importer"
	"github.com/jhoicas/LogFlow-api/internal/application/inventory"
	"github.com/jhoicas/LogFlow-api/internal/application/orders"
	"github.com/jhoicas/LogFlow-api/internal/application/usecase"
	"github.com/jhoicas/LogFlow-api/internal/domain/entity"
	"github.com/jhoicas/LogFlow-api/internal/infrastructure/filestore"
	"github.com/jhoicas/LogFlow-api/internal/infrastructure/memory"
	"github.com/jhoicas/LogFlow-api/internal/infrastructure/spreadsheet"
	apphttp "github.com/jhoicas/LogFlow-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildAPI arma la API completa sobre la base en memoria.
func buildAPI(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	imp := importer.NewUseCase(
		filestore.NewMemoryStore(),
		spreadsheet.NewExcelDecoder(),
		store,
		store.ImportBatches(),
		nil,
		"excel_uploads",
	)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Importer:         imp,
		ProductUC:        usecase.NewProductUseCase(store.Products(), store.Movements()),
		CategoryUC:       usecase.NewCategoryUseCase(store.Categories()),
		ClientUC:         usecase.NewClientUseCase(store.Clients()),
		OrderUC:          usecase.NewOrderUseCase(store.Orders(), store.OrderHistory()),
		OrderStatus:      orders.NewUpdateStatusUseCase(store),
		RegisterMovement: inventory.NewRegisterMovementUseCase(store),
		Replenishment:    inventory.NewReplenishmentUseCase(store.Products()),
		JWTSecret:        testJWTSecret,
	})
	return app, store
}

func workbook(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func uploadRequest(t *testing.T, role, filename, dataType string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	if dataType != "" {
		require.NoError(t, w.WriteField("type", dataType))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload/excel", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", tokenForRole(t, role))
	return req
}

func jsonRequest(t *testing.T, method, path, role string, payload any) *http.Request {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	return req
}

func send(t *testing.T, app *fiber.App, req *http.Request, out any) int {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// ──────────────────────────────────────────────────────────────────────────────
// Upload + Process
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_UploadYProcessInventario(t *testing.T) {
	app, store := buildAPI(t)
	data := workbook(t, [][]any{
		{"code", "name", "category", "quantity"},
		{"A1", "Widget", "Ferragens", 10},
		{"", "Sem código", "", 1},
		{"A1", "Widget", "Ferragens", 5},
	})

	var up dto.UploadResponse
	status := send(t, app, uploadRequest(t, "operador", "estoque.xlsx", "inventory", data), &up)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Arquivo enviado com sucesso", up.Message)
	assert.Equal(t, 3, up.RowsCount)
	assert.Equal(t, []string{"code", "name", "category", "quantity"}, up.Columns)
	assert.True(t, strings.HasPrefix(up.FilePath, "excel_uploads/inventory/"))

	var res dto.ProcessImportResponse
	status = send(t, app, jsonRequest(t, http.MethodPost, "/api/upload/process", "admin", dto.ProcessImportRequest{
		FilePath: up.FilePath, DataType: "inventory",
	}), &res)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, res.ProcessedRows)
	assert.Equal(t, []string{"Linha 2: Código e nome são obrigatórios"}, res.Errors)
	assert.Equal(t, "Processamento concluído. 2 produtos processados.", res.Message)

	var products dto.ProductListResponse
	require.Equal(t, http.StatusOK, send(t, app, jsonRequest(t, http.MethodGet, "/api/products", "consulta", nil), &products))
	require.Len(t, products.Items, 1)
	assert.Equal(t, 15, products.Items[0].CurrentStock)

	var movements dto.StockMovementListResponse
	path := "/api/products/" + products.Items[0].ID + "/movements"
	require.Equal(t, http.StatusOK, send(t, app, jsonRequest(t, http.MethodGet, path, "consulta", nil), &movements))
	require.Len(t, movements.Items, 1)
	assert.Equal(t, entity.MovementTypeIn, movements.Items[0].Type)
	assert.Equal(t, "Importação Excel - Linha 3", movements.Items[0].Reference)

	var history dto.ImportBatchListResponse
	require.Equal(t, http.StatusOK, send(t, app, jsonRequest(t, http.MethodGet, "/api/imports", "consulta", nil), &history))
	require.Len(t, history.Items, 1)
	assert.Equal(t, entity.ImportStatusCompleted, history.Items[0].Status)

	all, err := store.Movements().All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAPI_UploadErrores(t *testing.T) {
	app, _ := buildAPI(t)

	cases := []struct {
		name   string
		req    *http.Request
		status int
		code   string
	}{
		{"sin archivo", uploadRequest(t, "admin", "", "inventory", nil), http.StatusBadRequest, "VALIDATION"},
		{"extensión", uploadRequest(t, "admin", "dados.csv", "inventory", []byte("a,b")), http.StatusBadRequest, "UNSUPPORTED_FORMAT"},
		{"bytes inválidos", uploadRequest(t, "admin", "roto.xlsx", "inventory", []byte("no zip")), http.StatusBadRequest, "DECODE_ERROR"},
		{"xls inválido", uploadRequest(t, "admin", "antigo.xls", "inventory", []byte("no biff")), http.StatusBadRequest, "DECODE_ERROR"},
		{"tipo desconocido", uploadRequest(t, "admin", "a.xlsx", "suppliers", []byte("x")), http.StatusBadRequest, "UNSUPPORTED_DATA_TYPE"},
		{"rol consulta", uploadRequest(t, "consulta", "a.xlsx", "inventory", []byte("x")), http.StatusForbidden, "FORBIDDEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out dto.ErrorResponse
			assert.Equal(t, tc.status, send(t, app, tc.req, &out))
			assert.Equal(t, tc.code, out.Code)
		})
	}
}

func TestAPI_ProcessErrores(t *testing.T) {
	app, _ := buildAPI(t)

	cases := []struct {
		name   string
		body   dto.ProcessImportRequest
		status int
		code   string
	}{
		{"sin parámetros", dto.ProcessImportRequest{}, http.StatusBadRequest, "VALIDATION"},
		{"tipo desconocido", dto.ProcessImportRequest{FilePath: "excel_uploads/x/a.xlsx", DataType: "x"}, http.StatusBadRequest, "UNSUPPORTED_DATA_TYPE"},
		{"ruta fuera del prefijo", dto.ProcessImportRequest{FilePath: "../etc/passwd.xlsx", DataType: "clients"}, http.StatusBadRequest, "VALIDATION"},
		{"archivo inexistente", dto.ProcessImportRequest{FilePath: "excel_uploads/clients/nada.xlsx", DataType: "clients"}, http.StatusNotFound, "FILE_NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out dto.ErrorResponse
			assert.Equal(t, tc.status, send(t, app, jsonRequest(t, http.MethodPost, "/api/upload/process", "admin", tc.body), &out))
			assert.Equal(t, tc.code, out.Code)
		})
	}
}

func TestAPI_BatchAbortadoResponde500(t *testing.T) {
	app, store := buildAPI(t)
	data := workbook(t, [][]any{{"name"}, {"Ana Souza"}})
	var up dto.UploadResponse
	require.Equal(t, http.StatusOK, send(t, app, uploadRequest(t, "admin", "clientes.xlsx", "clients", data), &up))

	store.BreakSavepoints(true)
	var out dto.ErrorResponse
	status := send(t, app, jsonRequest(t, http.MethodPost, "/api/upload/process", "admin", dto.ProcessImportRequest{
		FilePath: up.FilePath, DataType: "clients",
	}), &out)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "BATCH_ABORTED", out.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas y movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_MovimientoManualYReposicion(t *testing.T) {
	app, store := buildAPI(t)
	ctx := context.Background()
	_, err := store.Products().CreateIfAbsent(ctx, &entity.Product{
		ID: "p1", Code: "A1", Name: "Widget", Unit: entity.UnitDefault, CurrentStock: 2, MinimumStock: 5,
		Status: entity.ProductStatusActive, IsActive: true,
	})
	require.NoError(t, err)

	var restock struct {
		Total          int                              `json:"total"`
		Replenishments []dto.ReplenishmentSuggestionDTO `json:"replenishments"`
	}
	require.Equal(t, http.StatusOK, send(t, app, jsonRequest(t, http.MethodGet, "/api/products/restock", "consulta", nil), &restock))
	require.Equal(t, 1, restock.Total)
	assert.Equal(t, 8, restock.Replenishments[0].SuggestedOrderQty)

	var mov dto.StockMovementResponse
	status := send(t, app, jsonRequest(t, http.MethodPost, "/api/inventory/movements", "operador", map[string]any{
		"product_id": "p1", "movement_type": "in", "quantity": 8,
	}), &mov)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 10, mov.CurrentStock)
	assert.Equal(t, testUserID, mov.CreatedBy)

	var errOut dto.ErrorResponse
	status = send(t, app, jsonRequest(t, http.MethodPost, "/api/inventory/movements", "operador", map[string]any{
		"product_id": "p1", "movement_type": "out", "quantity": 11,
	}), &errOut)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "NEGATIVE_STOCK", errOut.Code)

	status = send(t, app, jsonRequest(t, http.MethodPost, "/api/inventory/movements", "consulta", map[string]any{
		"product_id": "p1", "movement_type": "in", "quantity": 1,
	}), &errOut)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestAPI_OrdenesYClientes(t *testing.T) {
	app, _ := buildAPI(t)
	data := workbook(t, [][]any{
		{"Cliente", "order_type", "description"},
		{"Ana Souza", "pickup", "Coleta"},
		{"", "delivery", "Sem cliente"},
	})
	var up dto.UploadResponse
	require.Equal(t, http.StatusOK, send(t, app, uploadRequest(t, "admin", "ordens.xlsx", "orders", data), &up))

	var res dto.ProcessImportResponse
	require.Equal(t, http.StatusOK, send(t, app, jsonRequest(t, http.MethodPost, "/api/upload/process", "admin", dto.ProcessImportRequest{
		FilePath: up.FilePath, DataType: "orders", ColumnMapping: map[string]string{"client": "Cliente"},
	}), &res))
	assert.Equal(t, 1, res.ProcessedRows)
	assert.Equal(t, []string{"Linha 2: Nome do cliente é obrigatório"}, res.Errors)

	var orders dto.OrderListResponse
	require.Equal(t, http.StatusOK, send(t, app, jsonRequest(t, http.MethodGet, "/api/orders", "consulta", nil), &orders))
	require.Len(t, orders.Items, 1)
	assert.Equal(t, entity.OrderTypePickup, orders.Items[0].OrderType)
	assert.False(t, orders.Items[0].IsOverdue)

	var one dto.OrderResponse
	require.Equal(t, http.StatusOK, send(t, app, jsonRequest(t, http.MethodGet, "/api/orders/"+orders.Items[0].ID, "consulta", nil), &one))
	assert.Equal(t, orders.Items[0].OrderNumber, one.OrderNumber)

	var missing dto.ErrorResponse
	assert.Equal(t, http.StatusNotFound, send(t, app, jsonRequest(t, http.MethodGet, "/api/orders/nope", "consulta", nil), &missing))
	assert.Equal(t, "NOT_FOUND", missing.Code)

	var clients dto.ClientListResponse
	require.Equal(t, http.StatusOK, send(t, app, jsonRequest(t, http.MethodGet, "/api/clients", "consulta", nil), &clients))
	require.Len(t, clients.Items, 1)
	assert.Equal(t, "ana.souza@exemplo.com", clients.Items[0].Email)
}

func TestAPI_SinToken(t *testing.T) {
	app, _ := buildAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	var out dto.ErrorResponse
	assert.Equal(t, http.StatusUnauthorized, send(t, app, req, &out))
	assert.Equal(t, "MISSING_TOKEN", out.Code)
}

func TestAPI_CategoriasYCliente(t *testing.T) {
	app, _ := buildAPI(t)
	data := workbook(t, [][]any{
		{"code", "name", "category"},
		{"A1", "Widget", "Ferragens"},
		{"B2", "Caixa", ""},
	})
	var up dto.UploadResponse
	require.Equal(t, http.StatusOK, send(t, app, uploadRequest(t, "admin", "estoque.xlsx", "inventory", data), &up))
	require.Equal(t, http.StatusOK, send(t, app, jsonRequest(t, http.MethodPost, "/api/upload/process", "admin", dto.ProcessImportRequest{
		FilePath: up.FilePath, DataType: "inventory",
	}), nil))

	var categories dto.CategoryListResponse
	require.Equal(t, http.StatusOK, send(t, app, jsonRequest(t, http.MethodGet, "/api/categories", "consulta", nil), &categories))
	require.Equal(t, 2, categories.Total)
	assert.Equal(t, "Ferragens", categories.Items[0].Name)
	assert.Equal(t, entity.DefaultCategoryName, categories.Items[1].Name)

	data = workbook(t, [][]any{{"name", "address"}, {"Ana Souza", "Rua das Flores, 10"}})
	require.Equal(t, http.StatusOK, send(t, app, uploadRequest(t, "admin", "clientes.xlsx", "clients", data), &up))
	require.Equal(t, http.StatusOK, send(t, app, jsonRequest(t, http.MethodPost, "/api/upload/process", "admin", dto.ProcessImportRequest{
		FilePath: up.FilePath, DataType: "clients",
	}), nil))

	var clients dto.ClientListResponse
	require.Equal(t, http.StatusOK, send(t, app, jsonRequest(t, http.MethodGet, "/api/clients", "consulta", nil), &clients))
	require.Len(t, clients.Items, 1)

	var one dto.ClientResponse
	require.Equal(t, http.StatusOK, send(t, app, jsonRequest(t, http.MethodGet, "/api/clients/"+clients.Items[0].ID, "consulta", nil), &one))
	assert.Equal(t, "Ana Souza", one.Name)
	assert.Equal(t, "Rua das Flores, 10", one.Address)

	var missing dto.ErrorResponse
	assert.Equal(t, http.StatusNotFound, send(t, app, jsonRequest(t, http.MethodGet, "/api/clients/nope", "consulta", nil), &missing))
	assert.Equal(t, "NOT_FOUND", missing.Code)
}

func TestAPI_EstadoDeOrdenYAtrasadas(t *testing.T) {
	app, store := buildAPI(t)
	ctx := context.Background()
	past := time.Now().Add(-48 * time.Hour)
	for _, o := range []*entity.Order{
		{ID: "o1", OrderType: entity.OrderTypeDelivery, Status: entity.OrderStatusReady, ScheduledDate: &past},
		{ID: "o2", OrderType: entity.OrderTypePickup, Status: entity.OrderStatusPending},
	} {
		require.NoError(t, store.Orders().Create(ctx, o))
	}

	var overdue dto.OrderListResponse
	require.Equal(t, http.StatusOK, send(t, app, jsonRequest(t, http.MethodGet, "/api/orders/overdue", "consulta", nil), &overdue))
	require.Len(t, overdue.Items, 1)
	assert.Equal(t, "o1", overdue.Items[0].ID)
	assert.True(t, overdue.Items[0].IsOverdue)

	var errOut dto.ErrorResponse
	status := send(t, app, jsonRequest(t, http.MethodPost, "/api/orders/o1/status", "consulta", dto.UpdateOrderStatusRequest{Status: "completed"}), &errOut)
	assert.Equal(t, http.StatusForbidden, status)

	status = send(t, app, jsonRequest(t, http.MethodPost, "/api/orders/o2/status", "operador", dto.UpdateOrderStatusRequest{Status: "completed"}), &errOut)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errOut.Code)

	var updated dto.OrderResponse
	status = send(t, app, jsonRequest(t, http.MethodPost, "/api/orders/o1/status", "operador", dto.UpdateOrderStatusRequest{
		Status: "completed", Notes: "Entregue ao cliente",
	}), &updated)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, entity.OrderStatusCompleted, updated.Status)
	assert.NotNil(t, updated.CompletedDate)
	assert.False(t, updated.IsOverdue)

	var history dto.OrderStatusHistoryResponse
	require.Equal(t, http.StatusOK, send(t, app, jsonRequest(t, http.MethodGet, "/api/orders/o1/history", "consulta", nil), &history))
	require.Len(t, history.Items, 1)
	assert.Equal(t, entity.OrderStatusReady, history.Items[0].FromStatus)
	assert.Equal(t, testUserID, history.Items[0].CreatedBy)
	assert.Equal(t, "Entregue ao cliente", history.Items[0].Notes)

	require.Equal(t, http.StatusOK, send(t, app, jsonRequest(t, http.MethodGet, "/api/orders/overdue", "consulta", nil), &overdue))
	assert.Empty(t, overdue.Items)
}

func TestAPI_IDsMalformadosResponden404(t *testing.T) {
	app, _ := buildAPI(t)

	for _, path := range []string{
		"/api/products/abc",
		"/api/products/abc/movements",
		"/api/orders/abc",
		"/api/orders/abc/history",
		"/api/clients/abc",
	} {
		t.Run(path, func(t *testing.T) {
			var out dto.ErrorResponse
			assert.Equal(t, http.StatusNotFound, send(t, app, jsonRequest(t, http.MethodGet, path, "consulta", nil), &out))
			assert.Equal(t, "NOT_FOUND", out.Code)
		})
	}

	var out dto.ErrorResponse
	status := send(t, app, jsonRequest(t, http.MethodPost, "/api/inventory/movements", "operador", map[string]any{
		"product_id": "abc", "movement_type": "in", "quantity": 1,
	}), &out)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", out.Code)

	status = send(t, app, jsonRequest(t, http.MethodPost, "/api/orders/abc/status", "operador", dto.UpdateOrderStatusRequest{Status: "processing"}), &out)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", out.Code)
}
