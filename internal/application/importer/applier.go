package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/LogFlow-api/internal/domain"
	"github.com/jhoicas/LogFlow-api/internal/domain/entity"
	"github.com/jhoicas/LogFlow-api/internal/domain/inventory"
)

const (
	autoCategoryDescription = "Categoria criada automaticamente"
	importMovementNotes     = "Importação automática via Excel"
	synthesizedEmailDomain  = "@exemplo.com"
)

var lowerPT = cases.Lower(language.BrazilianPortuguese)

// RowError falla de una fila; se reporta como "Linha N: mensaje" y no aborta el lote.
type RowError struct {
	Row     int
	Message string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("Linha %d: %s", e.Row, e.Message)
}

// Result salida del Applier.
type Result struct {
	Processed int
	Errors    []string
	Warnings  []string
}

// applyOptions parámetros del lote comunes a todas las filas.
type applyOptions struct {
	UserID          string
	DefaultMinStock int
	Now             time.Time
}

// applier aplica las filas de una hoja con la estrategia del tipo de datos.
type applier struct {
	mapper *Mapper
	opts   applyOptions
}

// run recorre las filas en orden físico. Cada fila válida se aplica en su propio savepoint;
// solo un error que envuelve domain.ErrBatchAborted (o la cancelación del contexto) corta el lote.
func (a *applier) run(ctx context.Context, tx BatchTx, dataType string, sheet *Sheet) (*Result, error) {
	res := &Result{
		Errors:   []string{},
		Warnings: a.mapper.Warnings(dataType, sheet.Headers),
	}
	if res.Warnings == nil {
		res.Warnings = []string{}
	}

	for i, row := range sheet.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rowNum := i + 1
		err := a.applyRow(ctx, tx, dataType, rowNum, row)
		if err == nil {
			res.Processed++
			continue
		}
		if errors.Is(err, domain.ErrBatchAborted) {
			return nil, err
		}
		var rowErr *RowError
		if !errors.As(err, &rowErr) {
			rowErr = &RowError{Row: rowNum, Message: err.Error()}
		}
		res.Errors = append(res.Errors, rowErr.Error())
	}
	return res, nil
}

func (a *applier) applyRow(ctx context.Context, tx BatchTx, dataType string, rowNum int, row Row) error {
	switch dataType {
	case entity.DataTypeInventory:
		rec := a.mapper.Inventory(rowNum, row)
		if rec.Code == "" || rec.Name == "" {
			return &RowError{Row: rowNum, Message: "Código e nome são obrigatórios"}
		}
		if len(rec.Issues) > 0 {
			return &RowError{Row: rowNum, Message: rec.Issues[0]}
		}
		return tx.Row(ctx, func(r Repos) error { return a.applyInventory(ctx, r, rec) })

	case entity.DataTypeOrders:
		rec := a.mapper.Orders(rowNum, row, a.opts.Now)
		if rec.Client == "" {
			return &RowError{Row: rowNum, Message: "Nome do cliente é obrigatório"}
		}
		if len(rec.Issues) > 0 {
			return &RowError{Row: rowNum, Message: rec.Issues[0]}
		}
		return tx.Row(ctx, func(r Repos) error { return a.applyOrder(ctx, r, rec) })

	case entity.DataTypeClients:
		rec := a.mapper.Clients(rowNum, row)
		if rec.Name == "" {
			return &RowError{Row: rowNum, Message: "Nome é obrigatório"}
		}
		return tx.Row(ctx, func(r Repos) error { return a.applyClient(ctx, r, rec) })
	}
	return domain.ErrUnsupportedDataType
}

// applyInventory: categoría get-or-create, producto por código. Un producto nuevo nace con
// la cantidad como stock y sin movimiento; uno existente recibe un movimiento "in".
func (a *applier) applyInventory(ctx context.Context, r Repos, rec InventoryRecord) error {
	now := a.opts.Now
	categoryName := rec.Category
	if categoryName == "" {
		categoryName = entity.DefaultCategoryName
	}
	category, _, err := r.Categories.GetOrCreateByName(ctx, &entity.Category{
		ID:          uuid.New().String(),
		Name:        categoryName,
		Description: autoCategoryDescription,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return err
	}

	created, err := r.Products.CreateIfAbsent(ctx, &entity.Product{
		ID:           uuid.New().String(),
		Code:         rec.Code,
		Name:         rec.Name,
		CategoryID:   category.ID,
		Unit:         entity.UnitDefault,
		UnitPrice:    decimal.Zero,
		CurrentStock: rec.Quantity,
		MinimumStock: a.opts.DefaultMinStock,
		Status:       entity.ProductStatusActive,
		IsActive:     true,
		CreatedBy:    a.opts.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return err
	}
	if created || rec.Quantity <= 0 {
		return nil
	}

	product, err := r.Products.GetByCodeForUpdate(ctx, rec.Code)
	if err != nil {
		return err
	}
	mov, err := inventory.ApplyMovement(product, inventory.MovementInput{
		Type:      entity.MovementTypeIn,
		Quantity:  rec.Quantity,
		Reference: fmt.Sprintf("Importação Excel - Linha %d", rec.Row),
		Notes:     importMovementNotes,
		UserID:    a.opts.UserID,
		At:        now,
	})
	if err != nil {
		return err
	}
	mov.ID = uuid.New().String()
	if err := r.Products.UpdateStock(ctx, product); err != nil {
		return err
	}
	return r.Movements.Create(ctx, mov)
}

// applyOrder: cliente get-or-create por nombre y siempre una orden nueva.
func (a *applier) applyOrder(ctx context.Context, r Repos, rec OrderRecord) error {
	now := a.opts.Now
	client, _, err := r.Clients.GetOrCreateByName(ctx, &entity.Client{
		ID:        uuid.New().String(),
		Name:      rec.Client,
		Email:     SynthesizeEmail(rec.Client),
		IsActive:  true,
		CreatedBy: a.opts.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return err
	}
	return r.Orders.Create(ctx, &entity.Order{
		ID:            uuid.New().String(),
		OrderType:     rec.OrderType,
		Status:        entity.OrderStatusPending,
		Priority:      entity.OrderPriorityNormal,
		ClientID:      client.ID,
		RequestedDate: rec.RequestedDate,
		Description:   rec.Description,
		TotalWeight:   decimal.Zero,
		TotalVolume:   decimal.Zero,
		CreatedBy:     a.opts.UserID,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
}

// applyClient: upsert por nombre; en un cliente existente solo se sobrescriben
// email, teléfono y dirección con valores no vacíos.
func (a *applier) applyClient(ctx context.Context, r Repos, rec ClientRecord) error {
	now := a.opts.Now
	email := rec.Email
	if email == "" {
		email = SynthesizeEmail(rec.Name)
	}
	client, created, err := r.Clients.GetOrCreateByName(ctx, &entity.Client{
		ID:        uuid.New().String(),
		Name:      rec.Name,
		Email:     email,
		Phone:     rec.Phone,
		Address:   rec.Address,
		IsActive:  true,
		CreatedBy: a.opts.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil || created {
		return err
	}

	changed := false
	if rec.Email != "" && rec.Email != client.Email {
		client.Email = rec.Email
		changed = true
	}
	if rec.Phone != "" && rec.Phone != client.Phone {
		client.Phone = rec.Phone
		changed = true
	}
	if rec.Address != "" && rec.Address != client.Address {
		client.Address = rec.Address
		changed = true
	}
	if !changed {
		return nil
	}
	client.UpdatedAt = now
	return r.Clients.Update(ctx, client)
}

// SynthesizeEmail email de relleno para clientes creados sin email: "Ana Souza" → ana.souza@exemplo.com.
func SynthesizeEmail(name string) string {
	return strings.ReplaceAll(lowerPT.String(strings.TrimSpace(name)), " ", ".") + synthesizedEmailDomain
}
