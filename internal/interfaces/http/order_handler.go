package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/LogFlow-api/internal/application/dto"
	"github.com/jhoicas/LogFlow-api/internal/application/orders"
	"github.com/jhoicas/LogFlow-api/internal/application/usecase"
	"github.com/jhoicas/LogFlow-api/pkg/logger"
)

// OrderHandler consultas de órdenes y cambio de estado.
type OrderHandler struct {
	handlerBase
	uc       *usecase.OrderUseCase
	statusUC *orders.UpdateStatusUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *usecase.OrderUseCase, statusUC *orders.UpdateStatusUseCase, log *logger.Logger) *OrderHandler {
	return &OrderHandler{handlerBase: newHandlerBase(log), uc: uc, statusUC: statusUC}
}

// List GET /api/orders?limit=20&offset=0
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), page(c))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(out)
}

// Overdue GET /api/orders/overdue?limit=20&offset=0
func (h *OrderHandler) Overdue(c *fiber.Ctx) error {
	out, err := h.uc.ListOverdue(c.Context(), page(c))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(out)
}

// History GET /api/orders/:id/history
func (h *OrderHandler) History(c *fiber.Ctx) error {
	out, err := h.uc.History(c.Context(), c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar el estado de una orden
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderStatusRequest  true  "status, notes, scheduled_date"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/status [post]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.statusUC.UpdateStatusFromRequest(c.Context(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(out)
}
