package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/LogFlow-api/internal/application/usecase"
	"github.com/jhoicas/LogFlow-api/pkg/logger"
)

// ClientHandler consultas de clientes.
type ClientHandler struct {
	handlerBase
	uc *usecase.ClientUseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *usecase.ClientUseCase, log *logger.Logger) *ClientHandler {
	return &ClientHandler{handlerBase: newHandlerBase(log), uc: uc}
}

// List GET /api/clients?limit=20&offset=0
func (h *ClientHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), page(c))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/clients/:id
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(out)
}
