package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/LogFlow-api/internal/application/usecase"
	"github.com/jhoicas/LogFlow-api/pkg/logger"
)

// CategoryHandler consulta de categorías de productos.
type CategoryHandler struct {
	handlerBase
	uc *usecase.CategoryUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{handlerBase: newHandlerBase(log), uc: uc}
}

// List GET /api/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(out)
}
