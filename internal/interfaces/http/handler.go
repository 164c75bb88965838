package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/LogFlow-api/internal/application/dto"
	"github.com/jhoicas/LogFlow-api/pkg/logger"
)

// handlerBase comparte logger y helpers entre handlers.
type handlerBase struct {
	log *logger.Logger
}

func newHandlerBase(log *logger.Logger) handlerBase {
	if log == nil {
		log = logger.Nop()
	}
	return handlerBase{log: log}
}

// page lee limit/offset de la query.
func page(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{
		Limit:  c.QueryInt("limit", dto.DefaultPageLimit),
		Offset: c.QueryInt("offset", 0),
	}
	p.DefaultPage()
	return p
}
