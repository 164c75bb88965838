package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/LogFlow-api/internal/application/dto"
	"github.com/jhoicas/LogFlow-api/internal/domain"
)

// errorStatus traduce errores de dominio a status HTTP y código estable.
var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrBatchAborted, fiber.StatusInternalServerError, "BATCH_ABORTED"},
	{domain.ErrUnsupportedFormat, fiber.StatusBadRequest, "UNSUPPORTED_FORMAT"},
	{domain.ErrDecode, fiber.StatusBadRequest, "DECODE_ERROR"},
	{domain.ErrUnsupportedDataType, fiber.StatusBadRequest, "UNSUPPORTED_DATA_TYPE"},
	{domain.ErrFileNotFound, fiber.StatusNotFound, "FILE_NOT_FOUND"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrNegativeStock, fiber.StatusConflict, "NEGATIVE_STOCK"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
}

// writeError responde con dto.ErrorResponse. Los errores sin mapear son 500 INTERNAL
// con mensaje genérico; el detalle queda en el log.
func (h *handlerBase) writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			msg := err.Error()
			if m.status >= fiber.StatusInternalServerError {
				h.log.Error().Err(err).Str("path", c.Path()).Msg("lote abortado")
				msg = m.err.Error()
			}
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: msg})
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "CANCELLED", Message: "requisição cancelada"})
	}
	h.log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "erro interno"})
}
