package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/LogFlow-api/internal/application/dto"
	"github.com/jhoicas/LogFlow-api/internal/application/importer"
	"github.com/jhoicas/LogFlow-api/pkg/logger"
)

// ImportHandler upload y procesamiento de planillas Excel.
type ImportHandler struct {
	handlerBase
	uc *importer.UseCase
}

// NewImportHandler construye el handler.
func NewImportHandler(uc *importer.UseCase, log *logger.Logger) *ImportHandler {
	return &ImportHandler{handlerBase: newHandlerBase(log), uc: uc}
}

// Upload godoc
// @Summary      Subir planilla
// @Description  Guarda el archivo y devuelve headers y cantidad de filas de la primera hoja.
// @Tags         imports
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file    true   "Planilla .xlsx"
// @Param        type  formData  string  false  "inventory | orders | clients"  default(inventory)
// @Success      200   {object}  dto.UploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/upload/excel [post]
func (h *ImportHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Nenhum arquivo enviado"})
	}
	f, err := fh.Open()
	if err != nil {
		return h.writeError(c, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return h.writeError(c, err)
	}

	out, err := h.uc.Upload(c.Context(), importer.UploadInput{
		FileName: fh.Filename,
		DataType: c.FormValue("type"),
		Data:     data,
		UserID:   GetUserID(c),
	})
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(out)
}

// Process godoc
// @Summary      Procesar planilla subida
// @Description  Aplica las filas en una transacción. Los errores por fila vuelven en "errors".
// @Tags         imports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProcessImportRequest  true  "file_path, data_type, column_mapping, options"
// @Success      200   {object}  dto.ProcessImportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/upload/process [post]
func (h *ImportHandler) Process(c *fiber.Ctx) error {
	var in dto.ProcessImportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Process(c.Context(), GetUserID(c), in)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de importaciones
// @Tags         imports
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.ImportBatchListResponse
// @Router       /api/imports [get]
func (h *ImportHandler) History(c *fiber.Ctx) error {
	p := page(c)
	out, err := h.uc.History(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(out)
}
