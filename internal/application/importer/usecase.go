package importer

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/LogFlow-api/internal/application/dto"
	"github.com/jhoicas/LogFlow-api/internal/domain"
	"github.com/jhoicas/LogFlow-api/internal/domain/entity"
	"github.com/jhoicas/LogFlow-api/internal/domain/repository"
	"github.com/jhoicas/LogFlow-api/pkg/logger"
)

const uploadTimestampLayout = "20060102_150405"

// UseCase importador de planillas: Upload persiste y valida el archivo, Process lo aplica
// en una transacción y deja registro en el historial.
type UseCase struct {
	store   FileStore
	decoder SheetDecoder
	tx      TxRunner
	history repository.ImportBatchRepository
	log     *logger.Logger
	prefix  string
	now     func() time.Time
}

// NewUseCase construye el importador. prefix es el directorio raíz de las subidas (ej. excel_uploads).
func NewUseCase(
	store FileStore,
	decoder SheetDecoder,
	tx TxRunner,
	history repository.ImportBatchRepository,
	log *logger.Logger,
	prefix string,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		store:   store,
		decoder: decoder,
		tx:      tx,
		history: history,
		log:     log,
		prefix:  strings.Trim(prefix, "/"),
		now:     time.Now,
	}
}

// WithClock reemplaza el reloj usado para timestamps de archivo y fechas por defecto.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// UploadInput archivo recibido por multipart.
type UploadInput struct {
	FileName string
	DataType string
	Data     []byte
	UserID   string
}

// Upload valida la extensión, guarda el archivo en {prefix}/{tipo}/{timestamp}_{nombre}
// y lo decodifica para devolver headers y cantidad de filas.
func (uc *UseCase) Upload(ctx context.Context, in UploadInput) (*dto.UploadResponse, error) {
	dataType := strings.ToLower(strings.TrimSpace(in.DataType))
	if dataType == "" {
		dataType = entity.DataTypeInventory
	}
	if !entity.ValidDataType(dataType) {
		return nil, domain.ErrUnsupportedDataType
	}
	name := path.Base(strings.ReplaceAll(in.FileName, `\`, "/"))
	if len(in.Data) == 0 || name == "" || name == "." || name == "/" {
		return nil, fmt.Errorf("%w: Nenhum arquivo enviado", domain.ErrInvalidInput)
	}
	if err := uc.decoder.CheckFormat(name); err != nil {
		return nil, err
	}

	key := path.Join(uc.prefix, dataType, uc.now().Format(uploadTimestampLayout)+"_"+name)
	stored, err := uc.store.Save(ctx, key, in.Data)
	if err != nil {
		return nil, fmt.Errorf("guardar planilha: %w", err)
	}

	sheet, err := uc.decoder.Decode(name, in.Data)
	if err != nil {
		if delErr := uc.store.Delete(ctx, stored); delErr != nil {
			uc.log.Warn().Err(delErr).Str("file_path", stored).Msg("no se pudo borrar la planilla inválida")
		}
		return nil, err
	}

	uc.log.Info().
		Str("user_id", in.UserID).
		Str("data_type", dataType).
		Str("file_path", stored).
		Int("rows", len(sheet.Rows)).
		Msg("planilla subida")

	return &dto.UploadResponse{
		Message:   "Arquivo enviado com sucesso",
		FilePath:  stored,
		RowsCount: len(sheet.Rows),
		Columns:   sheet.Headers,
		DataType:  dataType,
	}, nil
}

// Process lee la planilla subida y aplica sus filas con la estrategia de data_type.
// Los errores por fila vuelven en la respuesta; los errores devueltos son fatales para el lote.
func (uc *UseCase) Process(ctx context.Context, userID string, req dto.ProcessImportRequest) (*dto.ProcessImportResponse, error) {
	filePath := strings.TrimSpace(req.FilePath)
	dataType := strings.ToLower(strings.TrimSpace(req.DataType))
	if filePath == "" || dataType == "" {
		return nil, fmt.Errorf("%w: file_path e data_type são obrigatórios", domain.ErrInvalidInput)
	}
	if !entity.ValidDataType(dataType) {
		return nil, domain.ErrUnsupportedDataType
	}
	minStock := 0
	if req.Options.DefaultMinStock != nil {
		if *req.Options.DefaultMinStock < 0 {
			return nil, fmt.Errorf("%w: default_min_stock não pode ser negativo", domain.ErrInvalidInput)
		}
		minStock = *req.Options.DefaultMinStock
	}
	if err := uc.checkPath(filePath); err != nil {
		return nil, err
	}

	now := uc.now()
	batch := &entity.ImportBatch{
		ID:        uuid.New().String(),
		DataType:  dataType,
		FilePath:  filePath,
		Errors:    []string{},
		Warnings:  []string{},
		CreatedBy: userID,
		CreatedAt: now,
	}

	res, err := uc.apply(ctx, filePath, dataType, req.ColumnMapping, applyOptions{
		UserID:          userID,
		DefaultMinStock: minStock,
		Now:             now,
	})
	if err != nil {
		batch.Status = entity.ImportStatusFailed
		batch.FailureReason = err.Error()
		uc.record(ctx, batch)
		uc.log.Error().Err(err).
			Str("user_id", userID).
			Str("data_type", dataType).
			Str("file_path", filePath).
			Msg("importación abortada")
		return nil, err
	}

	batch.Status = entity.ImportStatusCompleted
	batch.ProcessedRows = res.Processed
	batch.Errors = res.Errors
	batch.Warnings = res.Warnings
	uc.record(ctx, batch)

	uc.log.Info().
		Str("user_id", userID).
		Str("data_type", dataType).
		Str("file_path", filePath).
		Int("processed", res.Processed).
		Int("errors", len(res.Errors)).
		Int("warnings", len(res.Warnings)).
		Msg("importación procesada")

	return &dto.ProcessImportResponse{
		Message:       resultMessage(dataType, res.Processed),
		BatchID:       batch.ID,
		ProcessedRows: res.Processed,
		Errors:        res.Errors,
		Warnings:      res.Warnings,
	}, nil
}

func (uc *UseCase) apply(
	ctx context.Context,
	filePath, dataType string,
	mapping map[string]string,
	opts applyOptions,
) (*Result, error) {
	data, err := uc.store.Open(ctx, filePath)
	if err != nil {
		return nil, err
	}
	sheet, err := uc.decoder.Decode(path.Base(filePath), data)
	if err != nil {
		return nil, err
	}

	ap := &applier{mapper: NewMapper(mapping), opts: opts}
	var res *Result
	err = uc.tx.RunBatch(ctx, func(tx BatchTx) error {
		r, err := ap.run(ctx, tx, dataType, sheet)
		if err != nil {
			return err
		}
		res = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// record guarda el lote en el historial. Un fallo aquí no cambia el resultado del Process.
func (uc *UseCase) record(ctx context.Context, batch *entity.ImportBatch) {
	if uc.history == nil {
		return
	}
	if err := uc.history.Create(context.WithoutCancel(ctx), batch); err != nil {
		uc.log.Warn().Err(err).Str("batch_id", batch.ID).Msg("no se pudo registrar el historial de importación")
	}
}

// checkPath solo acepta rutas relativas limpias bajo el prefijo de subidas.
func (uc *UseCase) checkPath(p string) error {
	invalid := fmt.Errorf("%w: file_path inválido", domain.ErrInvalidInput)
	if strings.Contains(p, `\`) || path.IsAbs(p) || path.Clean(p) != p {
		return invalid
	}
	if p == ".." || strings.HasPrefix(p, "../") {
		return invalid
	}
	if uc.prefix != "" && !strings.HasPrefix(p, uc.prefix+"/") {
		return invalid
	}
	return nil
}

// History lista los lotes procesados, más recientes primero.
func (uc *UseCase) History(ctx context.Context, limit, offset int) (*dto.ImportBatchListResponse, error) {
	page := dto.PageRequest{Limit: limit, Offset: offset}
	page.DefaultPage()
	batches, err := uc.history.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ImportBatchResponse, 0, len(batches))
	for _, b := range batches {
		items = append(items, dto.ImportBatchResponse{
			ID:            b.ID,
			DataType:      b.DataType,
			FilePath:      b.FilePath,
			Status:        b.Status,
			ProcessedRows: b.ProcessedRows,
			Errors:        nonNil(b.Errors),
			Warnings:      nonNil(b.Warnings),
			FailureReason: b.FailureReason,
			CreatedBy:     b.CreatedBy,
			CreatedAt:     b.CreatedAt,
		})
	}
	return &dto.ImportBatchListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func resultMessage(dataType string, processed int) string {
	switch dataType {
	case entity.DataTypeOrders:
		return fmt.Sprintf("Processamento concluído. %d ordens criadas.", processed)
	case entity.DataTypeClients:
		return fmt.Sprintf("Processamento concluído. %d clientes processados.", processed)
	default:
		return fmt.Sprintf("Processamento concluído. %d produtos processados.", processed)
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
