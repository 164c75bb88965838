package repository

import (
	"context"

	"github.com/jhoicas/LogFlow-api/internal/domain/entity"
)

// ImportBatchRepository historial de ejecuciones del importador.
type ImportBatchRepository interface {
	Create(ctx context.Context, batch *entity.ImportBatch) error
	List(ctx context.Context, limit, offset int) ([]*entity.ImportBatch, error)
}
