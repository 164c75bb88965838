package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/LogFlow-api/internal/domain/entity"
	"github.com/jhoicas/LogFlow-api/internal/domain/repository"
)

var _ repository.ImportBatchRepository = (*ImportBatchRepo)(nil)

// ImportBatchRepo historial de importaciones; errors y warnings se guardan como jsonb.
type ImportBatchRepo struct {
	q Querier
}

// NewImportBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewImportBatchRepository(q Querier) *ImportBatchRepo {
	return &ImportBatchRepo{q: q}
}

// Create registra un lote procesado.
func (r *ImportBatchRepo) Create(ctx context.Context, batch *entity.ImportBatch) error {
	query := `
		INSERT INTO import_batches (id, data_type, file_path, status, processed_rows, errors, warnings, failure_reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		batch.ID, batch.DataType, batch.FilePath, batch.Status, batch.ProcessedRows,
		nonNilStrings(batch.Errors), nonNilStrings(batch.Warnings), batch.FailureReason,
		batch.CreatedBy, batch.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert import batch: %w", err)
	}
	return nil
}

// List devuelve los lotes, más recientes primero.
func (r *ImportBatchRepo) List(ctx context.Context, limit, offset int) ([]*entity.ImportBatch, error) {
	query := `
		SELECT id, data_type, file_path, status, processed_rows, errors, warnings, failure_reason, created_by, created_at
		FROM import_batches ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list import batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.ImportBatch
	for rows.Next() {
		var b entity.ImportBatch
		if err := rows.Scan(
			&b.ID, &b.DataType, &b.FilePath, &b.Status, &b.ProcessedRows, &b.Errors, &b.Warnings,
			&b.FailureReason, &b.CreatedBy, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan import batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// nonNilStrings evita que un slice nil se guarde como JSON null.
func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
