package dto

import "time"

// UploadResponse salida del upload de una planilla.
type UploadResponse struct {
	Message   string   `json:"message"`
	FilePath  string   `json:"file_path"`
	RowsCount int      `json:"rows_count"`
	Columns   []string `json:"columns"`
	DataType  string   `json:"data_type"`
}

// ImportOptions opciones de procesamiento. DefaultMinStock aplica solo a inventory.
type ImportOptions struct {
	DefaultMinStock *int `json:"default_min_stock"`
}

// ProcessImportRequest entrada para procesar una planilla ya subida.
type ProcessImportRequest struct {
	FilePath      string            `json:"file_path"`
	DataType      string            `json:"data_type"`
	ColumnMapping map[string]string `json:"column_mapping"`
	Options       ImportOptions     `json:"options"`
}

// ProcessImportResponse resultado del lote.
type ProcessImportResponse struct {
	Message       string   `json:"message"`
	BatchID       string   `json:"batch_id"`
	ProcessedRows int      `json:"processed_rows"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
}

// ImportBatchResponse entrada del historial de importaciones.
type ImportBatchResponse struct {
	ID            string    `json:"id"`
	DataType      string    `json:"data_type"`
	FilePath      string    `json:"file_path"`
	Status        string    `json:"status"`
	ProcessedRows int       `json:"processed_rows"`
	Errors        []string  `json:"errors"`
	Warnings      []string  `json:"warnings"`
	FailureReason string    `json:"failure_reason,omitempty"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// ImportBatchListResponse lista paginada del historial.
type ImportBatchListResponse struct {
	Items []ImportBatchResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
