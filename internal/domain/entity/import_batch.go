package entity

import "time"

// Tipos de datos aceptados por el importador de planillas.
const (
	DataTypeInventory = "inventory"
	DataTypeOrders    = "orders"
	DataTypeClients   = "clients"
)

// Estados de un lote de importación.
const (
	ImportStatusCompleted = "completed"
	ImportStatusFailed    = "failed"
)

// ValidDataType indica si t es un tipo de importación soportado.
func ValidDataType(t string) bool {
	switch t {
	case DataTypeInventory, DataTypeOrders, DataTypeClients:
		return true
	}
	return false
}

// ImportBatch registro histórico de una ejecución de Process.
type ImportBatch struct {
	ID            string
	DataType      string
	FilePath      string
	Status        string
	ProcessedRows int
	Errors        []string
	Warnings      []string
	FailureReason string
	CreatedBy     string
	CreatedAt     time.Time
}
