package importer

import (
	"context"

	"github.com/jhoicas/LogFlow-api/internal/domain/repository"
)

// Row una fila de datos: header → valor de celda (string, float64, bool o time.Time).
// Las celdas vacías no aparecen en el mapa.
type Row map[string]any

// Sheet primera hoja de una planilla ya decodificada.
type Sheet struct {
	Headers []string
	Rows    []Row
}

// SheetDecoder convierte los bytes subidos en filas. CheckFormat se usa antes de persistir.
type SheetDecoder interface {
	CheckFormat(filename string) error
	Decode(filename string, data []byte) (*Sheet, error)
}

// FileStore almacén de contenido de las planillas subidas.
type FileStore interface {
	// Save escribe data en key sin sobrescribir; devuelve la clave efectiva.
	Save(ctx context.Context, key string, data []byte) (string, error)
	Open(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// Repos repositorios atados a la transacción del lote.
type Repos struct {
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	Movements  repository.StockMovementRepository
	Clients    repository.ClientRepository
	Orders     repository.OrderRepository
}

// BatchTx transacción de un lote. Row ejecuta fn dentro de un savepoint: si fn falla
// solo se deshacen los efectos de esa fila. Un error envolviendo domain.ErrBatchAborted
// indica que la transacción quedó inutilizable.
type BatchTx interface {
	Row(ctx context.Context, fn func(r Repos) error) error
}

// TxRunner abre la transacción del lote; Commit si fn devuelve nil, Rollback en otro caso.
type TxRunner interface {
	RunBatch(ctx context.Context, fn func(tx BatchTx) error) error
}
