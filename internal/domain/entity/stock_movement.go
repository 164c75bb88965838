package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIn         = "in"         // entrada
	MovementTypeOut        = "out"        // salida
	MovementTypeAdjustment = "adjustment" // ajuste a valor absoluto
	MovementTypeTransfer   = "transfer"   // transferencia (suma)
)

// StockMovement es una entrada del libro de stock (append-only).
// CurrentStock coincide con Product.CurrentStock después de aplicarse.
type StockMovement struct {
	ID            string
	ProductID     string
	Type          string
	Quantity      int
	PreviousStock int
	CurrentStock  int
	Reference     string
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
}
