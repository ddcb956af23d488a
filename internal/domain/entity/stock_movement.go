package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIN  = "IN"  // entrada por compra
	MovementTypeOUT = "OUT" // salida por despacho de pedido
)

// StockMovement registro append-only del ledger de inventario.
// TransactionID referencia la compra (o pedido) que originó el movimiento.
type StockMovement struct {
	ID            string
	TransactionID string
	ItemID        string
	Type          string
	Quantity      decimal.Decimal
	UnitCost      decimal.Decimal
	UserID        string
	CreatedAt     time.Time
}
