package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item producto del catálogo de papelería.
// StockQuantity se incrementa por las compras (movimiento IN); no se edita directo.
type Item struct {
	ID            string
	Name          string
	CategoryID    string
	CategoryName  string // denormalizado en lecturas
	BasePrice     decimal.Decimal
	StockQuantity decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
