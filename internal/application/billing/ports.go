package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptLine línea de un recibo para el PDF.
type ReceiptLine struct {
	ItemName  string
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
	LineTotal decimal.Decimal
}

// Receipt datos completos de un recibo de compra para render.
type Receipt struct {
	InvoiceNumber   string
	Date            time.Time
	DistributorName string
	Status          string
	Lines           []ReceiptLine
	Subtotal        decimal.Decimal
	Tax             decimal.Decimal
	DeliveryFee     decimal.Decimal
	Discount        decimal.Decimal
	Total           decimal.Decimal
}

// ReceiptPDFGenerator puerto de generación del PDF del recibo.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, receipt *Receipt) ([]byte, error)
}
