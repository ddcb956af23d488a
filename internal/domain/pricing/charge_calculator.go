// Package pricing contiene el cálculo de totales de cargo (servicio de dominio).
// Es una función pura: mismo input, mismo output, sin estado ni efectos.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/fardsis/fsis-api/internal/domain/entity"
)

// Adjustments escalares de ajuste de un cargo: tasa de impuesto (fracción,
// ej. 0.12 = 12%), costo de envío y descuento en moneda.
type Adjustments struct {
	TaxRate     decimal.Decimal
	DeliveryFee decimal.Decimal
	Discount    decimal.Decimal
}

// Totals resultado del cálculo a precisión completa. El formato de moneda
// (símbolo, separadores, decimales) es asunto de presentación, no de este tipo.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Line una línea genérica de cálculo: cantidad × costo unitario efectivo.
type Line struct {
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}

// Calculate computa subtotal, impuesto y total:
//
//	subtotal = Σ (quantity_i × unitCost_i)
//	tax      = subtotal × taxRate
//	total    = subtotal + tax + deliveryFee − discount
//
// El total NO se acota en cero: un descuento mayor que subtotal+tax+envío
// produce un total negativo (nota de crédito).
func Calculate(lines []Line, adj Adjustments) Totals {
	subtotal := decimal.Zero
	for _, ln := range lines {
		subtotal = subtotal.Add(ln.Quantity.Mul(ln.UnitCost))
	}
	tax := subtotal.Mul(adj.TaxRate)
	total := subtotal.Add(tax).Add(adj.DeliveryFee).Sub(adj.Discount)
	return Totals{Subtotal: subtotal, Tax: tax, Total: total}
}

// FromPurchaseItems convierte las líneas de una compra aplicando el fallback
// de costo unitario (costo de línea → precio base de catálogo → 0).
func FromPurchaseItems(items []*entity.PurchaseItem) []Line {
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, Line{Quantity: it.Quantity, UnitCost: it.EffectiveUnitCost()})
	}
	return lines
}

// FromOrderItems convierte las líneas de un pedido (precio unitario siempre presente).
func FromOrderItems(items []*entity.OrderItem) []Line {
	lines := make([]Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, Line{Quantity: it.Quantity, UnitCost: it.UnitPrice})
	}
	return lines
}
