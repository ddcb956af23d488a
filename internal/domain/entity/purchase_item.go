package entity

import "github.com/shopspring/decimal"

// PurchaseItem línea de una compra: cantidad × costo unitario.
// UnitCost puede venir vacío (nil en DB); en ese caso el cálculo de totales
// cae al precio base del ítem de catálogo, y a 0 si tampoco existe.
type PurchaseItem struct {
	ID            string
	PurchaseID    string
	ItemID        string
	ItemName      string // denormalizado en lecturas
	ItemBasePrice decimal.Decimal
	Quantity      decimal.Decimal
	UnitCost      *decimal.Decimal
}

// EffectiveUnitCost devuelve el costo unitario a usar en totales:
// costo explícito de la línea, si no el precio base del catálogo, si no 0.
func (it *PurchaseItem) EffectiveUnitCost() decimal.Decimal {
	if it.UnitCost != nil {
		return *it.UnitCost
	}
	return it.ItemBasePrice
}
