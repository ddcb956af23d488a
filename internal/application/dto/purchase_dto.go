package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseItem línea de entrada de una compra. UnitCost es opcional:
// si falta, los totales caen al precio base del artículo (y a 0 sin precio).
// decimal acepta número o string JSON, así que "12.50" y 12.5 son equivalentes.
type CreatePurchaseItem struct {
	ItemID   string           `json:"item_id" validate:"required,uuid"`
	Quantity decimal.Decimal  `json:"quantity" validate:"required"`
	UnitCost *decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseRequest entrada para registrar una compra a distribuidor.
type CreatePurchaseRequest struct {
	DistributorID string               `json:"distributor_id" validate:"required,uuid"`
	PurchaseDate  time.Time            `json:"purchase_date"`
	Items         []CreatePurchaseItem `json:"items" validate:"required,min=1"`
}

// PurchaseItemResponse línea de compra en respuestas.
type PurchaseItemResponse struct {
	ID        string           `json:"id"`
	ItemID    string           `json:"item_id"`
	ItemName  string           `json:"item_name"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
	LineTotal decimal.Decimal  `json:"line_total"`
}

// PurchaseResponse cabecera de compra con líneas y totales al tipo impositivo
// por defecto. Los montos van numéricos; Display lleva el formato de moneda.
type PurchaseResponse struct {
	ID              string                 `json:"id"`
	DistributorID   string                 `json:"distributor_id"`
	DistributorName string                 `json:"distributor_name"`
	PurchaseDate    time.Time              `json:"purchase_date"`
	Status          string                 `json:"status"`
	Items           []PurchaseItemResponse `json:"items"`
	Subtotal        decimal.Decimal        `json:"subtotal"`
	Tax             decimal.Decimal        `json:"tax"`
	Total           decimal.Decimal        `json:"total"`
	TotalDisplay    string                 `json:"total_display"`
	CreatedAt       time.Time              `json:"created_at"`
	// Movements solo viene cargado en el detalle (GET por ID), no en listados.
	Movements []StockMovementResponse `json:"movements,omitempty"`
}

// StockMovementResponse asiento del ledger de stock asociado a una compra.
type StockMovementResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	CreatedAt time.Time       `json:"created_at"`
}

// PurchaseListRequest filtros del reporte de compras (query params).
type PurchaseListRequest struct {
	PageRequest
	StartDate     string `query:"start_date"` // YYYY-MM-DD
	EndDate       string `query:"end_date"`
	DistributorID string `query:"distributor_id"`
	Status        string `query:"status"`
	Search        string `query:"search"`
}

// PurchaseListResponse página del reporte de compras.
type PurchaseListResponse struct {
	Purchases []PurchaseResponse `json:"purchases"`
	Page      PageResponse       `json:"page"`
}

// ChargePreviewRequest ajustes para previsualizar totales de un cargo.
// TaxRate nil usa la tasa por defecto de configuración.
type ChargePreviewRequest struct {
	TaxRate     *decimal.Decimal `json:"tax_rate"`
	DeliveryFee decimal.Decimal  `json:"delivery_fee"`
	Discount    decimal.Decimal  `json:"discount"`
}

// ChargePreviewResponse totales calculados a precisión completa más su
// presentación en moneda. El total puede ser negativo (nota de crédito).
type ChargePreviewResponse struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	Total           decimal.Decimal `json:"total"`
	SubtotalDisplay string          `json:"subtotal_display"`
	TaxDisplay      string          `json:"tax_display"`
	TotalDisplay    string          `json:"total_display"`
}

// StatusChangeResponse resultado de una transición de estado.
type StatusChangeResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
