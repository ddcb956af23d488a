package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemResponse línea de pedido en respuestas.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderResponse pedido de cliente con líneas y totales.
type OrderResponse struct {
	ID           string              `json:"id"`
	CustomerID   string              `json:"customer_id"`
	CustomerName string              `json:"customer_name"`
	OrderDate    time.Time           `json:"order_date"`
	Status       string              `json:"status"`
	Items        []OrderItemResponse `json:"items"`
	Subtotal     decimal.Decimal     `json:"subtotal"`
	Tax          decimal.Decimal     `json:"tax"`
	Total        decimal.Decimal     `json:"total"`
	TotalDisplay string              `json:"total_display"`
}

// OrderListRequest filtros del reporte de pedidos (query params).
type OrderListRequest struct {
	PageRequest
	StartDate  string `query:"start_date"`
	EndDate    string `query:"end_date"`
	CustomerID string `query:"customer_id"`
	Status     string `query:"status"`
	Search     string `query:"search"`
}

// OrderListResponse página del reporte de pedidos.
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Page   PageResponse    `json:"page"`
}
