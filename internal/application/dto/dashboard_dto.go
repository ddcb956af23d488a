package dto

import "github.com/shopspring/decimal"

// CategoryVolumeDTO volumen movido por categoría.
type CategoryVolumeDTO struct {
	Category string          `json:"category"`
	Quantity decimal.Decimal `json:"quantity"`
}

// CustomerSpendDTO gasto acumulado de un cliente.
type CustomerSpendDTO struct {
	CustomerID   string          `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	Total        decimal.Decimal `json:"total"`
	TotalDisplay string          `json:"total_display"`
}

// DashboardResponse métricas agregadas de los últimos 30 días.
type DashboardResponse struct {
	ItemsMoved    decimal.Decimal     `json:"items_moved"`
	NewPurchases  int                 `json:"new_purchases"`
	TopCategories []CategoryVolumeDTO `json:"top_categories"`
	TopCustomers  []CustomerSpendDTO  `json:"top_customers"`
}
