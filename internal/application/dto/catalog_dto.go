package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemResponse artículo del catálogo en respuestas.
type ItemResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	CategoryID    string          `json:"category_id,omitempty"`
	CategoryName  string          `json:"category_name,omitempty"`
	BasePrice     decimal.Decimal `json:"base_price"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ItemListRequest filtros del catálogo (query params).
type ItemListRequest struct {
	PageRequest
	Search string `query:"search"`
}

// ItemListResponse página del catálogo.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// DistributorResponse distribuidor en respuestas.
type DistributorResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info,omitempty"`
}

// DistributorListResponse página de distribuidores.
type DistributorListResponse struct {
	Distributors []DistributorResponse `json:"distributors"`
	Page         PageResponse          `json:"page"`
}
