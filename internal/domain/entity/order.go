package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fardsis/fsis-api/internal/domain"
)

// OrderStatus estado de un pedido de cliente. Conjunto cerrado: los valores
// se parsean en los bordes (filtros y filas de la BD), nunca se comparan
// como strings sueltos.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// ParseOrderStatus valida una etiqueta de estado de pedido (sensible a
// mayúsculas, igual que ParsePurchaseStatus).
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderPending, OrderPaid, OrderShipped, OrderCompleted, OrderCancelled:
		return OrderStatus(s), nil
	}
	return "", domain.ErrUnknownStatus
}

func (s OrderStatus) String() string { return string(s) }

// Order cabecera de un pedido de cliente. En esta aplicación los pedidos son
// read-side (reportes y recibos); el cargo canónico ocurre sobre Purchase.
type Order struct {
	ID           string
	CustomerID   string
	CustomerName string // denormalizado en lecturas
	OrderDate    time.Time
	Status       OrderStatus
	Items        []*OrderItem
}

// OrderItem línea de un pedido: cantidad × precio unitario.
type OrderItem struct {
	ID        string
	OrderID   string
	ItemID    string
	ItemName  string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}
