package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fardsis/fsis-api/internal/application/dto"
	"github.com/fardsis/fsis-api/internal/domain"
	"github.com/fardsis/fsis-api/internal/domain/entity"
	"github.com/fardsis/fsis-api/internal/domain/pricing"
	"github.com/fardsis/fsis-api/internal/domain/repository"
	"github.com/fardsis/fsis-api/pkg/money"
)

// OrderUseCase reportes de pedidos de clientes (read-side).
type OrderUseCase struct {
	orderRepo      repository.OrderRepository
	customerRepo   repository.CustomerRepository
	defaultTaxRate decimal.Decimal
	formatter      *money.Formatter
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	defaultTaxRate decimal.Decimal,
	formatter *money.Formatter,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:      orderRepo,
		customerRepo:   customerRepo,
		defaultTaxRate: defaultTaxRate,
		formatter:      formatter,
	}
}

// GetOrder devuelve un pedido con totales.
func (uc *OrderUseCase) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(order), nil
}

// ListOrders ejecuta el reporte de pedidos con filtros de fecha, cliente,
// estado y búsqueda por texto. Un customer_id inexistente devuelve
// ErrNotFound en vez de un reporte vacío silencioso.
func (uc *OrderUseCase) ListOrders(ctx context.Context, in dto.OrderListRequest) (*dto.OrderListResponse, error) {
	in.DefaultPage()
	filter := repository.OrderFilter{
		CustomerID: in.CustomerID,
		Search:     in.Search,
		Limit:      in.Limit,
		Offset:     in.Offset,
	}
	if in.Status != "" {
		status, err := entity.ParseOrderStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
	}
	if in.StartDate != "" {
		t, err := time.Parse("2006-01-02", in.StartDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.StartDate = &t
	}
	if in.EndDate != "" {
		t, err := time.Parse("2006-01-02", in.EndDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		t = t.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &t
	}
	orderList, total, err := uc.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.OrderListResponse{
		Orders: make([]dto.OrderResponse, 0, len(orderList)),
		Page:   dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}
	for _, o := range orderList {
		out.Orders = append(out.Orders, *uc.toResponse(o))
	}
	return out, nil
}

func (uc *OrderUseCase) toResponse(o *entity.Order) *dto.OrderResponse {
	totals := pricing.Calculate(pricing.FromOrderItems(o.Items), pricing.Adjustments{TaxRate: uc.defaultTaxRate})
	resp := &dto.OrderResponse{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		OrderDate:    o.OrderDate,
		Status:       o.Status.String(),
		Subtotal:     totals.Subtotal,
		Tax:          totals.Tax,
		Total:        totals.Total,
		TotalDisplay: uc.formatter.Format(totals.Total),
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:        it.ID,
			ItemID:    it.ItemID,
			ItemName:  it.ItemName,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.Quantity.Mul(it.UnitPrice),
		})
	}
	return resp
}
