package purchasing

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

// PurchaseUseCase registro y ciclo de vida de compras a distribuidores.
type PurchaseUseCase struct {
	txRunner        TxRunner
	purchaseRepo    repository.PurchaseRepository
	distributorRepo repository.DistributorRepository
	itemRepo        repository.ItemRepository
	movementRepo    repository.StockMovementRepository
	defaultTaxRate  decimal.Decimal
	formatter       *money.Formatter
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner TxRunner,
	purchaseRepo repository.PurchaseRepository,
	distributorRepo repository.DistributorRepository,
	itemRepo repository.ItemRepository,
	movementRepo repository.StockMovementRepository,
	defaultTaxRate decimal.Decimal,
	formatter *money.Formatter,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:        txRunner,
		purchaseRepo:    purchaseRepo,
		distributorRepo: distributorRepo,
		itemRepo:        itemRepo,
		movementRepo:    movementRepo,
		defaultTaxRate:  defaultTaxRate,
		formatter:       formatter,
	}
}

// CreatePurchase registra una compra: cabecera, líneas, un movimiento IN por
// línea y el incremento de stock, todo en una sola transacción. Si cualquier
// paso falla, ningún escrito queda a medias.
func (uc *PurchaseUseCase) CreatePurchase(ctx context.Context, userID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if in.DistributorID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ItemID == "" || !it.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if it.UnitCost != nil && it.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	// Validaciones de lectura fuera de la tx.
	distributor, err := uc.distributorRepo.GetByID(ctx, in.DistributorID)
	if err != nil {
		return nil, err
	}
	if distributor == nil {
		return nil, domain.ErrNotFound
	}
	ids := make([]string, 0, len(in.Items))
	for _, it := range in.Items {
		ids = append(ids, it.ItemID)
	}
	catalogItems, err := uc.itemRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, it := range in.Items {
		if _, ok := catalogItems[it.ItemID]; !ok {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	purchaseDate := in.PurchaseDate
	if purchaseDate.IsZero() {
		purchaseDate = now
	}
	purchase := &entity.Purchase{
		DistributorID: in.DistributorID,
		PurchaseDate:  purchaseDate,
		Status:        entity.PurchasePending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, it := range in.Items {
		cat := catalogItems[it.ItemID]
		purchase.Items = append(purchase.Items, &entity.PurchaseItem{
			ItemID:        it.ItemID,
			ItemName:      cat.Name,
			ItemBasePrice: cat.BasePrice,
			Quantity:      it.Quantity,
			UnitCost:      it.UnitCost,
		})
	}

	err = uc.txRunner.Run(ctx, func(
		purchaseRepo repository.PurchaseRepository,
		movRepo repository.StockMovementRepository,
		itemRepo repository.ItemRepository,
	) error {
		if err := purchaseRepo.Create(ctx, purchase); err != nil {
			return err
		}
		for _, line := range purchase.Items {
			mov := &entity.StockMovement{
				TransactionID: purchase.ID,
				ItemID:        line.ItemID,
				Type:          entity.MovementTypeIN,
				Quantity:      line.Quantity,
				UnitCost:      line.EffectiveUnitCost(),
				UserID:        userID,
				CreatedAt:     now,
			}
			if err := movRepo.Create(ctx, mov); err != nil {
				return err
			}
			if err := itemRepo.IncrementStock(ctx, line.ItemID, line.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	purchase.DistributorName = distributor.Name
	return uc.toResponse(purchase), nil
}

// GetPurchase devuelve una compra con totales al tipo impositivo por defecto
// y los movimientos de stock que su registro dejó en el ledger.
func (uc *PurchaseUseCase) GetPurchase(ctx context.Context, id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	resp := uc.toResponse(purchase)
	movements, err := uc.movementRepo.ListByTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, m := range movements {
		resp.Movements = append(resp.Movements, dto.StockMovementResponse{
			ID:        m.ID,
			ItemID:    m.ItemID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			UnitCost:  m.UnitCost,
			CreatedAt: m.CreatedAt,
		})
	}
	return resp, nil
}

// ListPurchases ejecuta el reporte de compras con filtros de fecha, distribuidor,
// estado y búsqueda por texto. Un estado fuera del conjunto cerrado es 400.
func (uc *PurchaseUseCase) ListPurchases(ctx context.Context, in dto.PurchaseListRequest) (*dto.PurchaseListResponse, error) {
	in.DefaultPage()
	filter := repository.PurchaseFilter{
		DistributorID: in.DistributorID,
		Search:        in.Search,
		Limit:         in.Limit,
		Offset:        in.Offset,
	}
	if in.Status != "" {
		status, err := entity.ParsePurchaseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = status
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
		// fin de día inclusivo
		t = t.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &t
	}

	purchases, total, err := uc.purchaseRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := &dto.PurchaseListResponse{
		Purchases: make([]dto.PurchaseResponse, 0, len(purchases)),
		Page:      dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}
	for _, p := range purchases {
		out.Purchases = append(out.Purchases, *uc.toResponse(p))
	}
	return out, nil
}

// ChangeStatus aplica una transición del ciclo de vida. La tabla de
// transiciones del dominio decide; cualquier paso no permitido es conflicto.
func (uc *PurchaseUseCase) ChangeStatus(ctx context.Context, id string, target entity.PurchaseStatus) (*dto.StatusChangeResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	if !purchase.Status.CanTransition(target) {
		return nil, domain.ErrInvalidTransition
	}
	if err := uc.purchaseRepo.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}
	return &dto.StatusChangeResponse{ID: id, Status: target.String()}, nil
}

func (uc *PurchaseUseCase) toResponse(p *entity.Purchase) *dto.PurchaseResponse {
	totals := pricing.Calculate(pricing.FromPurchaseItems(p.Items), pricing.Adjustments{TaxRate: uc.defaultTaxRate})
	resp := &dto.PurchaseResponse{
		ID:              p.ID,
		DistributorID:   p.DistributorID,
		DistributorName: p.DistributorName,
		PurchaseDate:    p.PurchaseDate,
		Status:          p.Status.String(),
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		Total:           totals.Total,
		TotalDisplay:    uc.formatter.Format(totals.Total),
		CreatedAt:       p.CreatedAt,
	}
	for _, it := range p.Items {
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			ID:        it.ID,
			ItemID:    it.ItemID,
			ItemName:  it.ItemName,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
			LineTotal: it.Quantity.Mul(it.EffectiveUnitCost()),
		})
	}
	return resp
}
