package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fardsis/fsis-api/internal/application/dto"
	"github.com/fardsis/fsis-api/internal/domain"
	"github.com/fardsis/fsis-api/internal/domain/pricing"
	"github.com/fardsis/fsis-api/internal/domain/repository"
	"github.com/fardsis/fsis-api/pkg/money"
)

// BillingUseCase previsualización de cargos y recibos en PDF.
type BillingUseCase struct {
	purchaseRepo   repository.PurchaseRepository
	pdfGenerator   ReceiptPDFGenerator
	defaultTaxRate decimal.Decimal
	formatter      *money.Formatter
}

// NewBillingUseCase construye el caso de uso.
func NewBillingUseCase(
	purchaseRepo repository.PurchaseRepository,
	pdfGenerator ReceiptPDFGenerator,
	defaultTaxRate decimal.Decimal,
	formatter *money.Formatter,
) *BillingUseCase {
	return &BillingUseCase{
		purchaseRepo:   purchaseRepo,
		pdfGenerator:   pdfGenerator,
		defaultTaxRate: defaultTaxRate,
		formatter:      formatter,
	}
}

// PreviewCharge calcula los totales de una compra con los ajustes dados sin
// persistir nada. Tasa nil usa la de configuración; el total puede salir
// negativo cuando el descuento excede subtotal+impuesto+envío.
func (uc *BillingUseCase) PreviewCharge(ctx context.Context, purchaseID string, in dto.ChargePreviewRequest) (*dto.ChargePreviewResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	taxRate := uc.defaultTaxRate
	if in.TaxRate != nil {
		taxRate = *in.TaxRate
	}
	totals := pricing.Calculate(pricing.FromPurchaseItems(purchase.Items), pricing.Adjustments{
		TaxRate:     taxRate,
		DeliveryFee: in.DeliveryFee,
		Discount:    in.Discount,
	})
	return &dto.ChargePreviewResponse{
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		Total:           totals.Total,
		SubtotalDisplay: uc.formatter.Format(totals.Subtotal),
		TaxDisplay:      uc.formatter.Format(totals.Tax),
		TotalDisplay:    uc.formatter.Format(totals.Total),
	}, nil
}

// GenerateReceipt genera el PDF del recibo de una compra, con los mismos
// ajustes (tasa, envío, descuento) que acepta la previsualización: el recibo
// impreso refleja exactamente lo que contabilidad previsualizó. El número de
// recibo deriva de la fecha y el ID, así regenerar el PDF nunca cambia el número.
func (uc *BillingUseCase) GenerateReceipt(ctx context.Context, purchaseID string, in dto.ChargePreviewRequest) ([]byte, string, error) {
	purchase, err := uc.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, "", err
	}
	if purchase == nil {
		return nil, "", domain.ErrNotFound
	}
	taxRate := uc.defaultTaxRate
	if in.TaxRate != nil {
		taxRate = *in.TaxRate
	}
	totals := pricing.Calculate(pricing.FromPurchaseItems(purchase.Items), pricing.Adjustments{
		TaxRate:     taxRate,
		DeliveryFee: in.DeliveryFee,
		Discount:    in.Discount,
	})

	receipt := &Receipt{
		InvoiceNumber:   InvoiceNumber(purchase.PurchaseDate, purchase.ID),
		Date:            purchase.PurchaseDate,
		DistributorName: purchase.DistributorName,
		Status:          purchase.Status.String(),
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		DeliveryFee:     in.DeliveryFee,
		Discount:        in.Discount,
		Total:           totals.Total,
	}
	for _, it := range purchase.Items {
		receipt.Lines = append(receipt.Lines, ReceiptLine{
			ItemName:  it.ItemName,
			Quantity:  it.Quantity,
			UnitCost:  it.EffectiveUnitCost(),
			LineTotal: it.Quantity.Mul(it.EffectiveUnitCost()),
		})
	}
	pdfBytes, err := uc.pdfGenerator.GenerateReceiptPDF(ctx, receipt)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, receipt.InvoiceNumber, nil
}

// InvoiceNumber construye el número de recibo: INV-YYYYMMDD- más los primeros
// seis caracteres del ID sin guiones, en mayúsculas.
func InvoiceNumber(date time.Time, id string) string {
	compact := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(compact) > 6 {
		compact = compact[:6]
	}
	return fmt.Sprintf("INV-%s-%s", date.Format("20060102"), compact)
}
