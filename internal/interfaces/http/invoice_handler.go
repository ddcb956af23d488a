package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/fardsis/fsis-api/internal/application/billing"
	"github.com/fardsis/fsis-api/internal/application/dto"
	"github.com/fardsis/fsis-api/internal/domain"
)

// InvoiceHandler previsualización de cargos y recibos PDF (protegido).
type InvoiceHandler struct {
	uc *billing.BillingUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.BillingUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// Preview calcula totales de una compra con ajustes sin persistir.
// POST /api/purchases/:id/preview
func (h *InvoiceHandler) Preview(c *fiber.Ctx) error {
	var in dto.ChargePreviewRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.uc.PreviewCharge(c.Context(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "compra no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Receipt genera el PDF del recibo de una compra. Acepta por query los mismos
// ajustes de la previsualización (tax_rate, delivery_fee, discount) para que
// el recibo impreso salga con los totales previsualizados.
// GET /api/invoices/purchase/:id?tax_rate=0.12&delivery_fee=50&discount=0
func (h *InvoiceHandler) Receipt(c *fiber.Ctx) error {
	in, err := parseAdjustments(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: err.Error()})
	}
	pdfBytes, number, err := h.uc.GenerateReceipt(c.Context(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "compra no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", number+".pdf"))
	return c.Send(pdfBytes)
}

// parseAdjustments lee los ajustes del cargo desde query params; ausentes
// valen cero (y tasa nil = la de configuración).
func parseAdjustments(c *fiber.Ctx) (dto.ChargePreviewRequest, error) {
	var in dto.ChargePreviewRequest
	if raw := c.Query("tax_rate"); raw != "" {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return in, fmt.Errorf("tax_rate inválido: %q", raw)
		}
		in.TaxRate = &rate
	}
	if raw := c.Query("delivery_fee"); raw != "" {
		fee, err := decimal.NewFromString(raw)
		if err != nil {
			return in, fmt.Errorf("delivery_fee inválido: %q", raw)
		}
		in.DeliveryFee = fee
	}
	if raw := c.Query("discount"); raw != "" {
		disc, err := decimal.NewFromString(raw)
		if err != nil {
			return in, fmt.Errorf("discount inválido: %q", raw)
		}
		in.Discount = disc
	}
	return in, nil
}
