package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fardsis/fsis-api/internal/application/dto"
	"github.com/fardsis/fsis-api/internal/application/purchasing"
	"github.com/fardsis/fsis-api/internal/domain"
	"github.com/fardsis/fsis-api/internal/domain/entity"
)

// PurchaseHandler registro, reporte y ciclo de vida de compras (protegido).
type PurchaseHandler struct {
	uc *purchasing.PurchaseUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *purchasing.PurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Create registra una compra: cabecera, líneas, movimientos IN y stock en una tx.
// POST /api/purchases
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreatePurchase(c.Context(), GetUserID(c), in)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List ejecuta el reporte de compras con filtros.
// GET /api/purchases
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	var in dto.PurchaseListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query params inválidos"})
	}
	out, err := h.uc.ListPurchases(c.Context(), in)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene una compra con líneas y totales.
// GET /api/purchases/:id
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetPurchase(c.Context(), c.Params("id"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

// Approve transición pending → approved.
// POST /api/purchases/:id/approve
func (h *PurchaseHandler) Approve(c *fiber.Ctx) error {
	return h.changeStatus(c, entity.PurchaseApproved)
}

// Charge transición approved → charged.
// POST /api/purchases/:id/charge
func (h *PurchaseHandler) Charge(c *fiber.Ctx) error {
	return h.changeStatus(c, entity.PurchaseCharged)
}

// Complete transición charged → completed.
// POST /api/purchases/:id/complete
func (h *PurchaseHandler) Complete(c *fiber.Ctx) error {
	return h.changeStatus(c, entity.PurchaseCompleted)
}

// Cancel transición pending|approved → cancelled.
// POST /api/purchases/:id/cancel
func (h *PurchaseHandler) Cancel(c *fiber.Ctx) error {
	return h.changeStatus(c, entity.PurchaseCancelled)
}

func (h *PurchaseHandler) changeStatus(c *fiber.Ctx, target entity.PurchaseStatus) error {
	out, err := h.uc.ChangeStatus(c.Context(), c.Params("id"), target)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

func (h *PurchaseHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrUnknownStatus):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_STATUS", Message: "estado fuera del conjunto permitido"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "compra, distribuidor o artículo no encontrado"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transición de estado no permitida"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
