package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/fardsis/fsis-api/internal/application/catalog"
	"github.com/fardsis/fsis-api/internal/application/dto"
	"github.com/fardsis/fsis-api/internal/domain"
)

// CatalogHandler lecturas del catálogo (protegido).
type CatalogHandler struct {
	uc *catalog.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListItems lista artículos con búsqueda y paginación.
// GET /api/catalog/items
func (h *CatalogHandler) ListItems(c *fiber.Ctx) error {
	var in dto.ItemListRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query params inválidos"})
	}
	out, err := h.uc.ListItems(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetItem obtiene un artículo por ID.
// GET /api/catalog/items/:id
func (h *CatalogHandler) GetItem(c *fiber.Ctx) error {
	out, err := h.uc.GetItem(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListDistributors lista distribuidores.
// GET /api/catalog/distributors
func (h *CatalogHandler) ListDistributors(c *fiber.Ctx) error {
	var in dto.PageRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query params inválidos"})
	}
	out, err := h.uc.ListDistributors(c.Context(), in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
