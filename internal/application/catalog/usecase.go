package catalog

import (
	"context"

	"github.com/fardsis/fsis-api/internal/application/dto"
	"github.com/fardsis/fsis-api/internal/domain"
	"github.com/fardsis/fsis-api/internal/domain/repository"
)

// CatalogUseCase lecturas del catálogo: artículos y distribuidores.
type CatalogUseCase struct {
	itemRepo        repository.ItemRepository
	distributorRepo repository.DistributorRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(itemRepo repository.ItemRepository, distributorRepo repository.DistributorRepository) *CatalogUseCase {
	return &CatalogUseCase{itemRepo: itemRepo, distributorRepo: distributorRepo}
}

// ListItems devuelve el catálogo paginado, con búsqueda por nombre.
func (uc *CatalogUseCase) ListItems(ctx context.Context, in dto.ItemListRequest) (*dto.ItemListResponse, error) {
	in.DefaultPage()
	items, err := uc.itemRepo.List(ctx, in.Search, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ItemListResponse{
		Items: make([]dto.ItemResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.ItemResponse{
			ID:            it.ID,
			Name:          it.Name,
			CategoryID:    it.CategoryID,
			CategoryName:  it.CategoryName,
			BasePrice:     it.BasePrice,
			StockQuantity: it.StockQuantity,
			UpdatedAt:     it.UpdatedAt,
		})
	}
	return out, nil
}

// GetItem devuelve un artículo por ID.
func (uc *CatalogUseCase) GetItem(ctx context.Context, id string) (*dto.ItemResponse, error) {
	it, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.ItemResponse{
		ID:            it.ID,
		Name:          it.Name,
		CategoryID:    it.CategoryID,
		CategoryName:  it.CategoryName,
		BasePrice:     it.BasePrice,
		StockQuantity: it.StockQuantity,
		UpdatedAt:     it.UpdatedAt,
	}, nil
}

// ListDistributors devuelve distribuidores paginados.
func (uc *CatalogUseCase) ListDistributors(ctx context.Context, in dto.PageRequest) (*dto.DistributorListResponse, error) {
	in.DefaultPage()
	distributors, err := uc.distributorRepo.List(ctx, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.DistributorListResponse{
		Distributors: make([]dto.DistributorResponse, 0, len(distributors)),
		Page:         dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}
	for _, d := range distributors {
		out.Distributors = append(out.Distributors, dto.DistributorResponse{
			ID:          d.ID,
			Name:        d.Name,
			ContactInfo: d.ContactInfo,
		})
	}
	return out, nil
}
