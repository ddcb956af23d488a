package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fardsis/fsis-api/internal/domain/entity"
	"github.com/fardsis/fsis-api/internal/domain/repository"
)

func TestPurchaseListWhere_SinFiltros(t *testing.T) {
	where, args := purchaseListWhere(repository.PurchaseFilter{})
	assert.Equal(t, "1=1", where)
	assert.Empty(t, args)
}

func TestPurchaseListWhere_BusquedaCubreIDDistribuidorYArticulo(t *testing.T) {
	where, args := purchaseListWhere(repository.PurchaseFilter{Search: "a1b2"})
	// el reporte busca por el ID que aparece impreso en el recibo,
	// además del distribuidor y los artículos de las líneas
	assert.Contains(t, where, "p.id::text ILIKE '%' || $1 || '%'")
	assert.Contains(t, where, "d.name ILIKE '%' || $1 || '%'")
	assert.Contains(t, where, "i.name ILIKE '%' || $1 || '%'")
	require.Len(t, args, 1)
	assert.Equal(t, "a1b2", args[0])
}

func TestPurchaseListWhere_NumeraPlaceholdersEnOrden(t *testing.T) {
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	where, args := purchaseListWhere(repository.PurchaseFilter{
		StartDate:     &start,
		EndDate:       &end,
		DistributorID: "dist-1",
		Status:        entity.PurchaseCharged,
		Search:        "bond",
	})
	assert.Contains(t, where, "p.purchase_date >= $1")
	assert.Contains(t, where, "p.purchase_date <= $2")
	assert.Contains(t, where, "p.distributor_id = $3")
	assert.Contains(t, where, "p.status = $4")
	assert.Contains(t, where, "p.id::text ILIKE '%' || $5 || '%'")
	require.Len(t, args, 5)
	assert.Equal(t, "charged", args[3])
}
