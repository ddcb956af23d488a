package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fardsis/fsis-api/internal/domain/entity"
	"github.com/fardsis/fsis-api/internal/domain/pricing"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func ptr(v decimal.Decimal) *decimal.Decimal { return &v }

// Sin líneas: subtotal y tax en 0, total = envío − descuento.
func TestCalculate_SinLineas(t *testing.T) {
	got := pricing.Calculate(nil, pricing.Adjustments{
		TaxRate:     d("0.12"),
		DeliveryFee: d("50"),
		Discount:    d("20"),
	})

	assert.True(t, got.Subtotal.IsZero(), "subtotal debe ser 0 sin líneas")
	assert.True(t, got.Tax.IsZero(), "tax debe ser 0 sin líneas")
	assert.True(t, got.Total.Equal(d("30")), "total = envío − descuento, fue %s", got.Total)
}

// Vector exacto: [{2×10},{1×5}], IVA 12%, sin envío ni descuento → 25 / 3 / 28.
func TestCalculate_VectorExacto(t *testing.T) {
	lines := []pricing.Line{
		{Quantity: d("2"), UnitCost: d("10")},
		{Quantity: d("1"), UnitCost: d("5")},
	}
	got := pricing.Calculate(lines, pricing.Adjustments{TaxRate: d("0.12")})

	assert.True(t, got.Subtotal.Equal(d("25")), "subtotal fue %s", got.Subtotal)
	assert.True(t, got.Tax.Equal(d("3")), "tax fue %s", got.Tax)
	assert.True(t, got.Total.Equal(d("28")), "total fue %s", got.Total)
}

// El total negativo es alcanzable y no se acota: subtotal 10, descuento 50 → −40.
func TestCalculate_TotalNegativoNoSeAcota(t *testing.T) {
	lines := []pricing.Line{{Quantity: d("1"), UnitCost: d("10")}}
	got := pricing.Calculate(lines, pricing.Adjustments{Discount: d("50")})

	assert.True(t, got.Total.Equal(d("-40")), "total fue %s", got.Total)
	assert.True(t, got.Total.IsNegative(), "el total no debe acotarse en cero")
}

// Pureza: dos invocaciones con el mismo input producen el mismo output
// y no dependen del orden de llamadas previas.
func TestCalculate_EsPuro(t *testing.T) {
	lines := []pricing.Line{
		{Quantity: d("3"), UnitCost: d("12.50")},
		{Quantity: d("7"), UnitCost: d("0.80")},
	}
	adj := pricing.Adjustments{TaxRate: d("0.12"), DeliveryFee: d("15"), Discount: d("5")}

	first := pricing.Calculate(lines, adj)
	// llamada intermedia con otro input para verificar que no hay estado
	_ = pricing.Calculate([]pricing.Line{{Quantity: d("999"), UnitCost: d("999")}}, adj)
	second := pricing.Calculate(lines, adj)

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.Tax.Equal(second.Tax))
	assert.True(t, first.Total.Equal(second.Total))
}

// Fallback de costo unitario: línea sin costo usa el precio base del catálogo,
// y 0 si tampoco hay precio base.
func TestFromPurchaseItems_FallbackCostoUnitario(t *testing.T) {
	items := []*entity.PurchaseItem{
		{Quantity: d("2"), UnitCost: ptr(d("10"))},                 // costo explícito
		{Quantity: d("4"), UnitCost: nil, ItemBasePrice: d("2.5")}, // precio base
		{Quantity: d("3"), UnitCost: nil},                          // sin nada → 0
	}
	lines := pricing.FromPurchaseItems(items)
	require.Len(t, lines, 3)

	got := pricing.Calculate(lines, pricing.Adjustments{})
	// 2×10 + 4×2.5 + 3×0 = 30
	assert.True(t, got.Subtotal.Equal(d("30")), "subtotal fue %s", got.Subtotal)
}

// Los resultados se exponen a precisión completa; el redondeo es del caller.
func TestCalculate_PrecisionCompleta(t *testing.T) {
	lines := []pricing.Line{{Quantity: d("3"), UnitCost: d("0.1")}}
	got := pricing.Calculate(lines, pricing.Adjustments{TaxRate: d("0.12")})

	assert.True(t, got.Subtotal.Equal(d("0.3")), "subtotal fue %s", got.Subtotal)
	assert.True(t, got.Tax.Equal(d("0.036")), "tax fue %s", got.Tax)
	assert.True(t, got.Total.Equal(d("0.336")), "total fue %s", got.Total)
}
