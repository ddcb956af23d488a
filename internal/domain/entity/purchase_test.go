package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fardsis/fsis-api/internal/domain"
	"github.com/fardsis/fsis-api/internal/domain/entity"
)

func TestParsePurchaseStatus_ValoresValidos(t *testing.T) {
	for _, s := range []string{"pending", "approved", "charged", "completed", "cancelled"} {
		got, err := entity.ParsePurchaseStatus(s)
		require.NoError(t, err, "estado %q debe ser válido", s)
		assert.Equal(t, s, got.String())
	}
}

func TestParsePurchaseStatus_RechazaDesconocidos(t *testing.T) {
	// Variantes que el sistema anterior comparaba como texto libre.
	for _, s := range []string{"", "Completed", "paid", "CHARGED", "done"} {
		_, err := entity.ParsePurchaseStatus(s)
		assert.ErrorIs(t, err, domain.ErrUnknownStatus, "estado %q debe rechazarse", s)
	}
}

func TestCanTransition_CicloDeVida(t *testing.T) {
	cases := []struct {
		from, to entity.PurchaseStatus
		ok       bool
	}{
		{entity.PurchasePending, entity.PurchaseApproved, true},
		{entity.PurchasePending, entity.PurchaseCancelled, true},
		{entity.PurchaseApproved, entity.PurchaseCharged, true},
		{entity.PurchaseApproved, entity.PurchaseCancelled, true},
		{entity.PurchaseCharged, entity.PurchaseCompleted, true},
		// no permitidas
		{entity.PurchasePending, entity.PurchaseCharged, false},
		{entity.PurchasePending, entity.PurchaseCompleted, false},
		{entity.PurchaseCharged, entity.PurchaseCancelled, false},
		{entity.PurchaseCompleted, entity.PurchaseCharged, false},
		{entity.PurchaseCancelled, entity.PurchaseApproved, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, c.from.CanTransition(c.to), "%s → %s", c.from, c.to)
	}
}

func TestParseRole_ConjuntoCerrado(t *testing.T) {
	for _, s := range []string{"Admin", "Warehouse", "Purchaser", "Customer", "CSR", "TL", "Accounting"} {
		got, err := entity.ParseRole(s)
		require.NoError(t, err)
		assert.Equal(t, s, got.String())
	}
	// sensible a mayúsculas: "accounting" NO es "Accounting"
	for _, s := range []string{"accounting", "admin", "purchaser", "Manager", ""} {
		_, err := entity.ParseRole(s)
		assert.ErrorIs(t, err, domain.ErrUnknownRole, "rol %q debe rechazarse", s)
	}
}
