package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fardsis/fsis-api/internal/domain"
	"github.com/fardsis/fsis-api/internal/domain/entity"
)

func TestParseOrderStatus_EtiquetasValidas(t *testing.T) {
	for _, s := range []string{"pending", "paid", "shipped", "completed", "cancelled"} {
		got, err := entity.ParseOrderStatus(s)
		assert.NoError(t, err, s)
		assert.Equal(t, s, got.String())
	}
}

func TestParseOrderStatus_RechazaEtiquetasDesconocidas(t *testing.T) {
	for _, s := range []string{"", "Paid", "PENDING", "charged", "done"} {
		_, err := entity.ParseOrderStatus(s)
		assert.ErrorIs(t, err, domain.ErrUnknownStatus, "%q no debe pasar", s)
	}
}
