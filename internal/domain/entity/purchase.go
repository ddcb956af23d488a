package entity

import (
	"time"

	"github.com/fardsis/fsis-api/internal/domain"
)

// PurchaseStatus estado de una compra a distribuidor. Conjunto cerrado:
// el valor se valida con ParsePurchaseStatus al entrar desde la DB o desde
// filtros HTTP; nunca se compara texto libre.
type PurchaseStatus string

// Estados de una compra.
const (
	PurchasePending   PurchaseStatus = "pending"
	PurchaseApproved  PurchaseStatus = "approved"
	PurchaseCharged   PurchaseStatus = "charged"
	PurchaseCompleted PurchaseStatus = "completed"
	PurchaseCancelled PurchaseStatus = "cancelled"
)

// purchaseTransitions transiciones permitidas. Cualquier otra combinación
// retorna ErrInvalidTransition.
var purchaseTransitions = map[PurchaseStatus][]PurchaseStatus{
	PurchasePending:  {PurchaseApproved, PurchaseCancelled},
	PurchaseApproved: {PurchaseCharged, PurchaseCancelled},
	PurchaseCharged:  {PurchaseCompleted},
}

// ParsePurchaseStatus valida una etiqueta de estado contra el conjunto cerrado.
func ParsePurchaseStatus(s string) (PurchaseStatus, error) {
	switch PurchaseStatus(s) {
	case PurchasePending, PurchaseApproved, PurchaseCharged, PurchaseCompleted, PurchaseCancelled:
		return PurchaseStatus(s), nil
	}
	return "", domain.ErrUnknownStatus
}

// CanTransition indica si el paso from → to está permitido.
func (from PurchaseStatus) CanTransition(to PurchaseStatus) bool {
	for _, next := range purchaseTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// String implementa fmt.Stringer.
func (s PurchaseStatus) String() string { return string(s) }

// Purchase cabecera de una compra de stock a un distribuidor.
// Las líneas (Items) se cargan completas junto con la cabecera; la paginación
// de los reportes se aplica sobre cabeceras, nunca sobre líneas.
type Purchase struct {
	ID              string
	DistributorID   string
	DistributorName string // denormalizado en lecturas (JOIN), vacío en escrituras
	PurchaseDate    time.Time
	Status          PurchaseStatus
	Items           []*PurchaseItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
