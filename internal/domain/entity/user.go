package entity

import (
	"time"

	"github.com/fardsis/fsis-api/internal/domain"
)

// Role etiqueta de rol de un usuario. Conjunto cerrado: los valores llegan
// como texto libre desde el registro y se validan en ParseRole; la comparación
// en el gate es por igualdad exacta (sensible a mayúsculas, sin jerarquía).
type Role string

// Roles válidos para User.
const (
	RoleAdmin      Role = "Admin"
	RoleWarehouse  Role = "Warehouse"
	RolePurchaser  Role = "Purchaser"
	RoleCustomer   Role = "Customer"
	RoleCSR        Role = "CSR"
	RoleTL         Role = "TL"
	RoleAccounting Role = "Accounting"
)

// ParseRole valida una etiqueta de rol contra el conjunto cerrado.
// Retorna ErrUnknownRole para valores no reconocidos (no se compara texto libre).
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleWarehouse, RolePurchaser, RoleCustomer, RoleCSR, RoleTL, RoleAccounting:
		return Role(s), nil
	}
	return "", domain.ErrUnknownRole
}

// String implementa fmt.Stringer.
func (r Role) String() string { return string(r) }

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         Role
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
