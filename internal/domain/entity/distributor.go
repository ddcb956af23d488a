package entity

import "time"

// Distributor proveedor al que se le compra stock.
type Distributor struct {
	ID          string
	Name        string
	ContactInfo string
	CreatedAt   time.Time
}
