package entity

import "time"

// Customer cliente del lado de pedidos (read-side: reportes y dashboard).
type Customer struct {
	ID          string
	Name        string
	ContactInfo string
	CreatedAt   time.Time
}
