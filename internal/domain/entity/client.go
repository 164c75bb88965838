package entity

import "time"

// Client representa un cliente de las órdenes. El nombre funciona como clave
// natural en la importación aunque no es único en la base.
type Client struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	ZipCode   string
	IsActive  bool
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
