package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyName    = errors.New("name is required")
	ErrInvalidEmail = errors.New("email must be a valid address")
)

// Customer is a billed party that invoices and leads can point at.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	Company   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCustomer builds a customer ensuring required invariants.
func NewCustomer(id, name, email string) (*Customer, error) {
	c := &Customer{ID: id, Name: strings.TrimSpace(name), Email: normalizeEmail(email)}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateContact sets the optional contact fields.
func (c *Customer) UpdateContact(phone, address, company string) {
	c.Phone = strings.TrimSpace(phone)
	c.Address = strings.TrimSpace(address)
	c.Company = strings.TrimSpace(company)
}

// Validate re-applies core invariants for persistence.
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	email := strings.TrimSpace(c.Email)
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return ErrInvalidEmail
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// InvoiceDigest is the slice of an invoice shown next to a customer.
type InvoiceDigest struct {
	ID     string
	Total  float64
	Status string
}

// Summary is the list view of a customer with its related activity folded in.
type Summary struct {
	Customer       Customer
	InvoiceCount   int64
	LeadCount      int64
	RecentInvoices []InvoiceDigest
	TotalRevenue   float64
}
