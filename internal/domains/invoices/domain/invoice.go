package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status is the billing state of an invoice.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSent      Status = "SENT"
	StatusPaid      Status = "PAID"
	StatusOverdue   Status = "OVERDUE"
	StatusCancelled Status = "CANCELLED"
)

// PendingStatuses are the states of an invoice still awaiting payment.
var PendingStatuses = []Status{StatusDraft, StatusSent}

var (
	ErrEmptyCustomer        = errors.New("customerId is required")
	ErrNonPositiveSubtotal  = errors.New("subtotal must be positive")
	ErrNegativeTax          = errors.New("tax cannot be negative")
	ErrNonPositiveTotal     = errors.New("total must be positive")
	ErrNoItems              = errors.New("at least one item is required")
	ErrEmptyProduct         = errors.New("item productId is required")
	ErrNonPositiveQuantity  = errors.New("item quantity must be positive")
	ErrNonPositiveUnitPrice = errors.New("item price must be positive")
	ErrInvalidStatus        = errors.New("invalid invoice status")
)

// ParseStatus accepts a status name in any case.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(raw)))
	switch status {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled:
		return status, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// FormatNumber renders the human-facing invoice number for a sequence value.
func FormatNumber(seq int64) string {
	return fmt.Sprintf("INV-%04d", seq)
}

// Item is a single invoice line.
type Item struct {
	ID        string
	ProductID string
	Quantity  float64
	Price     float64
	Total     float64
	// ProductName and ProductSKU are populated on reads.
	ProductName string
	ProductSKU  string
}

// NewItem builds a line whose total is quantity times unit price.
func NewItem(id, productID string, quantity, price float64) (Item, error) {
	productID = strings.TrimSpace(productID)
	switch {
	case productID == "":
		return Item{}, ErrEmptyProduct
	case quantity <= 0:
		return Item{}, ErrNonPositiveQuantity
	case price <= 0:
		return Item{}, ErrNonPositiveUnitPrice
	}
	return Item{ID: id, ProductID: productID, Quantity: quantity, Price: price, Total: quantity * price}, nil
}

// CustomerRef is the customer slice embedded in invoice reads.
type CustomerRef struct {
	Name    string
	Email   string
	Company string
}

// Invoice bills a customer for one or more items.
type Invoice struct {
	ID         string
	Number     string
	CustomerID string
	Subtotal   float64
	Tax        float64
	Total      float64
	Status     Status
	DueDate    *time.Time
	Items      []Item
	CreatedAt  time.Time
	UpdatedAt  time.Time
	// Customer is populated on reads.
	Customer *CustomerRef
}

// NewInvoice builds a draft invoice ensuring required invariants. The number is assigned on insert.
func NewInvoice(id, customerID string, subtotal, tax, total float64, dueDate *time.Time, items []Item) (*Invoice, error) {
	inv := &Invoice{
		ID:         id,
		CustomerID: strings.TrimSpace(customerID),
		Subtotal:   subtotal,
		Tax:        tax,
		Total:      total,
		Status:     StatusDraft,
		DueDate:    dueDate,
		Items:      items,
	}
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	return inv, nil
}

// Validate re-applies core invariants for persistence.
func (i *Invoice) Validate() error {
	switch {
	case i.CustomerID == "":
		return ErrEmptyCustomer
	case i.Subtotal <= 0:
		return ErrNonPositiveSubtotal
	case i.Tax < 0:
		return ErrNegativeTax
	case i.Total <= 0:
		return ErrNonPositiveTotal
	case len(i.Items) == 0:
		return ErrNoItems
	}
	if _, err := ParseStatus(string(i.Status)); err != nil {
		return err
	}
	return nil
}

// IsPending reports whether the invoice still awaits payment.
func (i *Invoice) IsPending() bool {
	for _, s := range PendingStatuses {
		if i.Status == s {
			return true
		}
	}
	return false
}
