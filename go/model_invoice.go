package erpserver

import (
	"fmt"
	"strings"
	"time"

	invoicedomain "github.com/Apurer/erpflow/internal/domains/invoices/domain"
	"github.com/Apurer/erpflow/internal/shared/projection"
)

type InvoiceItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"gt=0"`
	Price     float64 `json:"price" binding:"gt=0"`
}

type CreateInvoiceRequest struct {
	CustomerID string  `json:"customerId" binding:"required"`
	Subtotal   float64 `json:"subtotal" binding:"gt=0"`
	Tax        float64 `json:"tax" binding:"gte=0"`
	Total      float64 `json:"total" binding:"gt=0"`
	// DueDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates.
	DueDate string               `json:"dueDate,omitempty"`
	Items   []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

type InvoiceCustomer struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Company *string `json:"company"`
}

type InvoiceProduct struct {
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

type InvoiceItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  float64         `json:"quantity"`
	Price     float64         `json:"price"`
	Total     float64         `json:"total"`
	Product   *InvoiceProduct `json:"product,omitempty"`
}

type Invoice struct {
	ID         string           `json:"id"`
	Number     string           `json:"number"`
	CustomerID string           `json:"customerId"`
	Subtotal   float64          `json:"subtotal"`
	Tax        float64          `json:"tax"`
	Total      float64          `json:"total"`
	Status     string           `json:"status"`
	DueDate    *time.Time       `json:"dueDate"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
	Customer   *InvoiceCustomer `json:"customer,omitempty"`
	Items      []InvoiceItem    `json:"items"`
}

type InvoiceList struct {
	Invoices   []Invoice  `json:"invoices"`
	Pagination Pagination `json:"pagination"`
}

func parseDueDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("dueDate %q is not a valid date", raw)
}

func fromInvoice(inv *invoicedomain.Invoice) Invoice {
	out := Invoice{
		ID:         inv.ID,
		Number:     inv.Number,
		CustomerID: inv.CustomerID,
		Subtotal:   inv.Subtotal,
		Tax:        inv.Tax,
		Total:      inv.Total,
		Status:     string(inv.Status),
		DueDate:    inv.DueDate,
		CreatedAt:  inv.CreatedAt,
		UpdatedAt:  inv.UpdatedAt,
		Items:      make([]InvoiceItem, 0, len(inv.Items)),
	}
	if inv.Customer != nil {
		out.Customer = &InvoiceCustomer{
			Name:    inv.Customer.Name,
			Email:   inv.Customer.Email,
			Company: optionalString(inv.Customer.Company),
		}
	}
	for _, item := range inv.Items {
		dto := InvoiceItem{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Total:     item.Total,
		}
		if item.ProductName != "" || item.ProductSKU != "" {
			dto.Product = &InvoiceProduct{Name: item.ProductName, SKU: item.ProductSKU}
		}
		out.Items = append(out.Items, dto)
	}
	return out
}

func fromInvoicePage(page projection.Page[*invoicedomain.Invoice]) InvoiceList {
	out := InvoiceList{
		Invoices:   make([]Invoice, 0, len(page.Items)),
		Pagination: fromPagination(page.Pagination),
	}
	for _, inv := range page.Items {
		out.Invoices = append(out.Invoices, fromInvoice(inv))
	}
	return out
}
