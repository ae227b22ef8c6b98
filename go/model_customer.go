package erpserver

import (
	"time"

	customerdomain "github.com/Apurer/erpflow/internal/domains/customers/domain"
	"github.com/Apurer/erpflow/internal/shared/projection"
)

type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Company string `json:"company,omitempty"`
}

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Address   *string   `json:"address"`
	Company   *string   `json:"company"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CustomerCounts struct {
	Invoices int64 `json:"invoices"`
	Leads    int64 `json:"leads"`
}

type CustomerInvoice struct {
	Total  float64 `json:"total"`
	Status string  `json:"status"`
}

// CustomerSummary is one row of the customer listing.
type CustomerSummary struct {
	Customer
	Count        CustomerCounts    `json:"_count"`
	Invoices     []CustomerInvoice `json:"invoices"`
	TotalRevenue float64           `json:"totalRevenue"`
}

type CustomerList struct {
	Customers  []CustomerSummary `json:"customers"`
	Pagination Pagination        `json:"pagination"`
}

func fromCustomer(c *customerdomain.Customer) Customer {
	return Customer{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     optionalString(c.Phone),
		Address:   optionalString(c.Address),
		Company:   optionalString(c.Company),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func fromCustomerPage(page projection.Page[*customerdomain.Summary]) CustomerList {
	out := CustomerList{
		Customers:  make([]CustomerSummary, 0, len(page.Items)),
		Pagination: fromPagination(page.Pagination),
	}
	for _, s := range page.Items {
		invoices := make([]CustomerInvoice, 0, len(s.RecentInvoices))
		for _, inv := range s.RecentInvoices {
			invoices = append(invoices, CustomerInvoice{Total: inv.Total, Status: inv.Status})
		}
		out.Customers = append(out.Customers, CustomerSummary{
			Customer:     fromCustomer(&s.Customer),
			Count:        CustomerCounts{Invoices: s.InvoiceCount, Leads: s.LeadCount},
			Invoices:     invoices,
			TotalRevenue: s.TotalRevenue,
		})
	}
	return out
}

// optionalString renders blank optional columns as JSON null.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
