package erpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	invoiceapp "github.com/Apurer/erpflow/internal/domains/invoices/application"
	invoicedomain "github.com/Apurer/erpflow/internal/domains/invoices/domain"
	invoiceports "github.com/Apurer/erpflow/internal/domains/invoices/ports"
	apierrors "github.com/Apurer/erpflow/internal/shared/errors"
)

// InvoiceAPI wires HTTP transport with the invoices bounded context service.
type InvoiceAPI struct {
	service invoiceports.Service
}

// NewInvoiceAPI creates an InvoiceAPI backed by the provided service.
func NewInvoiceAPI(service invoiceports.Service) InvoiceAPI {
	return InvoiceAPI{service: service}
}

// Get /api/invoices
// List invoices, newest first
func (api *InvoiceAPI) ListInvoices(c *gin.Context) {
	filter := invoiceports.ListFilter{
		CustomerID: strings.TrimSpace(c.Query("customerId")),
		Page:       parsePageRequest(c),
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, err := invoicedomain.ParseStatus(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		filter.Status = status
	}
	page, err := api.service.List(c.Request.Context(), filter)
	if err != nil {
		respondInvoiceServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromInvoicePage(page))
}

// Post /api/invoices
// Issue a draft invoice
func (api *InvoiceAPI) CreateInvoice(c *gin.Context) {
	var payload CreateInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	dueDate, err := parseDueDate(payload.DueDate)
	if err != nil {
		respondProblem(c, apierrors.NewValidationProblem(map[string]string{"dueDate": err.Error()}))
		return
	}
	items := make([]invoiceports.ItemInput, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, invoiceports.ItemInput{ProductID: item.ProductID, Quantity: item.Quantity, Price: item.Price})
	}
	invoice, err := api.service.Create(c.Request.Context(), invoiceports.CreateInput{
		CustomerID: payload.CustomerID,
		Subtotal:   payload.Subtotal,
		Tax:        payload.Tax,
		Total:      payload.Total,
		DueDate:    dueDate,
		Items:      items,
	})
	if err != nil {
		respondInvoiceServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromInvoice(invoice))
}

func respondInvoiceServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, invoiceapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	case errors.Is(err, invoiceports.ErrCustomerNotFound):
		respondError(c, http.StatusBadRequest, errors.New("Customer not found"))
	case errors.Is(err, invoiceports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
