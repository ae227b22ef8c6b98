package erpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	customerapp "github.com/Apurer/erpflow/internal/domains/customers/application"
	customerports "github.com/Apurer/erpflow/internal/domains/customers/ports"
)

// CustomerAPI wires HTTP transport with the customers bounded context service.
type CustomerAPI struct {
	service customerports.Service
}

// NewCustomerAPI creates a CustomerAPI backed by the provided service.
func NewCustomerAPI(service customerports.Service) CustomerAPI {
	return CustomerAPI{service: service}
}

// Get /api/customers
// List customers with their invoice and lead activity
func (api *CustomerAPI) ListCustomers(c *gin.Context) {
	page, err := api.service.List(c.Request.Context(), customerports.ListFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Page:   parsePageRequest(c),
	})
	if err != nil {
		respondCustomerServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromCustomerPage(page))
}

// Post /api/customers
// Create a customer
func (api *CustomerAPI) CreateCustomer(c *gin.Context) {
	var payload CreateCustomerRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	customer, err := api.service.Create(c.Request.Context(), customerports.CreateInput{
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Address: payload.Address,
		Company: payload.Company,
	})
	if err != nil {
		respondCustomerServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromCustomer(customer))
}

func respondCustomerServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, customerapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	case errors.Is(err, customerports.ErrDuplicateEmail):
		respondError(c, http.StatusConflict, errors.New("Customer with this email already exists"))
	case errors.Is(err, customerports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
