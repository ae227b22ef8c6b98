package erpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	leadapp "github.com/Apurer/erpflow/internal/domains/leads/application"
	leaddomain "github.com/Apurer/erpflow/internal/domains/leads/domain"
	leadports "github.com/Apurer/erpflow/internal/domains/leads/ports"
)

// LeadAPI wires HTTP transport with the leads bounded context service.
type LeadAPI struct {
	service leadports.Service
}

// NewLeadAPI creates a LeadAPI backed by the provided service.
func NewLeadAPI(service leadports.Service) LeadAPI {
	return LeadAPI{service: service}
}

// Get /api/leads
// List leads with recent interactions and the pipeline breakdown
func (api *LeadAPI) ListLeads(c *gin.Context) {
	filter := leadports.ListFilter{
		UserID: strings.TrimSpace(c.Query("userId")),
		Search: strings.TrimSpace(c.Query("search")),
		Page:   parsePageRequest(c),
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status, err := leaddomain.ParseStatus(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		filter.Status = status
	}
	if raw := strings.TrimSpace(c.Query("priority")); raw != "" {
		priority, err := leaddomain.ParsePriority(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		filter.Priority = priority
	}
	result, err := api.service.List(c.Request.Context(), filter)
	if err != nil {
		respondLeadServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromLeadListResult(result))
}

// Post /api/leads
// Open a lead
func (api *LeadAPI) CreateLead(c *gin.Context) {
	var payload CreateLeadRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	lead, err := api.service.Create(c.Request.Context(), toLeadCreateInput(payload))
	if err != nil {
		respondLeadServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromLead(lead))
}

func respondLeadServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, leadapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	case errors.Is(err, leadports.ErrCustomerNotFound):
		respondError(c, http.StatusBadRequest, errors.New("Customer not found"))
	case errors.Is(err, leadports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
