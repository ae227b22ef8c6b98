package erpserver

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	analyticsdomain "github.com/Apurer/erpflow/internal/domains/analytics/domain"
	analyticsports "github.com/Apurer/erpflow/internal/domains/analytics/ports"
)

// AnalyticsAPI serves the dashboard snapshot.
type AnalyticsAPI struct {
	service analyticsports.Service
	logger  *slog.Logger
}

// NewAnalyticsAPI creates an AnalyticsAPI. A nil logger uses slog.Default.
func NewAnalyticsAPI(service analyticsports.Service, logger *slog.Logger) AnalyticsAPI {
	if logger == nil {
		logger = slog.Default()
	}
	return AnalyticsAPI{service: service, logger: logger}
}

// Get /api/analytics/dashboard
// Aggregate KPIs, recent activity and chart data. Always answers 200.
func (api *AnalyticsAPI) GetDashboard(c *gin.Context) {
	dashboard, err := api.service.Dashboard(c.Request.Context())
	if err != nil {
		api.logger.LogAttrs(c.Request.Context(), slog.LevelError, "dashboard aggregation failed, serving empty snapshot",
			slog.String("error", err.Error()),
		)
		dashboard = analyticsdomain.EmptyDashboard()
	}
	c.JSON(http.StatusOK, fromDashboard(dashboard))
}
