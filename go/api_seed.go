package erpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	seedingports "github.com/Apurer/erpflow/internal/domains/seeding/ports"
)

// SeedAPI loads the demo data set.
type SeedAPI struct {
	seeder seedingports.Service
}

// NewSeedAPI creates a SeedAPI. The seeder may run inline or through a workflow.
func NewSeedAPI(seeder seedingports.Service) SeedAPI {
	return SeedAPI{seeder: seeder}
}

// Post /api/seed
// Populate an empty database with demo records
func (api *SeedAPI) Seed(c *gin.Context) {
	result, err := api.seeder.Seed(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
