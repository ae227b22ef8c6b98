package erpserver

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Apurer/erpflow/internal/shared/errors"
	"github.com/Apurer/erpflow/internal/shared/projection"
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError picks the problem template for status and attaches err as the detail.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	respondProblem(c, apierrors.ForStatus(status, err.Error()))
}

// respondBindingError reports a body that failed to decode or validate.
func respondBindingError(c *gin.Context, err error) {
	respondProblem(c, apierrors.FromBindingError(err))
}

// parsePageRequest reads page and limit, falling back to the defaults on bad input.
func parsePageRequest(c *gin.Context) projection.PageRequest {
	return projection.NewPageRequest(queryInt(c, "page"), queryInt(c, "limit"))
}

func queryInt(c *gin.Context, key string) int {
	value, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return 0
	}
	return value
}
