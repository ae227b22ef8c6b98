package errors

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type of every error body.
const ContentTypeProblemJSON = "application/problem+json"

// Respond writes problem and aborts the remaining handler chain.
// The request path becomes the instance unless one is already set.
func Respond(c *gin.Context, problem ProblemDetail) {
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.AbortWithStatusJSON(problem.Status, problem)
}

// RespondError writes err as is when it already is a problem, otherwise as a 500.
func RespondError(c *gin.Context, err error) {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		Respond(c, problem)
		return
	}
	Respond(c, ErrInternal.WithDetail(err.Error()))
}
