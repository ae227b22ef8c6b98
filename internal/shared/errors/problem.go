// Package errors renders API failures as RFC 7807 problem documents.
package errors

import (
	"fmt"
	"net/http"
)

// ProblemDetail is the application/problem+json body returned for every failed request.
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	// Extensions carries per-field validation messages under "fields".
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy carrying detail.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithExtension returns a copy with key set in Extensions.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	extensions := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		extensions[k] = v
	}
	extensions[key] = value
	p.Extensions = extensions
	return p
}

const (
	TypeValidation   = "/problems/validation-error"
	TypeBadRequest   = "/problems/bad-request"
	TypeUnauthorized = "/problems/unauthorized"
	TypeForbidden    = "/problems/forbidden"
	TypeNotFound     = "/problems/not-found"
	TypeConflict     = "/problems/conflict"
	TypeInternal     = "/problems/internal-error"
)

var (
	ErrValidation   = ProblemDetail{Type: TypeValidation, Title: "Validation Error", Status: http.StatusBadRequest}
	ErrBadRequest   = ProblemDetail{Type: TypeBadRequest, Title: "Bad Request", Status: http.StatusBadRequest}
	ErrUnauthorized = ProblemDetail{Type: TypeUnauthorized, Title: "Unauthorized", Status: http.StatusUnauthorized}
	ErrForbidden    = ProblemDetail{Type: TypeForbidden, Title: "Forbidden", Status: http.StatusForbidden}
	ErrNotFound     = ProblemDetail{Type: TypeNotFound, Title: "Resource Not Found", Status: http.StatusNotFound}
	ErrConflict     = ProblemDetail{Type: TypeConflict, Title: "Conflict", Status: http.StatusConflict}
	ErrInternal     = ProblemDetail{Type: TypeInternal, Title: "Internal Server Error", Status: http.StatusInternalServerError}
)

// NewValidationProblem reports field-level failures keyed by JSON field name.
func NewValidationProblem(fieldErrors map[string]string) ProblemDetail {
	return ErrValidation.WithExtension("fields", fieldErrors)
}

// NewConflictProblem creates a 409 with the given detail.
func NewConflictProblem(detail string) ProblemDetail {
	return ErrConflict.WithDetail(detail)
}

// ForStatus picks the template matching status. Unknown statuses become 500s.
func ForStatus(status int, detail string) ProblemDetail {
	var problem ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = ErrBadRequest
	case http.StatusUnauthorized:
		problem = ErrUnauthorized
	case http.StatusForbidden:
		problem = ErrForbidden
	case http.StatusNotFound:
		problem = ErrNotFound
	case http.StatusConflict:
		problem = ErrConflict
	default:
		problem = ErrInternal
	}
	return problem.WithDetail(detail)
}
