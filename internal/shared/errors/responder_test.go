package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	reached := false
	router.GET("/api/customers", handler, func(c *gin.Context) { reached = true })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/customers", nil))
	assert.False(t, reached, "handler chain should stop after a problem response")

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestRespond_WritesProblemJSON(t *testing.T) {
	rec, problem := serve(t, func(c *gin.Context) {
		Respond(c, NewConflictProblem("Customer with this email already exists"))
	})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	assert.Equal(t, TypeConflict, problem.Type)
	assert.Equal(t, "/api/customers", problem.Instance)
	assert.Equal(t, "Customer with this email already exists", problem.Detail)
}

func TestRespondError_UnknownErrorsBecomeInternal(t *testing.T) {
	rec, problem := serve(t, func(c *gin.Context) {
		RespondError(c, errors.New("connection refused"))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, TypeInternal, problem.Type)
	assert.Equal(t, "connection refused", problem.Detail)
}

func TestRespondError_KeepsWrappedProblem(t *testing.T) {
	rec, problem := serve(t, func(c *gin.Context) {
		RespondError(c, fmt.Errorf("list customers: %w", ErrForbidden.WithDetail("Insufficient permissions")))
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Insufficient permissions", problem.Detail)
}

func TestForStatus(t *testing.T) {
	cases := map[int]string{
		http.StatusBadRequest:          TypeBadRequest,
		http.StatusUnauthorized:        TypeUnauthorized,
		http.StatusForbidden:           TypeForbidden,
		http.StatusNotFound:            TypeNotFound,
		http.StatusConflict:            TypeConflict,
		http.StatusInternalServerError: TypeInternal,
		http.StatusTeapot:              TypeInternal,
	}
	for status, want := range cases {
		problem := ForStatus(status, "detail")
		assert.Equal(t, want, problem.Type, "status %d", status)
		assert.Equal(t, "detail", problem.Detail)
	}
}

func TestWithExtension_DoesNotShareTemplateMap(t *testing.T) {
	first := NewValidationProblem(map[string]string{"email": "is required"})
	second := ErrValidation.WithExtension("fields", map[string]string{"sku": "is required"})

	assert.Nil(t, ErrValidation.Extensions)
	assert.NotEqual(t, first.Extensions["fields"], second.Extensions["fields"])
}
