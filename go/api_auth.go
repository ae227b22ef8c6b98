package erpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	userapp "github.com/Apurer/erpflow/internal/domains/users/application"
	userdomain "github.com/Apurer/erpflow/internal/domains/users/domain"
	userports "github.com/Apurer/erpflow/internal/domains/users/ports"
	apierrors "github.com/Apurer/erpflow/internal/shared/errors"
)

// AuthAPI wires HTTP transport with the users bounded context service.
type AuthAPI struct {
	service userports.Service
}

// NewAuthAPI creates an AuthAPI backed by the provided service.
func NewAuthAPI(service userports.Service) AuthAPI {
	return AuthAPI{service: service}
}

// Post /api/auth/register
// Create an account
func (api *AuthAPI) Register(c *gin.Context) {
	var payload RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	role := userdomain.RoleUser
	if payload.Role != "" {
		parsed, err := userdomain.ParseRole(payload.Role)
		if err != nil {
			respondError(c, http.StatusBadRequest, err)
			return
		}
		role = parsed
	}
	user, err := api.service.Register(c.Request.Context(), userports.RegisterInput{
		Email:     payload.Email,
		Password:  payload.Password,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Role:      role,
	})
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, RegisterResponse{User: fromUser(user), Message: MessageRegistered})
}

// Post /api/auth/login
// Sign in and receive an access token
func (api *AuthAPI) Login(c *gin.Context) {
	var payload LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindingError(c, err)
		return
	}
	result, err := api.service.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromLoginResult(result))
}

// Post /api/auth/logout
// Revoke the bearer token
func (api *AuthAPI) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		respondProblem(c, apierrors.ErrUnauthorized.WithDetail("Access token required"))
		return
	}
	if err := api.service.Logout(c.Request.Context(), token); err != nil {
		respondUserServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondUserServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, userapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	case errors.Is(err, userports.ErrDuplicateEmail):
		respondError(c, http.StatusConflict, userports.ErrDuplicateEmail)
	case errors.Is(err, userports.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, userports.ErrInvalidCredentials)
	case errors.Is(err, userapp.ErrAuthentication):
		respondError(c, http.StatusUnauthorized, err)
	case errors.Is(err, userports.ErrForbidden):
		respondError(c, http.StatusForbidden, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
