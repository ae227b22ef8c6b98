package erpserver

import (
	"time"

	userdomain "github.com/Apurer/erpflow/internal/domains/users/domain"
	userports "github.com/Apurer/erpflow/internal/domains/users/ports"
)

// MessageRegistered accompanies a successful sign-up.
const MessageRegistered = "User registered successfully"

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Role      string `json:"role,omitempty" binding:"omitempty,oneof=ADMIN MANAGER USER ACCOUNTANT SALES"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// User is the public view of an account. The password hash never leaves the server.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	Avatar    *string   `json:"avatar"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type RegisterResponse struct {
	User    User   `json:"user"`
	Message string `json:"message"`
}

type LoginResponse struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Message   string    `json:"message"`
}

func fromUser(u *userdomain.User) User {
	out := User{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Avatar != "" {
		avatar := u.Avatar
		out.Avatar = &avatar
	}
	return out
}

func fromLoginResult(r *userports.LoginResult) LoginResponse {
	return LoginResponse{
		User:      fromUser(r.User),
		Token:     r.Token,
		ExpiresAt: r.ExpiresAt,
		Message:   r.Message,
	}
}
