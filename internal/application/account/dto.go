package account

import (
	"time"

	"github.com/mercado/backend/internal/domain/account"
	"github.com/google/uuid"
)

// RegisterRequest represents a request to create an account
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=150"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
	AsSeller  bool   `json:"as_seller"`
	Address   string `json:"address" binding:"max=200"`
	StoreName string `json:"store_name" binding:"max=100"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse represents an account in API responses
type UserResponse struct {
	ID         uuid.UUID  `json:"id"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	IsCustomer bool       `json:"is_customer"`
	IsSeller   bool       `json:"is_seller"`
	CustomerID *uuid.UUID `json:"customer_id,omitempty"`
	SellerID   *uuid.UUID `json:"seller_id,omitempty"`
}

// AuthResponse bundles a signed token with the authenticated account
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// ToUserResponse converts a domain user to a response DTO
func ToUserResponse(u *account.User, customerID, sellerID *uuid.UUID) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		IsCustomer: u.IsCustomer,
		IsSeller:   u.IsSeller,
		CustomerID: customerID,
		SellerID:   sellerID,
	}
}
