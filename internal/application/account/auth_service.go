package account

import (
	"context"
	"errors"
	"time"

	"github.com/mercado/backend/internal/domain/account"
	"github.com/mercado/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// invalid credentials and unknown usernames produce the same error so login
// attempts cannot probe for accounts
var errInvalidCredentials = shared.NewDomainError("UNAUTHORIZED", "Invalid username or password")

// TokenIssuer signs access tokens for authenticated users
type TokenIssuer interface {
	Issue(userID uuid.UUID, username string, customerID, sellerID *uuid.UUID) (string, time.Time, error)
}

// AuthService handles registration and login. Every account gets a customer
// profile; a seller profile is added on request.
type AuthService struct {
	userRepo     account.UserRepository
	customerRepo account.CustomerRepository
	sellerRepo   account.SellerRepository
	tokens       TokenIssuer
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo account.UserRepository,
	customerRepo account.CustomerRepository,
	sellerRepo account.SellerRepository,
	tokens TokenIssuer,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		customerRepo: customerRepo,
		sellerRepo:   sellerRepo,
		tokens:       tokens,
	}
}

// Register creates a user with its profiles and signs it in
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username is already taken")
	}
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already registered")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	user, err := account.NewUser(req.Username, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.EnableCustomer()
	if req.AsSeller {
		user.EnableSeller()
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	customer, err := account.NewCustomer(user.ID, req.Address)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	var seller *account.Seller
	if req.AsSeller {
		seller, err = account.NewSeller(user.ID, req.StoreName, "")
		if err != nil {
			return nil, err
		}
		if err := s.sellerRepo.Save(ctx, seller); err != nil {
			return nil, err
		}
	}

	return s.authResponse(user, customer, seller)
}

// Login verifies credentials and signs an access token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive || !user.CheckPassword(req.Password) {
		return nil, errInvalidCredentials
	}

	customer, seller := s.profiles(ctx, user)
	return s.authResponse(user, customer, seller)
}

// Profile returns the account of an authenticated user
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	customer, seller := s.profiles(ctx, user)
	response := ToUserResponse(user, profileID(customer), sellerID(seller))
	return &response, nil
}

func (s *AuthService) profiles(ctx context.Context, user *account.User) (*account.Customer, *account.Seller) {
	var customer *account.Customer
	var seller *account.Seller
	if user.IsCustomer {
		customer, _ = s.customerRepo.FindByUserID(ctx, user.ID)
	}
	if user.IsSeller {
		seller, _ = s.sellerRepo.FindByUserID(ctx, user.ID)
	}
	return customer, seller
}

func (s *AuthService) authResponse(user *account.User, customer *account.Customer, seller *account.Seller) (*AuthResponse, error) {
	customerID := profileID(customer)
	sellID := sellerID(seller)

	token, expiresAt, err := s.tokens.Issue(user.ID, user.Username, customerID, sellID)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      ToUserResponse(user, customerID, sellID),
	}, nil
}

func profileID(customer *account.Customer) *uuid.UUID {
	if customer == nil {
		return nil
	}
	return &customer.ID
}

func sellerID(seller *account.Seller) *uuid.UUID {
	if seller == nil {
		return nil
	}
	return &seller.ID
}
