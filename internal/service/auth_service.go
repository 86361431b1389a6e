package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/snackforest/shop-service/internal/auth"
	"github.com/snackforest/shop-service/internal/config"
	"github.com/snackforest/shop-service/internal/errs"
	"github.com/snackforest/shop-service/internal/models"
)

// CustomerStore is the customer persistence surface the auth service uses.
type CustomerStore interface {
	GetByAccount(ctx context.Context, account string) (*models.Customer, error)
	GetByID(ctx context.Context, id int64) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) (int64, error)
	Update(ctx context.Context, customer *models.Customer) error
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Token      string `json:"token"`
	Role       string `json:"role"`
	CustomerID int64  `json:"customerId,omitempty"`
	Name       string `json:"name,omitempty"`
}

// AuthService handles login, registration and profile management. The admin
// account is configured, not stored; every other account lives in the
// customers table.
type AuthService struct {
	customers CustomerStore
	issuer    *auth.TokenIssuer
	config    *config.Config
	logger    *zap.Logger
}

func NewAuthService(customers CustomerStore, issuer *auth.TokenIssuer, cfg *config.Config, logger *zap.Logger) *AuthService {
	return &AuthService{
		customers: customers,
		issuer:    issuer,
		config:    cfg,
		logger:    logger.With(zap.String("component", "auth-service")),
	}
}

// Login authenticates either the configured admin or a registered customer.
// Any mismatch answers with the same auth error so account probing learns
// nothing.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, errs.NewValidationError("username", "username and password are required")
	}

	if username == s.config.Auth.AdminUsername {
		if password != s.config.Auth.AdminPassword {
			return nil, errs.NewAuthError("invalid credentials")
		}
		token, err := s.issuer.Issue(auth.RoleAdmin, 0)
		if err != nil {
			return nil, errs.NewPersistenceError("failed to issue token", err)
		}
		s.logger.Info("admin login")
		return &LoginResult{Token: token, Role: auth.RoleAdmin}, nil
	}

	customer, err := s.customers.GetByAccount(ctx, username)
	if err != nil {
		if errs.KindOf(err) == errs.KindNotFound {
			return nil, errs.NewAuthError("invalid credentials")
		}
		return nil, err
	}

	if !auth.VerifyPassword(password, customer.Salt, customer.PasswordHash) {
		s.logger.Info("login rejected", zap.String("account", username))
		return nil, errs.NewAuthError("invalid credentials")
	}

	token, err := s.issuer.Issue(auth.RoleCustomer, customer.ID)
	if err != nil {
		return nil, errs.NewPersistenceError("failed to issue token", err)
	}

	s.logger.Info("customer login", zap.Int64("customer_id", customer.ID))
	return &LoginResult{
		Token:      token,
		Role:       auth.RoleCustomer,
		CustomerID: customer.ID,
		Name:       customer.Name,
	}, nil
}

// RegisterRequest is the payload for customer registration.
type RegisterRequest struct {
	Account  string `json:"account"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Register creates a new customer account. A taken account name surfaces as
// a conflict from the store.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (int64, error) {
	account := strings.TrimSpace(req.Account)
	if account == "" {
		return 0, errs.NewValidationError("account", "account is required")
	}
	if account == s.config.Auth.AdminUsername {
		return 0, errs.NewConflictError("account", "account already exists")
	}
	if len(req.Password) < 6 {
		return 0, errs.NewValidationError("password", "password must be at least 6 characters")
	}

	salt, err := auth.GenerateSalt()
	if err != nil {
		return 0, errs.NewPersistenceError("failed to generate salt", err)
	}

	customer := &models.Customer{
		Name:         req.Name,
		Account:      account,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: auth.HashPassword(req.Password, salt),
		Salt:         salt,
	}

	id, err := s.customers.Create(ctx, customer)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetProfile returns the customer behind an authenticated session.
func (s *AuthService) GetProfile(ctx context.Context, customerID int64) (*models.Customer, error) {
	return s.customers.GetByID(ctx, customerID)
}

// UpdateProfile applies the non-nil fields of a profile edit. A new password
// gets a fresh salt.
func (s *AuthService) UpdateProfile(ctx context.Context, customerID int64, update *models.ProfileUpdate) (*models.Customer, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		customer.Name = *update.Name
	}
	if update.Email != nil {
		customer.Email = *update.Email
	}
	if update.Phone != nil {
		customer.Phone = *update.Phone
	}
	if update.Password != nil {
		if len(*update.Password) < 6 {
			return nil, errs.NewValidationError("password", "password must be at least 6 characters")
		}
		salt, err := auth.GenerateSalt()
		if err != nil {
			return nil, errs.NewPersistenceError("failed to generate salt", err)
		}
		customer.Salt = salt
		customer.PasswordHash = auth.HashPassword(*update.Password, salt)
	}

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", zap.Int64("customer_id", customerID))
	return customer, nil
}
