package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	accountserrors "venuedesk/internal/accounts/errors"
	"venuedesk/internal/accounts/repository"
	"venuedesk/internal/accounts/validator"
	"venuedesk/pkg/auth"
	"venuedesk/pkg/config"
	apperrors "venuedesk/pkg/errors"
	"venuedesk/pkg/model"
)

const (
	KindUser     = "user"
	KindCustomer = "customer"
)

type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CustomerRegisterInput struct {
	UserEmail   string `json:"user_email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	PhoneNumber string `json:"phone_number" validate:"required,min=5,max=20"`
}

type AccountService interface {
	Register(ctx context.Context, input *RegisterInput) (string, error)
	Login(ctx context.Context, input *LoginInput) (string, error)
	GetCurrent(ctx context.Context, accountID string) (*model.Account, error)
	GetCurrentCustomer(ctx context.Context, customerID string) (*model.Customer, error)
	UpdateProfile(ctx context.Context, id string, account *model.Account) error
	RegisterCustomer(ctx context.Context, input *CustomerRegisterInput) (string, error)
}

type accountService struct {
	repo      repository.AccountRepository
	validator *validator.AccountValidator
	issuer    *auth.TokenIssuer
	cfg       *config.Config
}

func NewAccountService(
	repo repository.AccountRepository,
	accountValidator *validator.AccountValidator,
	issuer *auth.TokenIssuer,
	cfg *config.Config,
) AccountService {
	return &accountService{
		repo:      repo,
		validator: accountValidator,
		issuer:    issuer,
		cfg:       cfg,
	}
}

// Register creates a venue-owner account and returns a signed token for it.
func (s *accountService) Register(ctx context.Context, input *RegisterInput) (string, error) {
	if err := s.validator.Validate(input); err != nil {
		s.cfg.Log.Warn("Account registration validation failed", "error", err)
		return "", validationError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperrors.Internal("Failed to hash password", err)
	}

	account := &model.Account{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hash),
	}
	if err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, accountserrors.ErrEmailTaken) {
			return "", apperrors.Conflict("An account with this email already exists")
		}
		s.cfg.Log.Error("Failed to create account", "email", input.Email, "error", err)
		return "", apperrors.Internal("Failed to create account", err)
	}

	token, err := s.issuer.Issue(account.ID, KindUser)
	if err != nil {
		s.cfg.Log.Error("Failed to issue token", "account_id", account.ID, "error", err)
		return "", apperrors.Internal("Failed to issue token", err)
	}

	s.cfg.Log.Info("Account registered", "id", account.ID)
	return token, nil
}

// Login verifies credentials and returns a fresh token. Missing account and
// wrong password are indistinguishable to the caller.
func (s *accountService) Login(ctx context.Context, input *LoginInput) (string, error) {
	if err := s.validator.Validate(input); err != nil {
		return "", validationError(err)
	}

	account, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, accountserrors.ErrNotFound) {
			return "", apperrors.Unauthorized("Invalid credentials")
		}
		s.cfg.Log.Error("Failed to look up account", "error", err)
		return "", apperrors.Internal("Failed to log in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(input.Password)); err != nil {
		s.cfg.Log.Warn("Login rejected", "account_id", account.ID)
		return "", apperrors.Unauthorized("Invalid credentials")
	}

	token, err := s.issuer.Issue(account.ID, KindUser)
	if err != nil {
		s.cfg.Log.Error("Failed to issue token", "account_id", account.ID, "error", err)
		return "", apperrors.Internal("Failed to issue token", err)
	}

	s.cfg.Log.Info("Account logged in", "id", account.ID)
	return token, nil
}

func (s *accountService) GetCurrent(ctx context.Context, accountID string) (*model.Account, error) {
	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		switch {
		case errors.Is(err, accountserrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("Account", accountID)
		case errors.Is(err, accountserrors.ErrInvalidID):
			return nil, apperrors.InvalidInput("Account ID is not a valid ObjectID")
		default:
			s.cfg.Log.Error("Failed to load account", "account_id", accountID, "error", err)
			return nil, apperrors.Internal("Failed to load account", err)
		}
	}
	return account, nil
}

// GetCurrentCustomer resolves a customer token's principal from the
// Customers collection; account and customer ids live in separate
// collections and never cross-resolve.
func (s *accountService) GetCurrentCustomer(ctx context.Context, customerID string) (*model.Customer, error) {
	customer, err := s.repo.FindCustomerByID(ctx, customerID)
	if err != nil {
		switch {
		case errors.Is(err, accountserrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("Customer", customerID)
		case errors.Is(err, accountserrors.ErrInvalidID):
			return nil, apperrors.InvalidInput("Customer ID is not a valid ObjectID")
		default:
			s.cfg.Log.Error("Failed to load customer", "customer_id", customerID, "error", err)
			return nil, apperrors.Internal("Failed to load customer", err)
		}
	}
	return customer, nil
}

func (s *accountService) UpdateProfile(ctx context.Context, id string, account *model.Account) error {
	if err := s.validator.Validate(account); err != nil {
		return validationError(err)
	}

	if err := s.repo.UpdateProfile(ctx, id, account); err != nil {
		switch {
		case errors.Is(err, accountserrors.ErrNotFound):
			return apperrors.NotFoundWithID("Account", id)
		case errors.Is(err, accountserrors.ErrInvalidID):
			return apperrors.InvalidInput("Account ID is not a valid ObjectID")
		default:
			s.cfg.Log.Error("Failed to update account", "account_id", id, "error", err)
			return apperrors.Internal("Failed to update account", err)
		}
	}

	s.cfg.Log.Info("Account profile updated", "id", id)
	return nil
}

// RegisterCustomer creates a visitor login used for inquiries.
func (s *accountService) RegisterCustomer(ctx context.Context, input *CustomerRegisterInput) (string, error) {
	if err := s.validator.Validate(input); err != nil {
		s.cfg.Log.Warn("Customer registration validation failed", "error", err)
		return "", validationError(err)
	}

	if _, err := s.repo.FindCustomerByEmail(ctx, input.UserEmail); err == nil {
		return "", apperrors.Conflict("A customer with this email already exists")
	} else if !errors.Is(err, accountserrors.ErrNotFound) {
		s.cfg.Log.Error("Failed to look up customer", "error", err)
		return "", apperrors.Internal("Failed to create customer", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperrors.Internal("Failed to hash password", err)
	}

	customer := &model.Customer{
		UserEmail:   input.UserEmail,
		Password:    string(hash),
		PhoneNumber: input.PhoneNumber,
	}
	if err := s.repo.CreateCustomer(ctx, customer); err != nil {
		if errors.Is(err, accountserrors.ErrEmailTaken) {
			return "", apperrors.Conflict("A customer with this email already exists")
		}
		s.cfg.Log.Error("Failed to create customer", "email", input.UserEmail, "error", err)
		return "", apperrors.Internal("Failed to create customer", err)
	}

	token, err := s.issuer.Issue(customer.ID, KindCustomer)
	if err != nil {
		s.cfg.Log.Error("Failed to issue token", "customer_id", customer.ID, "error", err)
		return "", apperrors.Internal("Failed to issue token", err)
	}

	s.cfg.Log.Info("Customer registered", "id", customer.ID)
	return token, nil
}

func validationError(err error) error {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		return apperrors.Validation("Account validation failed", map[string]any{"errors": verrs})
	}
	return apperrors.Validation("Account validation failed", map[string]any{"error": err.Error()})
}
