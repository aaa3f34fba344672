// Package user provides the application layer for accounts: registration,
// authentication and the admin operations.
package user

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tastebite/platform/internal/domain/user"
	"github.com/tastebite/platform/internal/ports/outbound"
	"github.com/tastebite/platform/pkg/errors"
)

// TokenIssuer mints and verifies session tokens for authenticated users.
// The concrete implementation lives in the security infrastructure.
type TokenIssuer interface {
	Issue(userID uuid.UUID, role user.Role) (string, error)
}

// Service implements account use cases.
type Service struct {
	userRepo outbound.UserRepository
	tokens   TokenIssuer
	logger   *zap.Logger
}

// NewService creates a new user service.
func NewService(
	userRepo outbound.UserRepository,
	tokens TokenIssuer,
	logger *zap.Logger,
) *Service {
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger.Named("user-service"),
	}
}

// UserDTO is the API shape of an account.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      user.Role `json:"role"`
	IsActive  bool      `json:"is_active"`
	IsSystem  bool      `json:"is_system"`
	CreatedAt string    `json:"created_at"`
}

// Register creates a new account.
func (s *Service) Register(ctx context.Context, email, name, password string) (*UserDTO, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewDatabaseError("check email", err)
	}
	if exists {
		return nil, errors.NewEmailAlreadyExistsError(email)
	}

	account, err := user.New(email, name, password)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.userRepo.Create(ctx, account); err != nil {
		return nil, errors.NewDatabaseError("create user", err)
	}

	s.logger.Info("User registered", zap.String("user_id", account.ID().String()))
	return toDTO(account), nil
}

// Authenticate verifies credentials and returns a session token with the
// account. Deactivated accounts cannot log in.
func (s *Service) Authenticate(ctx context.Context, email, password string) (string, *UserDTO, error) {
	account, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil || account == nil {
		return "", nil, errors.NewInvalidCredentialsError()
	}
	if !account.CheckPassword(password) {
		return "", nil, errors.NewInvalidCredentialsError()
	}
	if !account.IsActive() {
		return "", nil, errors.NewForbiddenError("account is deactivated")
	}

	account.RecordLogin()
	if err := s.userRepo.Update(ctx, account); err != nil {
		s.logger.Warn("Failed to record login", zap.Error(err))
	}

	token, err := s.tokens.Issue(account.ID(), account.Role())
	if err != nil {
		return "", nil, errors.NewInternalError("failed to issue session token").WithCause(err)
	}

	s.logger.Info("User authenticated", zap.String("user_id", account.ID().String()))
	return token, toDTO(account), nil
}

// GetProfile returns the account for an authenticated user id.
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	account, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toDTO(account), nil
}

// Admin operations

// ListUsers returns every account, for the admin panel.
func (s *Service) ListUsers(ctx context.Context) ([]UserDTO, error) {
	accounts, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.NewDatabaseError("list users", err)
	}
	dtos := make([]UserDTO, len(accounts))
	for i, a := range accounts {
		dtos[i] = *toDTO(a)
	}
	return dtos, nil
}

// SetUserActive activates or deactivates an account.
func (s *Service) SetUserActive(ctx context.Context, userID uuid.UUID, active bool) (*UserDTO, error) {
	account, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if active {
		account.Activate()
	} else {
		account.Deactivate()
	}
	if err := s.userRepo.Update(ctx, account); err != nil {
		return nil, errors.NewDatabaseError("update user", err)
	}

	s.logger.Info("User active state changed",
		zap.String("user_id", userID.String()),
		zap.Bool("active", active),
	)
	return toDTO(account), nil
}

func (s *Service) findUser(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	account, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == user.ErrUserNotFound {
			return nil, errors.NewUserNotFoundError(userID.String())
		}
		return nil, errors.NewDatabaseError("find user", err)
	}
	if account == nil {
		return nil, errors.NewUserNotFoundError(userID.String())
	}
	return account, nil
}

func toDTO(a *user.User) *UserDTO {
	return &UserDTO{
		ID:        a.ID(),
		Email:     a.Email(),
		Name:      a.Name(),
		Role:      a.Role(),
		IsActive:  a.IsActive(),
		IsSystem:  a.IsSystem(),
		CreatedAt: a.CreatedAt().Format("2006-01-02T15:04:05Z07:00"),
	}
}
