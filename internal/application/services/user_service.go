package services

import (
	"strings"
	"time"

	"github.com/brightloom/storefront-go/internal/domain/entities/commerce"
	"github.com/brightloom/storefront-go/internal/domain/repositories"
	"github.com/brightloom/storefront-go/internal/infrastructure/observability/logging"
	"github.com/brightloom/storefront-go/internal/infrastructure/security"
	"github.com/brightloom/storefront-go/pkg/config"
)

// UserService manages shopper profiles and session tokens. User identity is
// owned by the external auth provider; sign-in upserts the profile row.
type UserService struct {
	users     repositories.UserRepository
	jwtSecret string
	logger    *logging.ChanneledLogger
}

func NewUserService(users repositories.UserRepository, jwtSecret string, logger *logging.ChanneledLogger) *UserService {
	return &UserService{
		users:     users,
		jwtSecret: jwtSecret,
		logger:    logger,
	}
}

// SignInInput is the profile as reported by the auth provider.
type SignInInput struct {
	ID     string
	Name   string
	Email  string
	Photo  string
	Gender string
	DOB    time.Time
}

// SignIn upserts the user profile and returns it with a session token.
// The configured admin email gets the admin role.
func (s *UserService) SignIn(input SignInInput) (*commerce.User, string, error) {
	role := commerce.RoleCustomer
	if config.AdminEmail != "" && strings.EqualFold(input.Email, config.AdminEmail) {
		role = commerce.RoleAdmin
	}

	existing, err := s.users.FindByID(input.ID)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &commerce.User{
		ID:        input.ID,
		Name:      input.Name,
		Email:     input.Email,
		Photo:     input.Photo,
		Gender:    input.Gender,
		Role:      role,
		DOB:       input.DOB,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if existing != nil {
		user.Role = existing.Role
		user.CreatedAt = existing.CreatedAt
	}

	if err := s.users.Store(user); err != nil {
		return nil, "", err
	}

	token, err := security.GenerateSessionToken(user.ID, user.Role, s.jwtSecret)
	if err != nil {
		return nil, "", err
	}

	if existing == nil {
		s.logger.Auth().Info("User registered", "id", user.ID, "role", user.Role)
	}
	return user, token, nil
}

// AdminSignIn checks the configured admin credentials and returns a session
// token with the admin role. The configured password is a bcrypt hash.
func (s *UserService) AdminSignIn(email, password string) (string, error) {
	if config.AdminEmail == "" || !strings.EqualFold(email, config.AdminEmail) {
		return "", ErrInvalidCredentials
	}
	if !security.CheckPassword(config.AdminPassword, password) {
		s.logger.Auth().Warn("Admin sign-in rejected", "email", email)
		return "", ErrInvalidCredentials
	}
	return security.GenerateSessionToken("admin:"+email, commerce.RoleAdmin, s.jwtSecret)
}

func (s *UserService) List() ([]*commerce.User, error) {
	return s.users.FindAll()
}

func (s *UserService) Get(id string) (*commerce.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *UserService) Delete(id string) error {
	user, err := s.users.FindByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	if err := s.users.Delete(id); err != nil {
		return err
	}

	s.logger.Auth().Info("User deleted", "id", id)
	return nil
}
