package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"grievancehub/internal/config"
	"grievancehub/internal/model"
	"grievancehub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for an unknown email and for a wrong
// password alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken is returned when registering an email that already has an
// account.
var ErrEmailTaken = errors.New("user already exists")

// AuthService handles registration and login.
type AuthService struct {
	users repository.IUserRepository
	cfg   *config.Config
	log   *zap.Logger
}

func NewAuthService(users repository.IUserRepository, cfg *config.Config, log *zap.Logger) *AuthService {
	return &AuthService{users: users, cfg: cfg, log: log}
}

// Register creates a new account. Role defaults to "user". The email
// uniqueness check lives here, not in the store. The returned user has the
// password stripped.
func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (*model.User, error) {
	if role == "" {
		role = model.RoleUser
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	stored := password
	if s.cfg.Auth.HashPasswords {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		stored = string(hash)
	}

	user := model.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: stored,
		Role:     role,
	}
	if err := s.users.Add(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.String("email", email), zap.String("role", role))
	sanitized := user.Sanitized()
	return &sanitized, nil
}

// Authenticate checks the presented credentials and returns the matching user
// with the password stripped. The failure is uniform whether the email is
// unknown or the password is wrong, so responses do not reveal which accounts
// exist.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !passwordMatches(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	sanitized := user.Sanitized()
	return &sanitized, nil
}

// passwordMatches handles both plaintext records (the seed accounts and any
// store written before hashing was enabled) and bcrypt records.
func passwordMatches(stored, presented string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
	}
	return stored == presented
}
