package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/arcadely/arcade/internal/dependencies/clock"
	"github.com/arcadely/arcade/internal/model"
	"github.com/arcadely/arcade/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

const minFieldLength = 3

// Service handles accounts and token-based authentication
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	tokenSecret []byte
	tokenTTL    time.Duration

	mu      sync.Mutex
	revoked map[string]time.Time // token -> expiry, for logout
}

// Config holds configuration for the auth service
type Config struct {
	TokenSecret string
	TokenTTL    time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		TokenTTL: 24 * time.Hour,
	}
}

// New creates a new AuthService
func New(storage storage.Storage, clock clock.Clock, cfg Config) *Service {
	if cfg.TokenTTL == 0 {
		cfg.TokenTTL = DefaultConfig().TokenTTL
	}
	return &Service{
		storage:     storage,
		clock:       clock,
		tokenSecret: []byte(cfg.TokenSecret),
		tokenTTL:    cfg.TokenTTL,
		revoked:     make(map[string]time.Time),
	}
}

// Register creates a new account. The display name defaults to the username
// when empty. No token is issued; the caller logs in separately.
func (s *Service) Register(ctx context.Context, username, password, displayName string) (*model.User, error) {
	if len(username) < minFieldLength {
		return nil, model.NewInvalidInputError("username must be at least %d characters", minFieldLength)
	}
	if len(password) < minFieldLength {
		return nil, model.NewInvalidInputError("password must be at least %d characters", minFieldLength)
	}
	if displayName == "" {
		displayName = username
	}
	if len(displayName) < minFieldLength {
		return nil, model.NewInvalidInputError("display name must be at least %d characters", minFieldLength)
	}

	_, err := s.storage.GetUser(ctx, username)
	if err == nil {
		return nil, model.ErrUsernameTaken
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := model.NewUser(username, displayName, string(hash), s.clock.Now())
	if err := s.storage.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a signed token
func (s *Service) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := s.storage.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.tokenSecret)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Authenticate validates a token and returns the username it was issued to
func (s *Service) Authenticate(tokenString string) (string, error) {
	if s.isRevoked(tokenString) {
		return "", ErrInvalidToken
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.tokenSecret, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// Logout revokes a token for the remainder of its lifetime
func (s *Service) Logout(tokenString string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	for t, exp := range s.revoked {
		if now.After(exp) {
			delete(s.revoked, t)
		}
	}
	s.revoked[tokenString] = now.Add(s.tokenTTL)
}

func (s *Service) isRevoked(tokenString string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.revoked[tokenString]
	if !ok {
		return false
	}
	if s.clock.Now().After(exp) {
		delete(s.revoked, tokenString)
		return false
	}
	return true
}

// ChangeDisplayName updates the user's display name
func (s *Service) ChangeDisplayName(ctx context.Context, user *model.User, displayName string) error {
	if len(displayName) < minFieldLength {
		return model.NewInvalidInputError("display name must be at least %d characters", minFieldLength)
	}
	user.DisplayName = displayName
	user.UpdatedAt = s.clock.Now()
	return s.storage.SaveUser(ctx, user)
}

// ChangePassword verifies the current password and stores a new hash
func (s *Service) ChangePassword(ctx context.Context, user *model.User, currentPassword, newPassword string) error {
	if len(newPassword) < minFieldLength {
		return model.NewInvalidInputError("password must be at least %d characters", minFieldLength)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = s.clock.Now()
	return s.storage.SaveUser(ctx, user)
}

// DeleteAccount removes the account record
func (s *Service) DeleteAccount(ctx context.Context, username string) error {
	existed, err := s.storage.DeleteUser(ctx, username)
	if err != nil {
		return err
	}
	if !existed {
		return model.ErrUserNotFound
	}
	return nil
}
