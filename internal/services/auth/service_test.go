package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/arcadely/arcade/internal/dependencies/mocks"
	"github.com/arcadely/arcade/internal/model"
	"github.com/arcadely/arcade/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, Config{TokenSecret: "test-secret", TokenTTL: time.Hour})
	s.ctx = context.Background()
}

// Register tests

func (s *ServiceSuite) TestRegisterSucceeds() {
	user, err := s.service.Register(s.ctx, "alice", "password123", "Alice")
	s.Require().NoError(err)

	s.Equal("alice", user.Username)
	s.Equal("Alice", user.DisplayName)
	s.Equal(0, user.Score)
}

func (s *ServiceSuite) TestRegisterHashesPassword() {
	_, _ = s.service.Register(s.ctx, "alice", "password123", "Alice")

	stored, err := s.storage.GetUser(s.ctx, "alice")
	s.Require().NoError(err)
	s.NotEmpty(stored.PasswordHash)
	s.NotEqual("password123", stored.PasswordHash)
}

func (s *ServiceSuite) TestRegisterDisplayNameDefaultsToUsername() {
	user, err := s.service.Register(s.ctx, "alice", "password123", "")
	s.Require().NoError(err)
	s.Equal("alice", user.DisplayName)
}

func (s *ServiceSuite) TestRegisterRejectsShortFields() {
	var invalid *model.InvalidInputError

	_, err := s.service.Register(s.ctx, "al", "password123", "Alice")
	s.ErrorAs(err, &invalid)

	_, err = s.service.Register(s.ctx, "alice", "pw", "Alice")
	s.ErrorAs(err, &invalid)

	_, err = s.service.Register(s.ctx, "alice", "password123", "Al")
	s.ErrorAs(err, &invalid)
}

func (s *ServiceSuite) TestRegisterFailsIfUsernameTaken() {
	_, _ = s.service.Register(s.ctx, "alice", "password123", "Alice")

	_, err := s.service.Register(s.ctx, "ALICE", "different1", "Alice2")
	s.ErrorIs(err, model.ErrUsernameTaken)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	_, _ = s.service.Register(s.ctx, "alice", "password123", "Alice")

	token, user, err := s.service.Login(s.ctx, "alice", "password123")
	s.Require().NoError(err)
	s.NotEmpty(token)
	s.Equal("alice", user.Username)
}

func (s *ServiceSuite) TestLoginFailsWithWrongPassword() {
	_, _ = s.service.Register(s.ctx, "alice", "password123", "Alice")

	_, _, err := s.service.Login(s.ctx, "alice", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailsForUnknownUser() {
	_, _, err := s.service.Login(s.ctx, "nobody", "password123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

// Authenticate tests

func (s *ServiceSuite) TestAuthenticateReturnsSubject() {
	_, _ = s.service.Register(s.ctx, "alice", "password123", "Alice")
	token, _, _ := s.service.Login(s.ctx, "alice", "password123")

	username, err := s.service.Authenticate(token)
	s.Require().NoError(err)
	s.Equal("alice", username)
}

func (s *ServiceSuite) TestAuthenticateRejectsGarbage() {
	_, err := s.service.Authenticate("not-a-token")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestAuthenticateRejectsExpiredToken() {
	_, _ = s.service.Register(s.ctx, "alice", "password123", "Alice")
	token, _, _ := s.service.Login(s.ctx, "alice", "password123")

	s.clock.Advance(2 * time.Hour)

	_, err := s.service.Authenticate(token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *ServiceSuite) TestLogoutRevokesToken() {
	_, _ = s.service.Register(s.ctx, "alice", "password123", "Alice")
	token, _, _ := s.service.Login(s.ctx, "alice", "password123")

	s.service.Logout(token)

	_, err := s.service.Authenticate(token)
	s.ErrorIs(err, ErrInvalidToken)
}

// Account management tests

func (s *ServiceSuite) TestChangeDisplayName() {
	user, _ := s.service.Register(s.ctx, "alice", "password123", "Alice")

	err := s.service.ChangeDisplayName(s.ctx, user, "Queen Alice")
	s.Require().NoError(err)

	stored, _ := s.storage.GetUser(s.ctx, "alice")
	s.Equal("Queen Alice", stored.DisplayName)
}

func (s *ServiceSuite) TestChangePassword() {
	user, _ := s.service.Register(s.ctx, "alice", "password123", "Alice")

	err := s.service.ChangePassword(s.ctx, user, "password123", "newpassword")
	s.Require().NoError(err)

	_, _, err = s.service.Login(s.ctx, "alice", "newpassword")
	s.NoError(err)
	_, _, err = s.service.Login(s.ctx, "alice", "password123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestChangePasswordRequiresCurrentPassword() {
	user, _ := s.service.Register(s.ctx, "alice", "password123", "Alice")

	err := s.service.ChangePassword(s.ctx, user, "wrong", "newpassword")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestDeleteAccount() {
	_, _ = s.service.Register(s.ctx, "alice", "password123", "Alice")

	s.Require().NoError(s.service.DeleteAccount(s.ctx, "alice"))

	_, err := s.storage.GetUser(s.ctx, "alice")
	s.ErrorIs(err, model.ErrUserNotFound)

	s.ErrorIs(s.service.DeleteAccount(s.ctx, "alice"), model.ErrUserNotFound)
}
