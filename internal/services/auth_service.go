package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schoolboard/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method Create inserts a new user and sets its generated ID.
	Create(ctx context.Context, user *models.User) error
	// Method GetByUsername retrieves a user by username.
	//
	// If no such user exists, models.ErrNotFound is returned together with "nil" value.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Method GetByID retrieves a user by ID.
	//
	// If no such user exists, models.ErrNotFound is returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Method ExistsByUsername checks if a user with such username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// SessionRepository is the interface that wraps methods for Session table data access
type SessionRepository interface {
	// Method Create inserts a new session.
	Create(ctx context.Context, session *models.Session) error
	// Method GetByToken retrieves a session by its opaque token.
	//
	// If no such session exists, models.ErrNotFound is returned together with "nil" value.
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	// Method DeleteByToken deletes a session by token. Unknown tokens are not an error.
	DeleteByToken(ctx context.Context, token string) error
	// Method DeleteExpired deletes sessions expired at or before the given time
	// and returns how many were removed.
	DeleteExpired(ctx context.Context, before time.Time) (int, error)
}

// authService implements registration, login and session resolution
type authService struct {
	userRepo    UserRepository
	sessionRepo SessionRepository
	sessionTTL  time.Duration
	logger      *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo UserRepository, sessionRepo SessionRepository, sessionTTL time.Duration, logger *zap.Logger) *authService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

// Register creates a new user account with a bcrypt-hashed password.
// bcrypt embeds a random salt per hash, so identical passwords never
// produce identical stored hashes.
func (s *authService) Register(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	if username == "" || password == "" {
		return fmt.Errorf("username and password are required: %w", models.ErrValidation)
	}

	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return models.ErrDuplicateUsername
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(passwordHash),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	s.logger.Info("user registered", zap.Int("userId", user.ID))
	return nil
}

// Login authenticates a user and establishes a new session, returning the
// user and the opaque session token. Unknown usernames and wrong passwords
// both fail with models.ErrInvalidCredentials so the response cannot be
// used to enumerate usernames.
func (s *authService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	if username == "" || password == "" {
		return nil, "", fmt.Errorf("username and password are required: %w", models.ErrValidation)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, "", models.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", models.ErrInvalidCredentials
	}

	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(s.sessionTTL),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	return user, session.Token, nil
}

// Logout invalidates the session behind the token; idempotent
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.DeleteByToken(ctx, token)
}

// CurrentIdentity resolves a session token to the caller's identity.
// The user row is fetched on every call so role changes take effect
// immediately. Absent, unknown or expired tokens resolve to (nil, nil).
func (s *authService) CurrentIdentity(ctx context.Context, token string) (*models.Identity, error) {
	if token == "" {
		return nil, nil
	}

	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if session.Expired(time.Now().UTC()) {
		if err := s.sessionRepo.DeleteByToken(ctx, token); err != nil {
			s.logger.Warn("failed to delete expired session", zap.Error(err))
		}
		return nil, nil
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			// Account deleted out from under a live session
			return nil, nil
		}
		return nil, err
	}

	return &models.Identity{
		ID:       user.ID,
		Username: user.Username,
		IsAdmin:  user.IsAdmin,
	}, nil
}
