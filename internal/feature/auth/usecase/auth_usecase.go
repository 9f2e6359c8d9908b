package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"orgair_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength is the minimum accepted password length.
	minPasswordLength = 8

	// refreshTokenBytes is the entropy of a refresh token.
	refreshTokenBytes = 32
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer
// (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. Returns ErrEmailAlreadyExists when a
	// user with the same email exists.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a user by email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user by ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

// JWTGenerator abstracts access token issuance.
type JWTGenerator interface {
	GenerateToken(userID uuid.UUID, email string) (string, error)
}

// authUsecase implements signup, login and refresh-token rotation.
type authUsecase struct {
	users        UserRepository
	sessions     SessionRepository
	jwtGenerator JWTGenerator
	sessionTTL   time.Duration
}

// NewAuthUsecase creates a new authUsecase.
func NewAuthUsecase(users UserRepository, sessions SessionRepository, jwtGenerator JWTGenerator, sessionTTL time.Duration) *authUsecase {
	return &authUsecase{
		users:        users,
		sessions:     sessions,
		jwtGenerator: jwtGenerator,
		sessionTTL:   sessionTTL,
	}
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Signup registers a new user with a hashed password.
func (u *authUsecase) Signup(ctx context.Context, email, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user := &entity.User{ID: uuid.New(), Email: email, Password: string(hashed)}
	return u.users.Create(ctx, user)
}

// Login authenticates a user and returns an access token plus a
// refresh token backed by a stored session. A bcrypt comparison runs
// even when the user does not exist, to keep response timing uniform.
func (u *authUsecase) Login(ctx context.Context, email, password, userAgent, ipAddress string) (access, refresh string, err error) {
	user, findErr := u.users.FindByEmail(ctx, email)

	// Dummy hash keeps bcrypt.CompareHashAndPassword on the path even
	// for unknown users.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if findErr == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if findErr != nil || compareErr != nil {
		return "", "", ErrInvalidCredentials
	}

	access, err = u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate token: %w", err)
	}

	refresh, err = newRefreshToken()
	if err != nil {
		return "", "", err
	}
	session := &entity.Session{
		ID:        refresh,
		UserID:    user.ID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(u.sessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return "", "", err
	}

	return access, refresh, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		return "", err
	}
	if session.IsRevoked() {
		return "", ErrSessionRevoked
	}
	if session.IsExpired() {
		return "", ErrSessionExpired
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		return "", err
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Logout revokes the session behind a refresh token.
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	return u.sessions.Revoke(ctx, refreshToken)
}

// newRefreshToken returns a cryptographically random hex token.
func newRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
