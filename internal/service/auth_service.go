package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"portfolio/internal/auth"
	apperrors "portfolio/internal/errors"
	"portfolio/internal/model"
	"portfolio/internal/repository"
)

// AuthEvents receives authentication outcomes, typically a metrics collector.
type AuthEvents interface {
	SignupCompleted()
	SigninAttempted(ok bool)
}

type noopAuthEvents struct{}

func (noopAuthEvents) SignupCompleted()     {}
func (noopAuthEvents) SigninAttempted(bool) {}

// SigninResult is returned on successful authentication.
type SigninResult struct {
	Token string
	// ExpiresAt is zero for non-expiring tokens.
	ExpiresAt time.Time
	User      *model.User
}

// AuthService handles authentication operations.
type AuthService interface {
	Signup(ctx context.Context, in NewUser) (*model.User, error)
	Signin(ctx context.Context, username, password string) (*SigninResult, error)
	VerifyToken(ctx context.Context, token string) (*auth.Claims, error)
	Signout(ctx context.Context, token string) error
}

type authService struct {
	userRepo   repository.UserRepository
	users      UserService
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	events     AuthEvents
}

// NewAuthService creates a new authentication service. events may be nil.
func NewAuthService(userRepo repository.UserRepository, users UserService, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface, events AuthEvents) AuthService {
	if events == nil {
		events = noopAuthEvents{}
	}
	return &authService{
		userRepo:   userRepo,
		users:      users,
		jwtService: jwtService,
		tokenStore: tokenStore,
		events:     events,
	}
}

// Signup registers a user. It shares validation and uniqueness rules with UserService.CreateUser.
func (s *authService) Signup(ctx context.Context, in NewUser) (*model.User, error) {
	user, err := s.users.CreateUser(ctx, in)
	if err != nil {
		return nil, err
	}
	s.events.SignupCompleted()
	return user, nil
}

// Signin authenticates by username and password. An unknown username and a
// wrong password produce the same error.
func (s *authService) Signin(ctx context.Context, username, password string) (*SigninResult, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.MissingField("username")
	}
	if password == "" {
		return nil, apperrors.MissingField("password")
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.events.SigninAttempted(false)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		s.events.SigninAttempted(false)
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("record last login: %w", err)
	}

	s.events.SigninAttempted(true)
	return &SigninResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// VerifyToken validates the signature and claims and rejects revoked tokens.
func (s *authService) VerifyToken(ctx context.Context, token string) (*auth.Claims, error) {
	if token == "" {
		return nil, apperrors.ErrMissingToken
	}

	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if claims.ID != "" {
		revoked, err := s.tokenStore.IsTokenRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return nil, apperrors.ErrInvalidToken
		}
	}
	return claims, nil
}

// Signout revokes the token until it would have expired.
func (s *authService) Signout(ctx context.Context, token string) error {
	claims, err := s.VerifyToken(ctx, token)
	if err != nil {
		return err
	}
	if claims.ID == "" {
		return nil
	}

	var ttl time.Duration
	if exp := claims.ExpiresAtTime(); exp != nil {
		ttl = time.Until(*exp)
		if ttl <= 0 {
			return nil
		}
	}
	return s.tokenStore.RevokeToken(ctx, claims.ID, ttl)
}
