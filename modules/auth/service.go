package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/example/taskboard/domain/user"
	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials is returned when login credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidEmail is returned when email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrWeakPassword is returned when password is too weak.
	ErrWeakPassword = errors.New("password must be at least 8 characters")
	// ErrPasswordTooLong is returned when password exceeds bcrypt's 72-byte limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters")
	// ErrInvalidRole is returned when registering with an unknown role.
	ErrInvalidRole = errors.New("unknown role")
)

// AuthService handles authentication business logic.
type AuthService struct {
	repo   *ActorRepository
	hasher *PasswordHasher
	jwt    *JWTManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *ActorRepository, hasher *PasswordHasher, jwt *JWTManager) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		jwt:    jwt,
	}
}

// Register creates a new actor account. An empty role defaults to member.
func (s *AuthService) Register(_ context.Context, email, password, displayName string, role user.Role, teamIDs []string) (*user.Actor, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}

	// Validate password length (bcrypt has 72-byte limit)
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}
	if len(password) > 72 {
		return nil, ErrPasswordTooLong
	}

	if role == "" {
		role = user.RoleMember
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	exists, err := s.repo.EmailExists(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, ErrActorExists
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	actor := &user.Actor{
		ID:           uuid.New().String(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		Role:         role,
		TeamIDs:      teamIDs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(actor); err != nil {
		return nil, fmt.Errorf("failed to create actor: %w", err)
	}

	return actor, nil
}

// Login authenticates an actor and returns tokens.
func (s *AuthService) Login(_ context.Context, email, password string) (*TokenPair, error) {
	actor, err := s.repo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrActorNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find actor: %w", err)
	}

	if !s.hasher.Verify(password, actor.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokenPair(actor)
}

// RefreshTokens generates new access and refresh tokens.
func (s *AuthService) RefreshTokens(_ context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	// Verify the actor still exists
	actor, err := s.repo.FindByID(claims.ActorID)
	if err != nil {
		if errors.Is(err, ErrActorNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find actor: %w", err)
	}

	return s.generateTokenPair(actor)
}

// ValidateToken validates an access token and returns identity claims.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*user.Claims, error) {
	claims, err := s.jwt.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}

	return &user.Claims{
		ActorID: claims.ActorID,
		Email:   claims.Email,
		Role:    claims.Role,
	}, nil
}

// GetActor retrieves an actor by ID.
func (s *AuthService) GetActor(_ context.Context, actorID string) (*user.Actor, error) {
	return s.repo.FindByID(actorID)
}

func (s *AuthService) generateTokenPair(actor *user.Actor) (*TokenPair, error) {
	accessToken, err := s.jwt.GenerateAccessToken(actor.ID, actor.Email, actor.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwt.GenerateRefreshToken(actor.ID, actor.Email, actor.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.jwt.AccessTokenDuration(),
		TokenType:    "Bearer",
	}, nil
}
