package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/taskboard/domain/user"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// AuthPort defines the interface for authentication operations.
// This is the port that other modules use to access auth functionality.
type AuthPort interface {
	ValidateToken(ctx context.Context, token string) (*user.Claims, error)
	GetActor(ctx context.Context, actorID string) (*user.Actor, error)
}

// AuthAdapter implements AuthPort using the service container.
type AuthAdapter struct {
	container mono.ServiceContainer
}

// NewAuthAdapter creates a new AuthAdapter.
func NewAuthAdapter(container mono.ServiceContainer) *AuthAdapter {
	return &AuthAdapter{
		container: container,
	}
}

// ValidateToken validates an access token and returns claims.
func (a *AuthAdapter) ValidateToken(ctx context.Context, token string) (*user.Claims, error) {
	req := ValidateTokenRequest{Token: token}
	var resp ValidateTokenResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"validate-token",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("validate-token request failed: %w", err)
	}

	if !resp.Valid {
		return nil, fmt.Errorf("token validation failed: %s", resp.Error)
	}

	return &user.Claims{
		ActorID: resp.ActorID,
		Email:   resp.Email,
		Role:    resp.Role,
	}, nil
}

// GetActor retrieves an actor by ID.
func (a *AuthAdapter) GetActor(ctx context.Context, actorID string) (*user.Actor, error) {
	req := GetActorRequest{ActorID: actorID}
	var resp GetActorResponse

	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"get-actor",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, fmt.Errorf("get-actor request failed: %w", err)
	}

	return &user.Actor{
		ID:          resp.ID,
		Email:       resp.Email,
		DisplayName: resp.DisplayName,
		Role:        resp.Role,
		TeamIDs:     resp.TeamIDs,
		CreatedAt:   resp.CreatedAt,
	}, nil
}
