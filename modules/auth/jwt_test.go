package auth

import (
	"testing"
	"time"

	"github.com/example/taskboard/domain/user"
)

func testJWTConfig() JWTConfig {
	return JWTConfig{
		SecretKey:            "test-secret-key",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 7 * 24 * time.Hour,
		Issuer:               "test-issuer",
	}
}

func TestJWTManager_GenerateAndValidateAccessToken(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	token, err := manager.GenerateAccessToken("actor-123", "test@example.com", user.RoleManager)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if token == "" {
		t.Error("GenerateAccessToken() returned empty token")
	}

	claims, err := manager.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}

	if claims.ActorID != "actor-123" {
		t.Errorf("claims.ActorID = %v, want actor-123", claims.ActorID)
	}
	if claims.Email != "test@example.com" {
		t.Errorf("claims.Email = %v, want test@example.com", claims.Email)
	}
	if claims.Role != user.RoleManager {
		t.Errorf("claims.Role = %v, want manager", claims.Role)
	}
	if claims.TokenType != "access" {
		t.Errorf("claims.TokenType = %v, want access", claims.TokenType)
	}
	if claims.Issuer != "test-issuer" {
		t.Errorf("claims.Issuer = %v, want test-issuer", claims.Issuer)
	}
}

func TestJWTManager_GenerateAndValidateRefreshToken(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	token, err := manager.GenerateRefreshToken("actor-456", "refresh@example.com", user.RoleMember)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	claims, err := manager.ValidateRefreshToken(token)
	if err != nil {
		t.Fatalf("ValidateRefreshToken() error = %v", err)
	}

	if claims.ActorID != "actor-456" {
		t.Errorf("claims.ActorID = %v, want actor-456", claims.ActorID)
	}
	if claims.TokenType != "refresh" {
		t.Errorf("claims.TokenType = %v, want refresh", claims.TokenType)
	}
}

func TestJWTManager_AccessTokenCannotBeUsedAsRefresh(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	accessToken, err := manager.GenerateAccessToken("actor-123", "test@example.com", user.RoleMember)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := manager.ValidateRefreshToken(accessToken); err == nil {
		t.Error("ValidateRefreshToken() should reject access token")
	}
}

func TestJWTManager_RejectsWrongSecret(t *testing.T) {
	manager := NewJWTManager(testJWTConfig())

	token, err := manager.GenerateAccessToken("actor-123", "test@example.com", user.RoleMember)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	other := testJWTConfig()
	other.SecretKey = "different-secret"
	if _, err := NewJWTManager(other).ValidateAccessToken(token); err == nil {
		t.Error("ValidateAccessToken() should reject token signed with another key")
	}
}

func TestJWTManager_RejectsExpiredToken(t *testing.T) {
	config := testJWTConfig()
	config.AccessTokenDuration = -time.Minute
	manager := NewJWTManager(config)

	token, err := manager.GenerateAccessToken("actor-123", "test@example.com", user.RoleMember)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	if _, err := manager.ValidateAccessToken(token); err == nil {
		t.Error("ValidateAccessToken() should reject expired token")
	}
}
