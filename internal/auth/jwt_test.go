package auth

import (
	"testing"
	"time"

	"github.com/erazemk/milasset/internal/model"
)

var testUser = &model.User{
	ID:    "1",
	Name:  "General Smith",
	Email: "general.smith@military.gov",
	Role:  model.RoleAdmin,
}

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret-key"

	token, issued, err := GenerateToken(secret, testUser, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "1" {
		t.Errorf("expected uid 1, got %q", claims.UserID)
	}
	if claims.Email != testUser.Email {
		t.Errorf("expected email %q, got %q", testUser.Email, claims.Email)
	}
	if claims.Role != model.RoleAdmin {
		t.Errorf("expected role 'admin', got %q", claims.Role)
	}
	if claims.ID == "" || claims.ID != issued.ID {
		t.Errorf("expected JTI %q, got %q", issued.ID, claims.ID)
	}
}

func TestTokensGetDistinctJTIs(t *testing.T) {
	_, a, _ := GenerateToken("s", testUser, time.Hour)
	_, b, _ := GenerateToken("s", testUser, time.Hour)
	if a.ID == b.ID {
		t.Error("expected distinct JTIs")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, _, _ := GenerateToken("secret1", testUser, time.Hour)

	if _, err := ValidateToken("secret2", token); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	if _, err := ValidateToken("secret", "not-a-token"); err == nil {
		t.Error("expected error for invalid token")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	token, _, _ := GenerateToken("secret", testUser, -time.Minute)

	if _, err := ValidateToken("secret", token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestTokenExpiry(t *testing.T) {
	secret := "test"
	token, _, _ := GenerateToken(secret, testUser, 8*time.Hour)
	claims, _ := ValidateToken(secret, token)

	diff := time.Now().Add(8 * time.Hour).Sub(claims.ExpiresAt.Time)
	if diff < -5*time.Second || diff > 5*time.Second {
		t.Errorf("token expiry too far from expected: diff=%v", diff)
	}
}
