package crypto

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestValidateTokenValid(t *testing.T) {
	token, err := GenerateToken("ci-runner", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}
	if token == "" {
		t.Fatal("GenerateToken() returned empty string")
	}

	claims, err := ValidateToken(token, "test-secret")
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}
	if claims.Client() != "ci-runner" {
		t.Errorf("ValidateToken() client = %q, want %q", claims.Client(), "ci-runner")
	}
}

func TestValidateTokenInvalid(t *testing.T) {
	if _, err := ValidateToken("not-a-valid-token", "test-secret"); err != ErrInvalidToken {
		t.Errorf("ValidateToken() error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("ci-runner", "correct-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	if _, err := ValidateToken(token, "wrong-secret"); err == nil {
		t.Error("ValidateToken() expected error for wrong secret")
	}
}

func TestValidateTokenExpired(t *testing.T) {
	token, err := GenerateToken("ci-runner", "test-secret", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	if _, err := ValidateToken(token, "test-secret"); err == nil {
		t.Error("ValidateToken() expected error for expired token")
	}
}

func TestValidateTokenForeignClaims(t *testing.T) {
	secret := "test-secret"

	tests := []struct {
		name     string
		issuer   string
		audience string
	}{
		{name: "wrong issuer", issuer: "other-service", audience: tokenAudience},
		{name: "wrong audience", issuer: tokenIssuer, audience: "other-api"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := Claims{
				RegisteredClaims: jwt.RegisteredClaims{
					Issuer:    tt.issuer,
					Subject:   "ci-runner",
					Audience:  jwt.ClaimStrings{tt.audience},
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
					IssuedAt:  jwt.NewNumericDate(time.Now()),
				},
			}
			tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
			if err != nil {
				t.Fatalf("SignedString() unexpected error: %v", err)
			}

			if _, err := ValidateToken(tokenString, secret); err == nil {
				t.Errorf("ValidateToken() expected error for %s", tt.name)
			}
		})
	}
}
