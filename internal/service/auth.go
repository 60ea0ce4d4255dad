package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/model"
)

var (
	ErrAPIKeyRequired = errors.New("api_key is required")
	ErrInvalidAPIKey  = errors.New("invalid api key")
	ErrAuthDisabled   = errors.New("token issuing is disabled")
)

// AuthService exchanges API keys for bearer tokens.
type AuthService struct {
	keyHash   *crypto.KeyHash
	client    string
	jwtSecret string
	jwtExpiry time.Duration
	now       func() time.Time
}

// NewAuthService creates a new AuthService. The key hash is parsed here; an
// empty or malformed hash leaves token issuing disabled rather than failing
// every request later.
func NewAuthService(keyHash, client, secret string, expiry time.Duration) *AuthService {
	s := &AuthService{
		client:    client,
		jwtSecret: secret,
		jwtExpiry: expiry,
		now:       time.Now,
	}

	if keyHash != "" {
		h, err := crypto.ParseKeyHash(keyHash)
		if err != nil {
			slog.Warn("API_KEY_HASH is malformed, token issuing disabled", "error", err)
		} else {
			s.keyHash = h
		}
	}

	return s
}

// Enabled reports whether a usable key hash was configured.
func (s *AuthService) Enabled() bool {
	return s.keyHash != nil
}

// IssueToken verifies the API key and returns a signed token.
func (s *AuthService) IssueToken(ctx context.Context, req model.TokenRequest) (model.TokenResponse, error) {
	if !s.Enabled() {
		return model.TokenResponse{}, ErrAuthDisabled
	}
	if req.APIKey == "" {
		return model.TokenResponse{}, ErrAPIKeyRequired
	}
	if err := ctx.Err(); err != nil {
		return model.TokenResponse{}, err
	}

	if !s.keyHash.Verify(req.APIKey) {
		return model.TokenResponse{}, ErrInvalidAPIKey
	}

	issuedAt := s.now()
	token, err := crypto.GenerateToken(s.client, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.TokenResponse{}, err
	}

	return model.TokenResponse{
		Token:     token,
		Client:    s.client,
		ExpiresAt: issuedAt.Add(s.jwtExpiry).UTC(),
	}, nil
}
