package model

import "time"

// TokenRequest exchanges an API key for a bearer token.
type TokenRequest struct {
	APIKey string `json:"api_key"`
}

// TokenResponse represents an issued bearer token.
type TokenResponse struct {
	Token     string    `json:"token"`
	Client    string    `json:"client"`
	ExpiresAt time.Time `json:"expires_at"`
}
