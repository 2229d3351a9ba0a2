// Package auth issues and verifies fernet session tokens. A token carries
// only the owning user's ID; everything else is looked up per request.
package auth

import (
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
)

// TokenManager mints and verifies session tokens.
type TokenManager struct {
	key *fernet.Key
	ttl time.Duration
}

// NewTokenManager creates a TokenManager from a base64-encoded fernet key.
func NewTokenManager(encodedKey string, ttl time.Duration) (*TokenManager, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session key: %w", err)
	}
	return &TokenManager{key: key, ttl: ttl}, nil
}

// Mint creates a session token for the given user ID.
func (m *TokenManager) Mint(userID string) (string, error) {
	token, err := fernet.EncryptAndSign([]byte(userID), m.key)
	if err != nil {
		return "", fmt.Errorf("failed to mint session token: %w", err)
	}
	return string(token), nil
}

// Verify checks a session token and returns the user ID it was minted for.
// Returns false when the token is malformed, forged or older than the TTL.
func (m *TokenManager) Verify(token string) (string, bool) {
	payload := fernet.VerifyAndDecrypt([]byte(token), m.ttl, []*fernet.Key{m.key})
	if payload == nil {
		return "", false
	}
	return string(payload), true
}

// GenerateKey produces a fresh base64-encoded fernet key, for provisioning.
func GenerateKey() (string, error) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		return "", fmt.Errorf("failed to generate session key: %w", err)
	}
	return key.Encode(), nil
}
