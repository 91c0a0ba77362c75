package internal

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

type APIKeyStatus int

const (
	APIKeyUnknown APIKeyStatus = iota
	APIKeyActive
	APIKeyRevoked
	APIKeyExpired
)

func (s APIKeyStatus) String() string {
	switch s {
	case APIKeyActive:
		return "active"
	case APIKeyRevoked:
		return "revoked"
	case APIKeyExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// APIKey is a stored client key. Only the digest of the raw key is kept.
type APIKey struct {
	Hash      string
	Active    bool
	ExpiresAt *time.Time
}

// StatusAt reports the state of k at now. A revoked key stays revoked after it expires.
func (k *APIKey) StatusAt(now time.Time) APIKeyStatus {
	switch {
	case k == nil:
		return APIKeyUnknown
	case !k.Active:
		return APIKeyRevoked
	case k.ExpiresAt != nil && !now.Before(*k.ExpiresAt):
		return APIKeyExpired
	default:
		return APIKeyActive
	}
}

// APIKeyRepository returns a nil key and no error when hash is not stored.
type APIKeyRepository interface {
	FindByHash(ctx context.Context, hash string) (*APIKey, error)
}

// APIKeyChecker resolves raw keys presented by clients to their stored status.
type APIKeyChecker struct {
	repo        APIKeyRepository
	encodingKey string
	now         func() time.Time
}

// NewAPIKeyChecker looks keys up by their HMAC-SHA256 digest under encodingKey.
// A nil now uses the wall clock.
func NewAPIKeyChecker(repo APIKeyRepository, encodingKey string, now func() time.Time) *APIKeyChecker {
	if now == nil {
		now = time.Now
	}
	return &APIKeyChecker{
		repo:        repo,
		encodingKey: strings.TrimSpace(encodingKey),
		now:         now,
	}
}

func (c *APIKeyChecker) Check(ctx context.Context, rawKey string) (APIKeyStatus, error) {
	rawKey = strings.TrimSpace(rawKey)
	if rawKey == "" {
		return APIKeyUnknown, nil
	}

	key, err := c.repo.FindByHash(ctx, HashAPIKey(rawKey, c.encodingKey))
	if err != nil {
		return APIKeyUnknown, fmt.Errorf("find api key: %w", err)
	}
	return key.StatusAt(c.now()), nil
}

func HashAPIKey(rawKey, encodingKey string) string {
	mac := hmac.New(sha256.New, []byte(encodingKey))
	_, _ = mac.Write([]byte(rawKey))
	return hex.EncodeToString(mac.Sum(nil))
}
