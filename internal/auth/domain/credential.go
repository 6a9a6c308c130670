package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Credential is an API key issued to an account. The plaintext key is
// shown exactly once at creation time; only its hash is stored, so a
// leaked database cannot be replayed against the API.
type Credential struct {
	ID         uuid.UUID  `json:"id"`
	AccountID  uuid.UUID  `json:"account_id"`
	Name       string     `json:"name"`
	KeyHash    string     `json:"-"`
	KeyPrefix  string     `json:"key_prefix"`
	Scopes     []Scope    `json:"scopes"`
	Active     bool       `json:"active"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NewCredential creates a credential for the given account. keyHash and
// keyPrefix come from the key service; the plaintext never reaches here.
func NewCredential(accountID uuid.UUID, name, keyHash, keyPrefix string, scopes []Scope, expiresAt *time.Time) *Credential {
	now := time.Now().UTC()
	return &Credential{
		ID:        uuid.Must(uuid.NewV7()),
		AccountID: accountID,
		Name:      name,
		KeyHash:   keyHash,
		KeyPrefix: keyPrefix,
		Scopes:    scopes,
		Active:    true,
		ExpiresAt: expiresAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasScope reports whether the credential grants the scope, either
// directly or through the wildcard.
func (c *Credential) HasScope(scope Scope) bool {
	if slices.Contains(c.Scopes, ScopeWildcard) {
		return true
	}
	return slices.Contains(c.Scopes, scope)
}

// Expired reports whether the credential's expiry, if set, has passed.
func (c *Credential) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// Identity is the authenticated caller attached to a request after the
// credential check succeeds.
type Identity struct {
	Credential *Credential
	Account    *Account
}
