package domain

import (
	"time"

	"github.com/google/uuid"
)

// CreateAccountInput carries the data needed to create a seller account.
type CreateAccountInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Plan  Plan   `json:"plan"`
}

// CreateCredentialInput carries the data needed to issue an API key.
type CreateCredentialInput struct {
	AccountID uuid.UUID  `json:"account_id"`
	Name      string     `json:"name"`
	Scopes    []Scope    `json:"scopes"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// CreateCredentialOutput is the one-time response to credential creation.
// PlainKey is never stored and never shown again.
type CreateCredentialOutput struct {
	Credential *Credential `json:"credential"`
	PlainKey   string      `json:"plain_key"`
}
