// Package domain defines the outbound message queue domain model.
//
// Messages are persisted in pending state and drained by the scheduled
// dispatcher. A message reaches exactly one terminal state (sent or
// failed) and is never revisited by the dispatcher afterwards.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status is an outbound message's queue state.
type Status string

const (
	StatusPending Status = "pending"
	StatusSent    Status = "sent"
	StatusFailed  Status = "failed"
)

// Message is one queued outbound email. The flags control which optional
// blocks the payload builder appends to the body.
type Message struct {
	ID               uuid.UUID  `json:"id"`
	AccountID        uuid.UUID  `json:"account_id"`
	ListingID        *uuid.UUID `json:"listing_id,omitempty"`
	Recipient        string     `json:"recipient"`
	Subject          string     `json:"subject"`
	Body             string     `json:"body"`
	IncludeListing   bool       `json:"include_listing"`
	IncludeSignature bool       `json:"include_signature"`
	Status           Status     `json:"status"`
	LastError        *string    `json:"last_error,omitempty"`
	AttemptedAt      *time.Time `json:"attempted_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// NewMessage creates a pending outbound message.
func NewMessage(accountID uuid.UUID, listingID *uuid.UUID, recipient, subject, body string) *Message {
	return &Message{
		ID:        uuid.Must(uuid.NewV7()),
		AccountID: accountID,
		ListingID: listingID,
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}

// MarkSent moves the message to its sent terminal state.
func (m *Message) MarkSent(at time.Time) {
	m.Status = StatusSent
	m.LastError = nil
	m.AttemptedAt = &at
}

// MarkFailed moves the message to its failed terminal state with the
// captured delivery error.
func (m *Message) MarkFailed(at time.Time, deliveryErr string) {
	m.Status = StatusFailed
	m.LastError = &deliveryErr
	m.AttemptedAt = &at
}

// Result aggregates one dispatcher invocation for observability.
type Result struct {
	Processed int      `json:"processed"`
	Sent      int      `json:"sent"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}
