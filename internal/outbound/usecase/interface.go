// Package usecase defines business logic interfaces for outbound dispatch.
package usecase

import (
	"context"

	outboundDomain "github.com/rmarques/marketgate/internal/outbound/domain"
)

// MessageRepository defines data access operations for the outbound queue.
type MessageRepository interface {
	// Enqueue inserts a new pending message.
	Enqueue(ctx context.Context, message *outboundDomain.Message) error

	// ClaimPending selects up to limit pending messages oldest-first and
	// locks them for the calling transaction. Rows locked by a concurrent
	// invocation are skipped, not waited on.
	ClaimPending(ctx context.Context, limit int) ([]*outboundDomain.Message, error)

	// MarkResult persists the message's terminal status, error and
	// attempt timestamp.
	MarkResult(ctx context.Context, message *outboundDomain.Message) error
}

// Mailer delivers one rendered email. Implementations must honor the
// context deadline.
type Mailer interface {
	Send(ctx context.Context, email outboundDomain.Email) error
}

// DispatchUseCase drains the pending outbound queue.
type DispatchUseCase interface {
	// Dispatch claims and delivers pending messages, marking each one
	// terminally. Overlapping invocations in the same process collapse
	// into a single run.
	Dispatch(ctx context.Context) (*outboundDomain.Result, error)
}
