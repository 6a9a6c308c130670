// Package mailer implements the outbound mail transport.
package mailer

import (
	"context"

	"github.com/mailgun/mailgun-go/v4"

	apperrors "github.com/rmarques/marketgate/internal/errors"
	outboundDomain "github.com/rmarques/marketgate/internal/outbound/domain"
)

// MailgunMailer delivers email through the Mailgun HTTP API.
type MailgunMailer struct {
	client *mailgun.MailgunImpl
}

// NewMailgunMailer creates a Mailgun-backed mailer for the given sending
// domain and private API key.
func NewMailgunMailer(domain, apiKey string) *MailgunMailer {
	return &MailgunMailer{
		client: mailgun.NewMailgun(domain, apiKey),
	}
}

// Send delivers one email, honoring the context deadline.
func (m *MailgunMailer) Send(ctx context.Context, email outboundDomain.Email) error {
	message := m.client.NewMessage(email.From, email.Subject, email.Text, email.To)

	if _, _, err := m.client.Send(ctx, message); err != nil {
		return apperrors.Wrap(err, "failed to send email via mailgun")
	}
	return nil
}
