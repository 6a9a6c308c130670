package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/rmarques/marketgate/internal/database"
	outboundDomain "github.com/rmarques/marketgate/internal/outbound/domain"
)

// dispatchKey is the singleflight key; there is only one queue.
const dispatchKey = "dispatch"

// DispatchConfig bounds one dispatcher invocation.
type DispatchConfig struct {
	// BatchSize caps how many pending messages one invocation claims.
	BatchSize int
	// DispatchTimeout is the hard ceiling for the whole invocation.
	DispatchTimeout time.Duration
	// DeliveryTimeout bounds a single delivery attempt.
	DeliveryTimeout time.Duration
	// RatePerSec paces delivery calls against the mail transport.
	RatePerSec float64
	// FromAddress and FromName identify the sender on outgoing mail.
	FromAddress string
	FromName    string
}

type dispatchUseCase struct {
	messageRepository MessageRepository
	mailer            Mailer
	txManager         database.TxManager
	config            DispatchConfig
	pacer             *rate.Limiter
	group             singleflight.Group
	logger            *slog.Logger
}

// NewDispatchUseCase creates a new dispatch use case with required dependencies.
func NewDispatchUseCase(
	messageRepository MessageRepository,
	mailer Mailer,
	txManager database.TxManager,
	config DispatchConfig,
	logger *slog.Logger,
) DispatchUseCase {
	return &dispatchUseCase{
		messageRepository: messageRepository,
		mailer:            mailer,
		txManager:         txManager,
		config:            config,
		pacer:             rate.NewLimiter(rate.Limit(config.RatePerSec), 1),
		logger:            logger,
	}
}

// Dispatch claims pending messages inside one transaction and delivers
// them oldest-first. Messages left unmarked when the run ceiling hits
// stay pending and are picked up by the next invocation. Overlapping
// calls share a single run through singleflight.
//
// Marks become durable only when the transaction commits. If a mark
// write fails mid-batch or the run is aborted, the rollback returns
// every claimed message to pending, including ones whose mail already
// left, and the next run sends them again. Delivery is therefore
// at-least-once; recipients of retried messages may see duplicates.
func (d *dispatchUseCase) Dispatch(ctx context.Context) (*outboundDomain.Result, error) {
	value, err, shared := d.group.Do(dispatchKey, func() (any, error) {
		return d.run(ctx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		d.logger.Debug("dispatch invocation coalesced with an in-flight run")
	}
	return value.(*outboundDomain.Result), nil
}

func (d *dispatchUseCase) run(ctx context.Context) (*outboundDomain.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, d.config.DispatchTimeout)
	defer cancel()

	result := &outboundDomain.Result{}
	started := time.Now().UTC()

	err := d.txManager.WithTx(ctx, func(ctx context.Context) error {
		messages, err := d.messageRepository.ClaimPending(ctx, d.config.BatchSize)
		if err != nil {
			return err
		}

		for _, message := range messages {
			// Stop at the run ceiling; unmarked claims roll back to pending.
			if err := d.pacer.Wait(ctx); err != nil {
				d.logger.Warn("dispatch run ceiling reached",
					"processed", result.Processed,
					"remaining", len(messages)-result.Processed,
				)
				break
			}

			now := time.Now().UTC()
			if deliveryErr := d.deliver(ctx, message); deliveryErr != nil {
				message.MarkFailed(now, deliveryErr.Error())
				result.Failed++
				result.Errors = append(result.Errors,
					fmt.Sprintf("%s: %s", message.ID, deliveryErr.Error()))
			} else {
				message.MarkSent(now)
				result.Sent++
			}
			result.Processed++

			if err := d.messageRepository.MarkResult(ctx, message); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.logger.Info("outbound dispatch finished",
		"processed", result.Processed,
		"sent", result.Sent,
		"failed", result.Failed,
		"duration", time.Since(started).String(),
	)
	return result, nil
}

// deliver sends one message with its own deadline. A panic inside the
// transport surfaces as a delivery error so the message still reaches a
// terminal state.
func (d *dispatchUseCase) deliver(ctx context.Context, message *outboundDomain.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during delivery: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, d.config.DeliveryTimeout)
	defer cancel()

	return d.mailer.Send(ctx, d.buildEmail(message))
}

// buildEmail renders the message into the transport payload, appending
// the optional listing reference and signature blocks.
func (d *dispatchUseCase) buildEmail(message *outboundDomain.Message) outboundDomain.Email {
	var body strings.Builder
	body.WriteString(message.Body)

	if message.IncludeListing && message.ListingID != nil {
		body.WriteString("\n\n--\nListing reference: ")
		body.WriteString(message.ListingID.String())
	}
	if message.IncludeSignature {
		body.WriteString("\n\nRegards,\n")
		body.WriteString(d.config.FromName)
	}

	return outboundDomain.Email{
		From:    fmt.Sprintf("%s <%s>", d.config.FromName, d.config.FromAddress),
		To:      message.Recipient,
		Subject: message.Subject,
		Text:    body.String(),
	}
}
