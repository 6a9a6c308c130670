// Package usecase implements business logic orchestration for inquiry operations.
package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rmarques/marketgate/internal/database"
	inquiriesDomain "github.com/rmarques/marketgate/internal/inquiries/domain"
	outboundDomain "github.com/rmarques/marketgate/internal/outbound/domain"
	"github.com/rmarques/marketgate/internal/validation"

	v "github.com/jellydator/validation"
)

// inquiryUseCase implements InquiryUseCase.
type inquiryUseCase struct {
	inquiryRepo InquiryRepository
	enqueuer    OutboundEnqueuer
	txManager   database.TxManager
}

// List returns one page of the account's inquiries with the total count.
func (i *inquiryUseCase) List(
	ctx context.Context,
	filter inquiriesDomain.ListFilter,
) ([]*inquiriesDomain.Inquiry, int64, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, 0, inquiriesDomain.ErrInvalidStatus
	}
	return i.inquiryRepo.List(ctx, filter)
}

// Get retrieves one of the account's inquiries.
func (i *inquiryUseCase) Get(
	ctx context.Context,
	inquiryID, accountID uuid.UUID,
) (*inquiriesDomain.Inquiry, error) {
	return i.inquiryRepo.Get(ctx, inquiryID, accountID)
}

// Update applies the patchable fields to one of the account's inquiries.
//
// Moving an inquiry to replied with a reply_body enqueues the reply
// email for the dispatcher; the status change and the enqueue commit in
// one transaction, so a reply is never recorded without its queued mail
// or vice versa.
func (i *inquiryUseCase) Update(
	ctx context.Context,
	inquiryID, accountID uuid.UUID,
	input *inquiriesDomain.UpdateInquiryInput,
) (*inquiriesDomain.Inquiry, error) {
	if err := validateUpdateInput(input); err != nil {
		return nil, err
	}

	inquiry, err := i.inquiryRepo.Get(ctx, inquiryID, accountID)
	if err != nil {
		return nil, err
	}

	wasReplied := inquiry.Status == inquiriesDomain.StatusReplied
	inquiry.Apply(input, time.Now().UTC())

	sendReply := input.ReplyBody != nil && !wasReplied &&
		inquiry.Status == inquiriesDomain.StatusReplied

	err = i.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := i.inquiryRepo.Update(ctx, inquiry); err != nil {
			return err
		}
		if sendReply {
			message := outboundDomain.NewMessage(
				accountID,
				&inquiry.ListingID,
				inquiry.SenderEmail,
				fmt.Sprintf("Re: your inquiry about listing %s", inquiry.ListingID),
				*input.ReplyBody,
			)
			message.IncludeListing = true
			message.IncludeSignature = true
			return i.enqueuer.Enqueue(ctx, message)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return inquiry, nil
}

// validateUpdateInput checks whichever patchable fields are present.
func validateUpdateInput(input *inquiriesDomain.UpdateInquiryInput) error {
	if input.Status != nil && !input.Status.Valid() {
		return inquiriesDomain.ErrInvalidStatus
	}
	if input.OfferAmount != nil && *input.OfferAmount < 0 {
		return validation.WrapValidationError(
			v.NewError("validation_min", "offer_amount must not be negative"))
	}
	if input.Notes != nil {
		if err := v.Validate(*input.Notes, v.Length(0, 10000)); err != nil {
			return validation.WrapValidationError(err)
		}
	}
	if input.ReplyBody != nil {
		if err := v.Validate(*input.ReplyBody, validation.NotBlank, v.Length(1, 10000)); err != nil {
			return validation.WrapValidationError(err)
		}
	}
	return nil
}

// NewInquiryUseCase creates a new InquiryUseCase with the provided dependencies.
func NewInquiryUseCase(
	inquiryRepo InquiryRepository,
	enqueuer OutboundEnqueuer,
	txManager database.TxManager,
) InquiryUseCase {
	return &inquiryUseCase{
		inquiryRepo: inquiryRepo,
		enqueuer:    enqueuer,
		txManager:   txManager,
	}
}
