// Package domain defines the inquiry domain model.
//
// An inquiry is a buyer message attached to one of an account's listings.
// It is created by the marketplace's public surface; the API only reads
// and annotates it.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status tracks how far the seller has taken an inquiry.
type Status string

const (
	StatusNew      Status = "new"
	StatusRead     Status = "read"
	StatusReplied  Status = "replied"
	StatusArchived Status = "archived"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusRead, StatusReplied, StatusArchived:
		return true
	}
	return false
}

// Inquiry is a buyer's message about a listing. OfferAmount is in minor
// units (cents) and nil when the buyer made no offer.
type Inquiry struct {
	ID          uuid.UUID `json:"id"`
	AccountID   uuid.UUID `json:"account_id"`
	ListingID   uuid.UUID `json:"listing_id"`
	SenderName  string    `json:"sender_name"`
	SenderEmail string    `json:"sender_email"`
	Message     string    `json:"message"`
	Status      Status    `json:"status"`
	Notes       string    `json:"notes"`
	OfferAmount *int64    `json:"offer_amount,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpdateInquiryInput carries the patchable inquiry fields. The allow-list
// is narrow: sellers annotate inquiries, they don't rewrite them.
// ReplyBody is the supplemental auto-reply text; when present together
// with a move to StatusReplied, an outbound message is enqueued.
type UpdateInquiryInput struct {
	Status      *Status `json:"status"`
	Notes       *string `json:"notes"`
	OfferAmount *int64  `json:"offer_amount"`
	ReplyBody   *string `json:"reply_body"`
}

// Apply copies the fields present in the update input onto the inquiry.
func (i *Inquiry) Apply(input *UpdateInquiryInput, now time.Time) {
	if input.Status != nil {
		i.Status = *input.Status
	}
	if input.Notes != nil {
		i.Notes = *input.Notes
	}
	if input.OfferAmount != nil {
		i.OfferAmount = input.OfferAmount
	}
	i.UpdatedAt = now
}

// ListFilter selects a page of an account's inquiries.
type ListFilter struct {
	AccountID uuid.UUID
	Status    *Status
	Page      int
	Limit     int
}

// Offset returns the row offset for the filter's page.
func (f ListFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}
