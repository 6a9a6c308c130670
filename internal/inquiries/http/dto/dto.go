// Package dto provides data transfer objects for inquiry HTTP handlers.
package dto

import (
	"time"

	inquiriesDomain "github.com/rmarques/marketgate/internal/inquiries/domain"
)

// UpdateInquiryRequest contains the patchable inquiry fields. Fields
// outside this set are ignored by JSON decoding, which is the update
// allow-list.
type UpdateInquiryRequest struct {
	Status      *string `json:"status"`
	Notes       *string `json:"notes"`
	OfferAmount *int64  `json:"offer_amount"`
	ReplyBody   *string `json:"reply_body"`
}

// ToInput converts the request to the domain input.
func (r *UpdateInquiryRequest) ToInput() *inquiriesDomain.UpdateInquiryInput {
	input := &inquiriesDomain.UpdateInquiryInput{
		Notes:       r.Notes,
		OfferAmount: r.OfferAmount,
		ReplyBody:   r.ReplyBody,
	}
	if r.Status != nil {
		status := inquiriesDomain.Status(*r.Status)
		input.Status = &status
	}
	return input
}

// InquiryResponse represents an inquiry in API responses.
type InquiryResponse struct {
	ID          string    `json:"id"`
	ListingID   string    `json:"listing_id"`
	SenderName  string    `json:"sender_name"`
	SenderEmail string    `json:"sender_email"`
	Message     string    `json:"message"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
	OfferAmount *int64    `json:"offer_amount,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MapInquiryToResponse converts a domain inquiry to an API response.
func MapInquiryToResponse(inquiry *inquiriesDomain.Inquiry) InquiryResponse {
	return InquiryResponse{
		ID:          inquiry.ID.String(),
		ListingID:   inquiry.ListingID.String(),
		SenderName:  inquiry.SenderName,
		SenderEmail: inquiry.SenderEmail,
		Message:     inquiry.Message,
		Status:      string(inquiry.Status),
		Notes:       inquiry.Notes,
		OfferAmount: inquiry.OfferAmount,
		CreatedAt:   inquiry.CreatedAt,
		UpdatedAt:   inquiry.UpdatedAt,
	}
}

// MapInquiriesToResponse converts a slice of domain inquiries.
func MapInquiriesToResponse(inquiries []*inquiriesDomain.Inquiry) []InquiryResponse {
	responses := make([]InquiryResponse, 0, len(inquiries))
	for _, inquiry := range inquiries {
		responses = append(responses, MapInquiryToResponse(inquiry))
	}
	return responses
}
