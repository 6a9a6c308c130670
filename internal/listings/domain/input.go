package domain

import "github.com/google/uuid"

// CreateListingInput carries the data needed to create a listing.
type CreateListingInput struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Price       int64             `json:"price"`
	Currency    string            `json:"currency"`
	Condition   Condition         `json:"condition"`
	Specs       map[string]string `json:"specs"`
	City        string            `json:"city"`
	Country     string            `json:"country"`
}

// UpdateListingInput carries the patchable listing fields. Nil means the
// field was absent from the request and stays unchanged.
type UpdateListingInput struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Price       *int64            `json:"price"`
	Currency    *string           `json:"currency"`
	Condition   *Condition        `json:"condition"`
	Specs       map[string]string `json:"specs"`
	City        *string           `json:"city"`
	Country     *string           `json:"country"`
	Status      *Status           `json:"status"`
}

// ListFilter selects a page of an account's listings.
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
