// Package dto provides data transfer objects for listing HTTP handlers.
package dto

import (
	validation "github.com/jellydator/validation"

	listingsDomain "github.com/rmarques/marketgate/internal/listings/domain"
	customValidation "github.com/rmarques/marketgate/internal/validation"
)

// Location groups the geographic fields of a listing.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// CreateListingRequest contains the parameters for creating a listing.
// Price is in minor units (cents).
type CreateListingRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Price       int64             `json:"price"`
	Currency    string            `json:"currency"`
	Condition   string            `json:"condition"`
	Specs       map[string]string `json:"specs"`
	Location    Location          `json:"location"`
}

// Validate checks if the create listing request is valid.
func (r *CreateListingRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Price,
			validation.Required,
			validation.Min(1),
		),
		validation.Field(&r.Currency,
			validation.Required,
			customValidation.CurrencyCode,
		),
		validation.Field(&r.Condition,
			validation.Required,
		),
	)
}

// ToInput converts the request to the domain input.
func (r *CreateListingRequest) ToInput() *listingsDomain.CreateListingInput {
	return &listingsDomain.CreateListingInput{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Currency:    r.Currency,
		Condition:   listingsDomain.Condition(r.Condition),
		Specs:       r.Specs,
		City:        r.Location.City,
		Country:     r.Location.Country,
	}
}

// UpdateListingRequest contains the patchable listing fields. Nil means
// the field was absent and stays unchanged; fields outside this set are
// ignored by JSON decoding, which is the update allow-list.
type UpdateListingRequest struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Price       *int64            `json:"price"`
	Currency    *string           `json:"currency"`
	Condition   *string           `json:"condition"`
	Specs       map[string]string `json:"specs"`
	Location    *Location         `json:"location"`
	Status      *string           `json:"status"`
}

// ToInput converts the request to the domain input.
func (r *UpdateListingRequest) ToInput() *listingsDomain.UpdateListingInput {
	input := &listingsDomain.UpdateListingInput{
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Currency:    r.Currency,
		Specs:       r.Specs,
	}
	if r.Condition != nil {
		condition := listingsDomain.Condition(*r.Condition)
		input.Condition = &condition
	}
	if r.Status != nil {
		status := listingsDomain.Status(*r.Status)
		input.Status = &status
	}
	if r.Location != nil {
		input.City = &r.Location.City
		input.Country = &r.Location.Country
	}
	return input
}
