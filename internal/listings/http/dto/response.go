package dto

import (
	"time"

	listingsDomain "github.com/rmarques/marketgate/internal/listings/domain"
)

// ListingResponse represents a listing in API responses.
type ListingResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Price       int64             `json:"price"`
	Currency    string            `json:"currency"`
	Condition   string            `json:"condition"`
	Specs       map[string]string `json:"specs"`
	Location    Location          `json:"location"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// MapListingToResponse converts a domain listing to an API response.
func MapListingToResponse(listing *listingsDomain.Listing) ListingResponse {
	return ListingResponse{
		ID:          listing.ID.String(),
		Title:       listing.Title,
		Description: listing.Description,
		Price:       listing.Price,
		Currency:    listing.Currency,
		Condition:   string(listing.Condition),
		Specs:       listing.Specs,
		Location: Location{
			City:    listing.City,
			Country: listing.Country,
		},
		Status:    string(listing.Status),
		CreatedAt: listing.CreatedAt,
		UpdatedAt: listing.UpdatedAt,
	}
}

// MapListingsToResponse converts a slice of domain listings.
func MapListingsToResponse(listings []*listingsDomain.Listing) []ListingResponse {
	responses := make([]ListingResponse, 0, len(listings))
	for _, listing := range listings {
		responses = append(responses, MapListingToResponse(listing))
	}
	return responses
}
