// Package domain defines the listing view event model.
//
// A view event is one pseudonymous visitor seeing one listing on one
// day. The (listing, visitor, day) triple is unique, so repeated views
// within a day never inflate the count.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// DayFormat is the calendar-day layout used for deduplication and salt
// rotation.
const DayFormat = "2006-01-02"

// ViewEvent is one deduplicated listing view.
type ViewEvent struct {
	ID          uuid.UUID `json:"id"`
	ListingID   uuid.UUID `json:"listing_id"`
	VisitorHash string    `json:"visitor_hash"`
	Day         string    `json:"day"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewViewEvent creates a view event for the given listing, visitor and day.
func NewViewEvent(listingID uuid.UUID, visitorHash, day string) *ViewEvent {
	return &ViewEvent{
		ID:          uuid.Must(uuid.NewV7()),
		ListingID:   listingID,
		VisitorHash: visitorHash,
		Day:         day,
		CreatedAt:   time.Now().UTC(),
	}
}
