// Package domain defines the listing domain model.
//
// A listing is a marketplace item owned by exactly one account. Sold and
// deleted listings are terminal: they stop counting against the plan
// quota and never leave their state.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status is a listing's lifecycle state.
type Status string

const (
	StatusActive  Status = "active"
	StatusPaused  Status = "paused"
	StatusSold    Status = "sold"
	StatusDeleted Status = "deleted"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusSold, StatusDeleted:
		return true
	}
	return false
}

// Terminal reports whether the status ends the listing's lifecycle.
// Terminal listings are excluded from the plan quota.
func (s Status) Terminal() bool {
	return s == StatusSold || s == StatusDeleted
}

// Patchable reports whether a client may move a listing into this status
// through the update endpoint. Deletion goes through the delete endpoint
// so it also stamps deleted_at.
func (s Status) Patchable() bool {
	return s == StatusActive || s == StatusPaused || s == StatusSold
}

// Condition describes the physical state of the item for sale.
type Condition string

const (
	ConditionNew     Condition = "new"
	ConditionLikeNew Condition = "like_new"
	ConditionGood    Condition = "good"
	ConditionFair    Condition = "fair"
	ConditionPoor    Condition = "poor"
)

// Valid reports whether c is a known condition.
func (c Condition) Valid() bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor:
		return true
	}
	return false
}

// Listing is a marketplace item. Price is in minor units (cents).
type Listing struct {
	ID          uuid.UUID         `json:"id"`
	AccountID   uuid.UUID         `json:"account_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Price       int64             `json:"price"`
	Currency    string            `json:"currency"`
	Condition   Condition         `json:"condition"`
	Specs       map[string]string `json:"specs"`
	City        string            `json:"city"`
	Country     string            `json:"country"`
	Status      Status            `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   *time.Time        `json:"deleted_at,omitempty"`
}

// NewListing creates an active listing for the given account.
func NewListing(accountID uuid.UUID, input *CreateListingInput) *Listing {
	now := time.Now().UTC()
	return &Listing{
		ID:          uuid.Must(uuid.NewV7()),
		AccountID:   accountID,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Currency:    input.Currency,
		Condition:   input.Condition,
		Specs:       input.Specs,
		City:        input.City,
		Country:     input.Country,
		Status:      StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Apply copies the fields present in the update input onto the listing.
// Absent fields are left untouched; the update endpoint's allow-list is
// enforced by the input type itself carrying only patchable fields.
func (l *Listing) Apply(input *UpdateListingInput, now time.Time) {
	if input.Title != nil {
		l.Title = *input.Title
	}
	if input.Description != nil {
		l.Description = *input.Description
	}
	if input.Price != nil {
		l.Price = *input.Price
	}
	if input.Currency != nil {
		l.Currency = *input.Currency
	}
	if input.Condition != nil {
		l.Condition = *input.Condition
	}
	if input.Specs != nil {
		l.Specs = input.Specs
	}
	if input.City != nil {
		l.City = *input.City
	}
	if input.Country != nil {
		l.Country = *input.Country
	}
	if input.Status != nil {
		l.Status = *input.Status
	}
	l.UpdatedAt = now
}
