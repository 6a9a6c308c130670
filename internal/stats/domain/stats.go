// Package domain defines the account statistics model.
package domain

import (
	"time"

	apperrors "github.com/rmarques/marketgate/internal/errors"
)

// Period is a reporting window for account statistics.
type Period string

const (
	Period7Days   Period = "7d"
	Period30Days  Period = "30d"
	Period90Days  Period = "90d"
	Period12Month Period = "12m"
)

// ErrInvalidPeriod is returned for an unknown period token.
var ErrInvalidPeriod = apperrors.Wrap(apperrors.ErrInvalidInput, "invalid stats period")

// Valid reports whether p is a known period.
func (p Period) Valid() bool {
	switch p {
	case Period7Days, Period30Days, Period90Days, Period12Month:
		return true
	}
	return false
}

// Since returns the inclusive start of the period ending now.
func (p Period) Since(now time.Time) time.Time {
	switch p {
	case Period7Days:
		return now.AddDate(0, 0, -7)
	case Period30Days:
		return now.AddDate(0, 0, -30)
	case Period90Days:
		return now.AddDate(0, 0, -90)
	case Period12Month:
		return now.AddDate(-1, 0, 0)
	default:
		return now
	}
}

// ListingCounts breaks down the account's current listings by status.
// Total excludes soft-deleted rows.
type ListingCounts struct {
	Active int64 `json:"active"`
	Paused int64 `json:"paused"`
	Sold   int64 `json:"sold"`
	Total  int64 `json:"total"`
}

// Stats is the aggregate report for one account over one period.
// Listing counts reflect current state; views and inquiries are scoped
// to the period.
type Stats struct {
	Period            Period           `json:"period"`
	Listings          ListingCounts    `json:"listings"`
	Views             int64            `json:"views"`
	Inquiries         int64            `json:"inquiries"`
	InquiriesByStatus map[string]int64 `json:"inquiries_by_status"`
}
