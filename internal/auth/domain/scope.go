// Package domain defines authentication and authorization domain models.
// Machine clients authenticate with prefixed API keys stored as one-way
// hashes; authorization is a closed set of resource:action scope tokens.
package domain

import "slices"

// Scope is a permission token of the form "{resource}:{action}"
// (e.g., "listings:write"), or the wildcard granting everything.
type Scope string

const (
	// ScopeWildcard grants every scope.
	ScopeWildcard Scope = "*"

	// ScopeListingsRead allows reading the account's listings.
	ScopeListingsRead Scope = "listings:read"

	// ScopeListingsWrite allows creating, updating, and deleting listings.
	ScopeListingsWrite Scope = "listings:write"

	// ScopeInquiriesRead allows reading the account's inquiries.
	ScopeInquiriesRead Scope = "inquiries:read"

	// ScopeInquiriesWrite allows updating inquiries.
	ScopeInquiriesWrite Scope = "inquiries:write"

	// ScopeStatsRead allows reading the account's aggregate statistics.
	ScopeStatsRead Scope = "stats:read"
)

// AllScopes lists every grantable scope token excluding the wildcard.
var AllScopes = []Scope{
	ScopeListingsRead,
	ScopeListingsWrite,
	ScopeInquiriesRead,
	ScopeInquiriesWrite,
	ScopeStatsRead,
}

// Valid reports whether s is a known scope token or the wildcard.
func (s Scope) Valid() bool {
	return s == ScopeWildcard || slices.Contains(AllScopes, s)
}
