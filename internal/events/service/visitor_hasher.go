package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// visitorHashLen is the number of hex characters kept from the digest.
const visitorHashLen = 16

// VisitorHasher derives a short pseudonymous visitor identifier from an
// IP address. The raw IP is never stored; the hash is salted with a
// value that rotates daily, so identifiers cannot be correlated across
// days.
type VisitorHasher struct {
	secret string
}

// NewVisitorHasher creates a visitor hasher keyed with the application
// tracking secret.
func NewVisitorHasher(secret string) *VisitorHasher {
	return &VisitorHasher{secret: secret}
}

// Hash returns the visitor identifier for the IP on the given day
// (DayFormat layout).
func (h *VisitorHasher) Hash(ip, day string) string {
	salt := h.dailySalt(day)
	sum := sha256.Sum256([]byte(salt + h.secret + ip))
	return hex.EncodeToString(sum[:])[:visitorHashLen]
}

// dailySalt derives the rotating salt for one calendar day.
func (h *VisitorHasher) dailySalt(day string) string {
	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write([]byte(day))
	return hex.EncodeToString(mac.Sum(nil))
}
