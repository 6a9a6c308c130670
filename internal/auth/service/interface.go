// Package service provides technical services for API key handling.
//
// Keys are random, prefixed, and stored only as SHA-256 hashes: the hash
// is deterministic so a request's key can be resolved with a single
// indexed lookup, and the key itself carries enough entropy that a fast
// hash is safe.
package service

// KeyService defines operations for API key generation and hashing.
type KeyService interface {
	// GenerateKey creates a new cryptographically secure random API key.
	// Returns the plain key (shown to the caller exactly once), its hash
	// (stored in the database), and its display prefix.
	GenerateKey() (plainKey string, keyHash string, keyPrefix string, error error)

	// HashKey hashes a plain API key using SHA-256.
	// Used on every request to resolve the presented key to a credential.
	HashKey(plainKey string) string

	// ValidShape reports whether a presented key has the expected prefix
	// and length. Malformed keys are rejected before any database work.
	ValidShape(plainKey string) bool
}
