package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/hex"
	"strings"

	apperrors "github.com/rmarques/marketgate/internal/errors"
)

const (
	// keyPrefix marks marketplace API keys so they are recognizable in
	// logs, secret scanners, and support tickets.
	keyPrefix = "mk_"

	// keyRandomBytes is the entropy of the random part (208 bits).
	keyRandomBytes = 26

	// keyDisplayPrefixLen is how much of the key is kept in plain text
	// for display purposes ("mk_" plus a few characters).
	keyDisplayPrefixLen = 10
)

// keyEncoding is unpadded lowercase base32, keeping keys copy-paste safe.
var keyEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// keyService implements KeyService using SHA-256 for key hashing.
type keyService struct{}

// GenerateKey creates a new cryptographically secure API key of the form
// "mk_" followed by 208 bits of base32-encoded randomness.
// Returns the plain key, its SHA-256 hash, and its display prefix.
func (k *keyService) GenerateKey() (plainKey string, keyHash string, prefix string, error error) {
	randomBytes := make([]byte, keyRandomBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", "", apperrors.Wrap(err, "failed to generate random key")
	}

	plainKey = keyPrefix + strings.ToLower(keyEncoding.EncodeToString(randomBytes))
	keyHash = k.HashKey(plainKey)
	prefix = plainKey[:keyDisplayPrefixLen]

	return plainKey, keyHash, prefix, nil
}

// HashKey hashes a plain API key using SHA-256.
// Returns the hash as a hexadecimal string.
func (k *keyService) HashKey(plainKey string) string {
	hash := sha256.Sum256([]byte(plainKey))
	return hex.EncodeToString(hash[:])
}

// ValidShape reports whether the key has the expected prefix and length.
func (k *keyService) ValidShape(plainKey string) bool {
	if !strings.HasPrefix(plainKey, keyPrefix) {
		return false
	}
	return len(plainKey) == len(keyPrefix)+keyEncoding.EncodedLen(keyRandomBytes)
}

// NewKeyService creates a new KeyService instance using SHA-256 for key hashing.
func NewKeyService() KeyService {
	return &keyService{}
}
