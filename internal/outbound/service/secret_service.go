// Package service provides the dispatch trigger shared-secret primitives.
// The secret itself is never stored; only its Argon2id hash lives in
// configuration, and the scheduler presents the plain value per request.
package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/rmarques/marketgate/internal/errors"
)

// SecretService hashes and verifies the dispatch trigger secret.
type SecretService interface {
	// HashSecret hashes a plain text secret using Argon2id.
	HashSecret(plainSecret string) (string, error)

	// CompareSecret performs a constant-time comparison between a plain
	// secret and its hash.
	CompareSecret(plainSecret, hashedSecret string) bool
}

// secretService implements SecretService using Argon2id.
type secretService struct {
	hasher *pwdhash.PasswordHasher
}

func (s *secretService) HashSecret(plainSecret string) (string, error) {
	hashedSecret, err := s.hasher.Hash([]byte(plainSecret))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash secret")
	}
	return hashedSecret, nil
}

func (s *secretService) CompareSecret(plainSecret, hashedSecret string) bool {
	ok, err := s.hasher.Verify([]byte(plainSecret), hashedSecret)
	if err != nil {
		return false
	}
	return ok
}

// NewSecretService creates a new SecretService instance using Argon2id
// hashing with the Moderate policy.
func NewSecretService() SecretService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return &secretService{
		hasher: hasher,
	}
}
