package commands

import (
	"fmt"
	"io"

	outboundService "github.com/rmarques/marketgate/internal/outbound/service"
)

// RunHashDispatchSecret hashes a plain dispatch trigger secret and prints
// the hash for use as the DISPATCH_SECRET_HASH setting.
func RunHashDispatchSecret(
	secretService outboundService.SecretService,
	secret string,
	writer io.Writer,
) error {
	if secret == "" {
		return fmt.Errorf("secret cannot be empty")
	}

	hash, err := secretService.HashSecret(secret)
	if err != nil {
		return fmt.Errorf("failed to hash secret: %w", err)
	}

	_, _ = fmt.Fprintln(writer, hash)
	return nil
}
