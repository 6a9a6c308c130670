package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	outboundService "github.com/rmarques/marketgate/internal/outbound/service"
)

func TestRunHashDispatchSecret(t *testing.T) {
	secretService := outboundService.NewSecretService()

	t.Run("hash-verifies", func(t *testing.T) {
		var out bytes.Buffer
		err := RunHashDispatchSecret(secretService, "cron-trigger-secret", &out)

		require.NoError(t, err)
		hash := strings.TrimSpace(out.String())
		require.NotEmpty(t, hash)
		require.True(t, secretService.CompareSecret("cron-trigger-secret", hash))
		require.False(t, secretService.CompareSecret("wrong-secret", hash))
	})

	t.Run("empty-secret", func(t *testing.T) {
		var out bytes.Buffer
		err := RunHashDispatchSecret(secretService, "", &out)

		require.Error(t, err)
		require.Empty(t, out.String())
	})
}
