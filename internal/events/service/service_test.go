package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBotDetector_IsBot(t *testing.T) {
	detector := NewBotDetector()

	tests := []struct {
		name      string
		userAgent string
		expected  bool
	}{
		{"EmptyUserAgent", "", true},
		{"WhitespaceOnly", "   ", true},
		{"Googlebot", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)", true},
		{"Curl", "curl/8.4.0", true},
		{"Wget", "Wget/1.21.3", true},
		{"PythonRequests", "python-requests/2.31.0", true},
		{"GoHTTPClient", "Go-http-client/2.0", true},
		{"HeadlessChrome", "Mozilla/5.0 HeadlessChrome/119.0", true},
		{"GenericCrawler", "MySearchEngine-Crawler/1.0", true},
		{"CaseInsensitive", "CURL/8.4.0", true},
		{"DesktopChrome", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36", false},
		{"MobileSafari", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, detector.IsBot(tt.userAgent))
		})
	}
}

func TestVisitorHasher_Hash(t *testing.T) {
	hasher := NewVisitorHasher("tracking-secret")

	t.Run("Deterministic", func(t *testing.T) {
		first := hasher.Hash("203.0.113.7", "2025-06-15")
		second := hasher.Hash("203.0.113.7", "2025-06-15")

		assert.Equal(t, first, second)
		assert.Len(t, first, 16)
	})

	t.Run("DifferentIPsDiffer", func(t *testing.T) {
		assert.NotEqual(t,
			hasher.Hash("203.0.113.7", "2025-06-15"),
			hasher.Hash("203.0.113.8", "2025-06-15"),
		)
	})

	t.Run("SaltRotatesDaily", func(t *testing.T) {
		assert.NotEqual(t,
			hasher.Hash("203.0.113.7", "2025-06-15"),
			hasher.Hash("203.0.113.7", "2025-06-16"),
		)
	})

	t.Run("SecretChangesHash", func(t *testing.T) {
		other := NewVisitorHasher("rotated-secret")

		assert.NotEqual(t,
			hasher.Hash("203.0.113.7", "2025-06-15"),
			other.Hash("203.0.113.7", "2025-06-15"),
		)
	})
}
