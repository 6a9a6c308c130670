// Package service provides bot filtering and pseudonymous visitor hashing
// for event ingestion.
package service

import "strings"

// botSignatures are lowercase substrings that mark a user agent as
// automated traffic. The list covers the major crawlers, SEO scanners,
// HTTP client libraries and headless browsers.
var botSignatures = []string{
	"googlebot",
	"bingbot",
	"yandex",
	"duckduckbot",
	"baiduspider",
	"slurp",
	"facebookexternalhit",
	"twitterbot",
	"linkedinbot",
	"whatsapp",
	"telegrambot",
	"applebot",
	"petalbot",
	"semrush",
	"ahrefs",
	"mj12bot",
	"dotbot",
	"curl",
	"wget",
	"python-requests",
	"go-http-client",
	"java/",
	"okhttp",
	"headless",
	"phantomjs",
	"selenium",
	"crawler",
	"spider",
	"bot/",
}

// BotDetector classifies user agents as human or automated traffic.
type BotDetector struct{}

// NewBotDetector creates a new bot detector.
func NewBotDetector() *BotDetector {
	return &BotDetector{}
}

// IsBot reports whether the user agent looks automated. An empty user
// agent is treated as a bot.
func (d *BotDetector) IsBot(userAgent string) bool {
	if strings.TrimSpace(userAgent) == "" {
		return true
	}

	lowered := strings.ToLower(userAgent)
	for _, signature := range botSignatures {
		if strings.Contains(lowered, signature) {
			return true
		}
	}
	return false
}
