package logger

import (
	"strings"
	"unicode/utf8"
)

const maskedEmail = "***"

// MaskEmail hides an address before it reaches a log line. The first rune of
// a local part longer than two runes survives, as does the domain.
// Anything without a local part and a domain is masked entirely.
func MaskEmail(email string) string {
	local, domain, found := strings.Cut(strings.TrimSpace(email), "@")
	if !found || local == "" || domain == "" {
		return maskedEmail
	}
	if utf8.RuneCountInString(local) <= 2 {
		return maskedEmail + "@" + domain
	}
	first, _ := utf8.DecodeRuneInString(local)
	return string(first) + maskedEmail + "@" + domain
}
