package telegram

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// SecretHeader is the header the platform uses to echo the webhook secret.
const SecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// VerifySecret reports whether provided matches expected in constant time.
// An empty expected secret disables the check.
func VerifySecret(expected, provided string) bool {
	if expected == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}

// VerifyWebhook checks the secret carried in header. Header names are
// case-insensitive.
func VerifyWebhook(headers http.Header, header, expected string) bool {
	if strings.TrimSpace(header) == "" {
		header = SecretHeader
	}
	return VerifySecret(expected, headers.Get(header))
}
