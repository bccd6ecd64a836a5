package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
)

// WebhookValidator checks the provider signature header against the raw
// request body. The header carries ts=<timestamp>,v1=<hex hmac>; the HMAC is
// SHA-256 over "<ts>.<raw body>" with the shared secret.
type WebhookValidator struct {
	secret string
}

func NewWebhookValidator(secret string) *WebhookValidator {
	return &WebhookValidator{secret: secret}
}

// ValidateSignature must be called with the exact bytes received on the
// wire; re-serialized JSON will not match.
func (v *WebhookValidator) ValidateSignature(signatureHeader string, rawBody []byte) bool {
	if signatureHeader == "" || v.secret == "" {
		return false
	}

	ts, hash := parseSignatureHeader(signatureHeader)
	if ts == "" || hash == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(v.secret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(hash), []byte(expected))
}

func parseSignatureHeader(header string) (ts, hash string) {
	tsRegex := regexp.MustCompile(`ts=([^,]+)`)
	v1Regex := regexp.MustCompile(`v1=([^,]+)`)

	if m := tsRegex.FindStringSubmatch(header); len(m) > 1 {
		ts = strings.TrimSpace(m[1])
	}
	if m := v1Regex.FindStringSubmatch(header); len(m) > 1 {
		hash = strings.TrimSpace(m[1])
	}
	return ts, hash
}
