package ai

import "errors"

// Upstream failure taxonomy. The server maps each to a distinct HTTP
// status so callers can render a tailored message; anything else from
// the model provider surfaces as a generic failure.
var (
	// ErrRateLimited indicates the upstream model rejected the call for
	// rate limiting; the caller should try again later.
	ErrRateLimited = errors.New("ai: rate limit exceeded")

	// ErrQuotaExhausted indicates the upstream account is out of credits.
	ErrQuotaExhausted = errors.New("ai: credits exhausted")
)
