package server

import (
	"errors"
	"net/http"

	"github.com/Srijnnn17/resume-genius/internal/ai"
)

// Messages surfaced to the client for upstream AI failures. The raw
// upstream error stays in the server log only.
const (
	msgRateLimited    = "Rate limit exceeded. Please try again in a moment."
	msgQuotaExhausted = "AI credits exhausted. Please add credits to your workspace to continue."
	msgAIFailed       = "AI service error. Please try again."
)

// aiHTTPStatus returns the appropriate HTTP status code and client
// message for an AI proxy error.
func aiHTTPStatus(err error) (int, string) {
	switch {
	case errors.Is(err, ai.ErrRateLimited):
		return http.StatusTooManyRequests, msgRateLimited
	case errors.Is(err, ai.ErrQuotaExhausted):
		return http.StatusPaymentRequired, msgQuotaExhausted
	default:
		return http.StatusInternalServerError, msgAIFailed
	}
}
