package model

import (
	"errors"
	"time"
)

// RateLimitError is the one provider failure that must stay distinguishable
// all the way up the stack: the detail cache propagates it without stamping,
// the walker pauses on it, and handlers translate it to HTTP 429. Message is
// written for direct user display.
type RateLimitError struct {
	Provider   string
	Message    string
	RetryAfter time.Duration // zero when the upstream gave no hint
}

func (e *RateLimitError) Error() string {
	return e.Message
}

// NewRateLimitError builds the signal with a displayable default message when
// the upstream supplied none.
func NewRateLimitError(provider, message string, retryAfter time.Duration) *RateLimitError {
	if message == "" {
		message = "Rate limited by " + provider + ", try again in a minute"
	}
	return &RateLimitError{Provider: provider, Message: message, RetryAfter: retryAfter}
}

// AsRateLimit unwraps err looking for the signal. Every layer that decides
// retryability goes through this rather than string matching.
func AsRateLimit(err error) (*RateLimitError, bool) {
	var rle *RateLimitError
	if errors.As(err, &rle) {
		return rle, true
	}
	return nil, false
}
