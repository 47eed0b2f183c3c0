package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrRateLimit is returned when the provider answered 429.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("llm rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("llm rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse is returned when generated content is not valid JSON
// or does not match the request schema. Content keeps the raw output for
// the request event.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid llm response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers outages, network failures and
// unconfigured providers.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "llm provider unavailable"
	}
	return fmt.Sprintf("llm provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded is returned when output stopped at MaxTokens.
// A truncated batch of questions or a truncated card is never usable.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "llm response truncated at max tokens"
}

// ErrorKind is a coarse classification of a Generate failure, used for
// retry decisions and as a log field.
type ErrorKind string

const (
	KindNone        ErrorKind = ""
	KindCanceled    ErrorKind = "canceled"
	KindRateLimit   ErrorKind = "rate-limit"
	KindInvalid     ErrorKind = "invalid-response"
	KindTruncated   ErrorKind = "truncated"
	KindUnavailable ErrorKind = "unavailable"
	KindUnknown     ErrorKind = "unknown"
)

// Classify maps err to its ErrorKind. Wrapped errors are unwrapped.
func Classify(err error) ErrorKind {
	var (
		rl    *ErrRateLimit
		inv   *ErrInvalidResponse
		trunc *ErrMaxTokensExceeded
		down  *ErrProviderUnavailable
	)
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.As(err, &rl):
		return KindRateLimit
	case errors.As(err, &trunc):
		return KindTruncated
	case errors.As(err, &inv):
		return KindInvalid
	case errors.As(err, &down):
		return KindUnavailable
	default:
		return KindUnknown
	}
}

// Transient reports whether a later identical request may succeed.
// Invalid responses count as transient; callers bound how often they retry
// them.
func (k ErrorKind) Transient() bool {
	switch k {
	case KindRateLimit, KindUnavailable, KindInvalid, KindUnknown:
		return true
	}
	return false
}
