// Package chaterr defines the structured errors shared by every platform adapter.
//
// All failures are represented by a single *Error value whose Kind field
// discriminates the cause. Callers classify errors with errors.As or the
// IsKind helper:
//
//	var adapterErr *chaterr.Error
//	if errors.As(err, &adapterErr) && adapterErr.Kind == chaterr.KindRateLimit {
//	    time.Sleep(adapterErr.RetryAfter)
//	}
package chaterr

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Kind discriminates adapter error causes
type Kind string

const (
	KindValidation     Kind = "validation"
	KindDecoding       Kind = "decoding"
	KindTransport      Kind = "transport"
	KindRateLimit      Kind = "rate_limit"
	KindAuthentication Kind = "authentication"
	KindPermission     Kind = "permission"
	KindNotFound       Kind = "not_found"
)

// Machine-readable codes. Kinds map one-to-one onto a default code, callers
// may set a more specific one.
const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeDecoding       = "DECODING_ERROR"
	CodeTransport      = "TRANSPORT_ERROR"
	CodeRateLimited    = "RATE_LIMITED"
	CodeAuthentication = "AUTH_FAILED"
	CodePermission     = "PERMISSION_DENIED"
	CodeNotFound       = "NOT_FOUND"
)

// Error is an adapter failure
type Error struct {
	Kind     Kind
	Code     string
	Platform string
	Message  string

	// RetryAfter is set for KindRateLimit when the remote told us how long to wait.
	RetryAfter time.Duration

	// Request context, set for errors produced from an HTTP response.
	Method     string
	URL        string
	StatusCode int
	Body       string

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Platform != "" {
		sb.WriteString(e.Platform)
		sb.WriteString(": ")
	}
	sb.WriteString(string(e.Kind))
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Method != "" || e.URL != "" {
		fmt.Fprintf(&sb, " (%s %s", e.Method, e.URL)
		if e.StatusCode != 0 {
			fmt.Fprintf(&sb, " -> %d", e.StatusCode)
		}
		sb.WriteString(")")
	}
	if e.RetryAfter > 0 {
		fmt.Fprintf(&sb, " retry after %s", e.RetryAfter)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether repeating the same call may succeed
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindRateLimit:
		return true
	case KindTransport:
		return e.StatusCode == 0 || e.StatusCode >= 500
	default:
		return false
	}
}

// As extracts the *Error from err's chain
func As(err error) (*Error, bool) {
	var adapterErr *Error
	if errors.As(err, &adapterErr) {
		return adapterErr, true
	}
	return nil, false
}

// IsKind reports whether err carries an *Error of the given kind
func IsKind(err error, kind Kind) bool {
	adapterErr, ok := As(err)
	return ok && adapterErr.Kind == kind
}

// Validation reports invalid caller input detected before anything is sent.
func Validation(platform, format string, args ...any) *Error {
	return &Error{
		Kind:     KindValidation,
		Code:     CodeValidation,
		Platform: platform,
		Message:  fmt.Sprintf(format, args...),
	}
}

// Decoding reports a malformed or foreign token.
func Decoding(platform, format string, args ...any) *Error {
	return &Error{
		Kind:     KindDecoding,
		Code:     CodeDecoding,
		Platform: platform,
		Message:  fmt.Sprintf(format, args...),
	}
}

// RateLimit reports remote throttling
func RateLimit(platform string, retryAfter time.Duration, err error) *Error {
	return &Error{
		Kind:       KindRateLimit,
		Code:       CodeRateLimited,
		Platform:   platform,
		Message:    "rate limited",
		RetryAfter: retryAfter,
		Err:        err,
	}
}

// Authentication reports rejected credentials
func Authentication(platform string, err error) *Error {
	return &Error{
		Kind:     KindAuthentication,
		Code:     CodeAuthentication,
		Platform: platform,
		Message:  "authentication failed",
		Err:      err,
	}
}

// Permission reports a call the credentials are not allowed to make
func Permission(platform string, err error) *Error {
	return &Error{
		Kind:     KindPermission,
		Code:     CodePermission,
		Platform: platform,
		Message:  "permission denied",
		Err:      err,
	}
}

// NotFound reports a missing remote resource
func NotFound(platform, resource string, err error) *Error {
	return &Error{
		Kind:     KindNotFound,
		Code:     CodeNotFound,
		Platform: platform,
		Message:  resource + " not found",
		Err:      err,
	}
}

// Transport wraps a failure to talk to the remote at all (dial, TLS, reading the body).
func Transport(platform, method, url string, err error) *Error {
	return &Error{
		Kind:     KindTransport,
		Code:     CodeTransport,
		Platform: platform,
		Message:  "request failed",
		Method:   method,
		URL:      url,
		Err:      err,
	}
}

// FromStatus builds the error for a non-2xx HTTP response. The kind follows
// the status code; every kind keeps the request method, URL, status and raw body.
func FromStatus(platform, method, url string, status int, header http.Header, body []byte) *Error {
	e := &Error{
		Platform:   platform,
		Method:     method,
		URL:        url,
		StatusCode: status,
		Body:       string(body),
		Message:    fmt.Sprintf("HTTP %d", status),
	}

	switch status {
	case http.StatusUnauthorized:
		e.Kind, e.Code = KindAuthentication, CodeAuthentication
	case http.StatusForbidden:
		e.Kind, e.Code = KindPermission, CodePermission
	case http.StatusNotFound:
		e.Kind, e.Code = KindNotFound, CodeNotFound
	case http.StatusTooManyRequests:
		e.Kind, e.Code = KindRateLimit, CodeRateLimited
		e.RetryAfter = ParseRetryAfter(header)
	default:
		e.Kind, e.Code = KindTransport, CodeTransport
	}

	if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
		e.Message += ": " + truncate(trimmed, 200)
	}
	return e
}

// ParseRetryAfter reads a Retry-After header given in seconds. Returns zero
// when the header is absent or not a positive integer.
func ParseRetryAfter(header http.Header) time.Duration {
	if header == nil {
		return 0
	}
	value := header.Get("Retry-After")
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
