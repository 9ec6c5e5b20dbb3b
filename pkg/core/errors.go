package core

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies which stage of the request pipeline produced an error.
type ErrorKind int

// Error kinds, one per failure class of the request pipeline.
const (
	// KindUnknown is returned by KindOf for errors this package does not own.
	KindUnknown ErrorKind = iota
	// KindMissingCredential means a keyed or signed call was attempted without the needed credential.
	KindMissingCredential
	// KindTransport means the request never produced a usable exchange answer.
	KindTransport
	// KindHeader means a header value could not be placed on the wire.
	KindHeader
	// KindExchange means the exchange answered with its own error payload.
	KindExchange
	// KindDecode means a successful body did not match the expected record.
	KindDecode
	// KindNotFound means a requested asset is absent from the account.
	KindNotFound
	// KindClock means the local clock could not produce a valid timestamp.
	KindClock
	// KindRateLimited means the client-side limiter refused or could not wait for capacity.
	KindRateLimited
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	return [...]string{
		"UNKNOWN",
		"MISSING_CREDENTIAL",
		"TRANSPORT",
		"HEADER",
		"EXCHANGE",
		"DECODE",
		"NOT_FOUND",
		"CLOCK",
		"RATE_LIMITED",
	}[k]
}

// ErrorType categorizes an exchange error code.
type ErrorType int

// Error type constants classify exchange error codes for programmatic handling.
const (
	// ErrorTypeUnknown indicates an unclassified error.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeRateLimit indicates rate limit was exceeded.
	ErrorTypeRateLimit
	// ErrorTypeAuthentication indicates invalid or expired credentials.
	ErrorTypeAuthentication
	// ErrorTypeTimestamp indicates the request fell outside the receive window.
	ErrorTypeTimestamp
	// ErrorTypeBadRequest indicates invalid request parameters.
	ErrorTypeBadRequest
	// ErrorTypeServerError indicates a server-side error.
	ErrorTypeServerError
	// ErrorTypeInvalidOrder indicates the order violates exchange rules.
	ErrorTypeInvalidOrder
)

// String returns the string representation of the error type.
func (t ErrorType) String() string {
	return [...]string{
		"UNKNOWN",
		"RATE_LIMIT",
		"AUTHENTICATION",
		"TIMESTAMP",
		"BAD_REQUEST",
		"SERVER_ERROR",
		"INVALID_ORDER",
	}[t]
}

// Sentinel errors for common error conditions.
var (
	// ErrMissingCredential is returned when the credentials lack the key or secret a call needs.
	ErrMissingCredential = errors.New("missing credential")
	// ErrInvalidCredentials is returned when a secret is supplied without an API key.
	ErrInvalidCredentials = errors.New("secret key supplied without api key")
	// ErrAssetNotFound is returned when the account holds no balance entry for an asset.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrClientClosed is returned when attempting to use a closed client.
	ErrClientClosed = errors.New("client is closed")
	// ErrUnknownEndpoint is returned for an endpoint identifier outside the known set.
	ErrUnknownEndpoint = errors.New("unknown endpoint")
	// ErrRateLimited is returned when the client-side rate limiter does not grant a request.
	ErrRateLimited = errors.New("rate limited")
)

// TransportError reports a failed exchange round trip: a network or TLS failure,
// a timeout, or a non-2xx answer whose body is not an exchange error payload.
type TransportError struct {
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int
	// Body is the raw response body, if any.
	Body []byte
	// Err is the underlying network error, if any.
	Err error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("transport: %v", e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("transport: http %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transport: http %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// HeaderError reports a header value that is not legal on the wire.
// The offending value is never included.
type HeaderError struct {
	Header string
	Err    error
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("invalid header %s: %v", e.Header, e.Err)
}

func (e *HeaderError) Unwrap() error { return e.Err }

// ExchangeError represents a structured error returned from the exchange.
type ExchangeError struct {
	// Type categorizes the error for programmatic handling.
	Type ErrorType `json:"type"`
	// StatusCode is the HTTP status code from the response.
	StatusCode int `json:"status_code"`
	// Code is the exchange-specific error code.
	Code int16 `json:"code"`
	// Message is the human-readable error description.
	Message string `json:"message"`
	// Timestamp is when the error was received.
	Timestamp time.Time `json:"timestamp"`
}

// Error implements the error interface for ExchangeError.
func (e *ExchangeError) Error() string {
	return fmt.Sprintf("[binance] %s (%d/%d): %s", e.Type, e.StatusCode, e.Code, e.Message)
}

// NewExchangeError creates an ExchangeError and classifies its code.
// The timestamp is automatically set to the current time.
func NewExchangeError(statusCode int, code int16, message string) *ExchangeError {
	return &ExchangeError{
		Type:       ClassifyCode(code),
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
		Timestamp:  time.Now(),
	}
}

// DecodeError reports a 2xx body that could not be decoded into the expected record.
type DecodeError struct {
	// Target names the record being decoded.
	Target string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Target, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// AssetNotFoundError is returned by balance lookups for an absent asset.
type AssetNotFoundError struct {
	Asset string
}

func (e *AssetNotFoundError) Error() string {
	return fmt.Sprintf("asset %q not found", e.Asset)
}

func (e *AssetNotFoundError) Unwrap() error { return ErrAssetNotFound }

// ClockError is returned when the clock reads before the Unix epoch.
type ClockError struct {
	Now time.Time
}

func (e *ClockError) Error() string {
	return fmt.Sprintf("clock reads %s, before unix epoch", e.Now.UTC().Format(time.RFC3339))
}

// KindOf reports which pipeline stage produced err.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}

	var (
		transportErr *TransportError
		headerErr    *HeaderError
		exchangeErr  *ExchangeError
		decodeErr    *DecodeError
		clockErr     *ClockError
	)
	switch {
	case errors.Is(err, ErrMissingCredential):
		return KindMissingCredential
	case errors.As(err, &exchangeErr):
		return KindExchange
	case errors.As(err, &headerErr):
		return KindHeader
	case errors.As(err, &decodeErr):
		return KindDecode
	case errors.As(err, &clockErr):
		return KindClock
	case errors.Is(err, ErrAssetNotFound):
		return KindNotFound
	case errors.Is(err, ErrRateLimited):
		return KindRateLimited
	case errors.As(err, &transportErr):
		return KindTransport
	}
	return KindUnknown
}

// IsAuthenticationError returns true if the exchange rejected the credentials or signature.
func IsAuthenticationError(err error) bool {
	return exchangeErrorType(err) == ErrorTypeAuthentication
}

// IsRateLimitError returns true if the exchange reported a rate limit violation.
func IsRateLimitError(err error) bool {
	return exchangeErrorType(err) == ErrorTypeRateLimit
}

// IsTimestampError returns true if the request timestamp fell outside the receive window.
func IsTimestampError(err error) bool {
	return exchangeErrorType(err) == ErrorTypeTimestamp
}

// IsTransportError returns true if err wraps a TransportError.
func IsTransportError(err error) bool {
	var e *TransportError
	return errors.As(err, &e)
}

func exchangeErrorType(err error) ErrorType {
	var e *ExchangeError
	if errors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeUnknown
}
