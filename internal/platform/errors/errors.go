// Package errors provides error types and utilities for phoneprobe.
// It extends the standard errors package with context wrapping and a
// classifier that maps transport failures onto a small set of kinds.
package errors

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
)

// Sentinel errors for common failure scenarios
var (
	// ErrTimeout indicates an operation exceeded its time limit
	ErrTimeout = errors.New("operation timed out")

	// ErrRateLimit indicates the local request throttle rejected a call
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrInvalidInput indicates invalid input was provided
	ErrInvalidInput = errors.New("invalid input")

	// ErrConnectionFailed indicates a connection could not be established
	ErrConnectionFailed = errors.New("connection failed")

	// ErrUnsupportedScheme indicates the URL scheme cannot be fetched over HTTP
	ErrUnsupportedScheme = errors.New("unsupported url scheme")

	// ErrInvalidResponse indicates a response could not be parsed or was malformed
	ErrInvalidResponse = errors.New("invalid response")
)

// Kind is a coarse classification of a failed network attempt.
type Kind string

const (
	KindNone       Kind = ""
	KindTimeout    Kind = "timeout"
	KindDNS        Kind = "dns"
	KindConnection Kind = "connection"
	KindTLS        Kind = "tls"
	KindProtocol   Kind = "protocol"
	KindCanceled   Kind = "canceled"
	KindRateLimit  Kind = "rate_limit"
	KindUnknown    Kind = "unknown"
)

// wrappedError wraps an error with additional context
type wrappedError struct {
	msg   string
	cause error
}

// Error implements the error interface
func (e *wrappedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

// Unwrap returns the underlying error
func (e *wrappedError) Unwrap() error {
	return e.cause
}

// Wrap wraps an error with additional context message.
// If err is nil, Wrap returns nil.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: msg, cause: err}
}

// Wrapf wraps an error with a formatted context message.
// If err is nil, Wrapf returns nil.
//
// Example:
//
//	if err != nil {
//	    return errors.Wrapf(err, "category %s", name)
//	}
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &wrappedError{msg: fmt.Sprintf(format, args...), cause: err}
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// New creates a new error with the given message.
func New(msg string) error {
	return errors.New(msg)
}

// Errorf formats according to a format specifier and returns the string as a value that satisfies error.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Join returns an error that wraps the given errors.
// Any nil error values are discarded.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// Classify maps an attempt error onto a Kind.
// Order matters: cancellation and deadlines are checked before the
// net.Error interface because *url.Error also implements Timeout().
func Classify(err error) Kind {
	if err == nil {
		return KindNone
	}

	if errors.Is(err, ErrRateLimit) {
		return KindRateLimit
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrTimeout) || errors.Is(err, os.ErrDeadlineExceeded) {
		return KindTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return KindTimeout
		}
		return KindDNS
	}

	var certErr *tls.CertificateVerificationError
	var unknownAuth x509.UnknownAuthorityError
	var hostErr x509.HostnameError
	var invalidCert x509.CertificateInvalidError
	var recordErr tls.RecordHeaderError
	var alertErr tls.AlertError
	if errors.As(err, &certErr) || errors.As(err, &unknownAuth) || errors.As(err, &hostErr) ||
		errors.As(err, &invalidCert) || errors.As(err, &recordErr) || errors.As(err, &alertErr) {
		return KindTLS
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, ErrConnectionFailed) {
		return KindConnection
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return KindConnection
	}

	if errors.Is(err, ErrUnsupportedScheme) || errors.Is(err, ErrInvalidResponse) {
		return KindProtocol
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return KindProtocol
	}

	return KindUnknown
}
