package woocommerce

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidStoreURL indicates the store URL could not be used to build an endpoint
	ErrInvalidStoreURL = errors.New("invalid store URL")
	// ErrInvalidPageRange indicates a page range with from > to or more than
	// MaxPages pages
	ErrInvalidPageRange = errors.New("invalid page range")
)

// PermissionDeniedCode is the error code WooCommerce returns when the key
// lacks read access to products.
const PermissionDeniedCode = "woocommerce_rest_cannot_view"

// ErrorKind classifies a failed fetch.
type ErrorKind int

const (
	// KindUnknown is never set on a FetchError; KindOf returns it for other errors.
	KindUnknown ErrorKind = iota
	// KindNetwork covers DNS, connect, TLS and timeout failures.
	KindNetwork
	// KindHTTP means the store answered with status >= 400.
	KindHTTP
	// KindAPI means a non-error status carried a WooCommerce error object.
	KindAPI
	// KindDecode means the body was not valid JSON.
	KindDecode
	// KindUnexpectedPayload means valid JSON of neither expected shape.
	KindUnexpectedPayload
)

// String returns the string representation of an ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTP:
		return "http_error"
	case KindAPI:
		return "api_error"
	case KindDecode:
		return "decode_error"
	case KindUnexpectedPayload:
		return "unexpected_payload"
	default:
		return "unknown"
	}
}

// FetchError is the typed failure of a FetchPage call.
type FetchError struct {
	Kind ErrorKind
	// StatusCode is the HTTP status, 0 for network failures.
	StatusCode int
	// Code is the WooCommerce error code when the body carried one.
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	return fmt.Sprintf("woocommerce %s: %s", e.Kind, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if the error indicates a not found response
func (e *FetchError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *FetchError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsPermissionDenied reports whether the key is valid but may not read products.
func (e *FetchError) IsPermissionDenied() bool {
	return e.Code == PermissionDeniedCode
}

// KindOf returns the ErrorKind of err, or KindUnknown if err is not a FetchError.
func KindOf(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}
