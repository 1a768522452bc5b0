package kv

import (
	"fmt"

	"github.com/hashicorp/consul/api"
	"github.com/pkg/errors"

	"github.com/platypus-platform/pp/internal/httputilx"
)

// TransportError the store could not be reached.
type TransportError struct {
	Key   string
	cause error
}

func (t TransportError) Error() string {
	return fmt.Sprintf("unable to reach store for %s: %v", t.Key, t.cause)
}

// Unwrap implements errors.Unwrap.
func (t TransportError) Unwrap() error { return t.cause }

// Cause implements errors.Cause.
func (t TransportError) Cause() error { return t.cause }

// RejectedError the store responded with a non-2xx status.
type RejectedError struct {
	Key  string
	Code int
	Body string
}

func (t RejectedError) Error() string {
	if t.Body == "" {
		return fmt.Sprintf("store rejected %s: %d", t.Key, t.Code)
	}

	return fmt.Sprintf("store rejected %s: %d %s", t.Key, t.Code, t.Body)
}

// Temporary true when the status indicates the request may succeed if reattempted.
func (t RejectedError) Temporary() bool {
	return httputilx.IsTemporary(t.Code)
}

// SerializationError the value could not be encoded to, or decoded from, json.
type SerializationError struct {
	Key   string
	cause error
}

func (t SerializationError) Error() string {
	return fmt.Sprintf("unable to serialize %s: %v", t.Key, t.cause)
}

// Unwrap implements errors.Unwrap.
func (t SerializationError) Unwrap() error { return t.cause }

// Cause implements errors.Cause.
func (t SerializationError) Cause() error { return t.cause }

// Retryable reports if the error is a transport failure or a temporary rejection.
func Retryable(err error) bool {
	var (
		transport TransportError
		rejected  RejectedError
	)

	if errors.As(err, &transport) {
		return true
	}

	if errors.As(err, &rejected) {
		return rejected.Temporary()
	}

	return false
}

func classify(key string, err error) error {
	var (
		status api.StatusError
	)

	if err == nil {
		return nil
	}

	if errors.As(err, &status) {
		return RejectedError{Key: key, Code: status.Code, Body: status.Body}
	}

	return TransportError{Key: key, cause: err}
}
