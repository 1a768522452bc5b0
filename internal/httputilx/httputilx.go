package httputilx

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
)

// CheckStatusCode compares the provided status code with a list of acceptable
// status codes.
func CheckStatusCode(actual int, acceptable ...int) bool {
	for _, code := range acceptable {
		if actual == code {
			return true
		}
	}

	return false
}

// IsTemporary returns true for status codes that are worth reattempting.
func IsTemporary(actual int) bool {
	return CheckStatusCode(
		actual,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout,
	)
}

// WriteJSON writes a json payload into the provided buffer and sets the context-type header to application/json.
func WriteJSON(resp http.ResponseWriter, buffer *bytes.Buffer, context interface{}) error {
	var (
		err error
	)

	buffer.Reset()
	resp.Header().Set("Content-Type", "application/json")

	if err = json.NewEncoder(buffer).Encode(context); err != nil {
		resp.WriteHeader(http.StatusInternalServerError)
		return err
	}

	_, err = io.Copy(resp, buffer)
	return err
}
