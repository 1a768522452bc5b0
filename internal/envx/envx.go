// Package envx provides utility functions for extracting information from environment variables
package envx

import (
	"os"
	"strings"
)

// String retrieve a string value from the environment, checks each key in order
// first string found is returned.
func String(fallback string, keys ...string) string {
	for _, k := range keys {
		s := strings.TrimSpace(os.Getenv(k))
		if s != "" {
			return s
		}
	}

	return fallback
}
