package stringsx

import "strings"

// DefaultIfBlank uses the default value if the provided string is blank.
func DefaultIfBlank(s, defaultValue string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}

	return defaultValue
}

// First returns the first non-blank value.
func First(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}

	return ""
}
