package systemx

import (
	"log"
	"os"
	"strings"
)

// HostnameOrLocalhost returns the hostname, otherwise fallsback to localhost.
func HostnameOrLocalhost() string {
	const localhost = "localhost"
	return HostnameOrDefault(localhost)
}

// HostnameOrDefault returns the hostname trimmed of surrounding whitespace,
// or the provided fallback.
func HostnameOrDefault(fallback string) string {
	var (
		err      error
		hostname string
	)

	if hostname, err = os.Hostname(); err != nil {
		log.Println("failed to get hostname", err)
		return fallback
	}

	if hostname = strings.TrimSpace(hostname); hostname == "" {
		return fallback
	}

	return hostname
}
