// Package commandutils provides common utility functions for CLI interfaces.
package commandutils

import (
	"io"
	"log"
	"os"

	"github.com/platypus-platform/pp/internal/errorsx"
)

const (
	// VerbosityQuiet default verbosity setting, minimal output.
	VerbosityQuiet = iota
	// VerbosityStack print stack trace when an error occurs.
	VerbosityStack
	// VerbosityHTTP dump store requests and responses.
	VerbosityHTTP
)

// ConfigLog configures logs based on the verbosity
func ConfigLog(v int) {
	switch {
	case v >= VerbosityStack:
		Verbose = log.New(os.Stderr, "[Verbose] ", log.Flags()|log.Lshortfile)
		fallthrough
	default:
		log.SetFlags(log.Flags() | log.Lshortfile)
	}
}

// LogCause logs the error, with a stack trace when verbose logging is enabled.
func LogCause(err error) error {
	if err == nil {
		return nil
	}

	if errorsx.IsUserFriendly(err) {
		log.Println(err)
		return err
	}

	Verbose.Printf("%+v\n", err)
	log.Println(err)

	return err
}

var (
	// Verbose logger
	Verbose = log.New(io.Discard, "[Verbose] ", log.Flags()|log.Lshortfile)
)
