package cmdopts

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/platypus-platform/pp"
	"github.com/platypus-platform/pp/cmd/commandutils"
	"github.com/platypus-platform/pp/internal/httputilx"
	"github.com/platypus-platform/pp/kv"
)

type Global struct {
	Verbosity        int                `help:"increase verbosity of logging" short:"v" type:"counter" default:"0"`
	Address          string             `help:"base url of the key value store, defaults to ${vars_pp_default_address}" env:"${env_pp_kv_address}"`
	Token            string             `help:"acl token for the key value store" env:"${env_pp_kv_token}"`
	Timeout          time.Duration      `help:"upper bound on store interactions" default:"${vars_pp_default_timeout}" env:"${env_pp_kv_timeout}"`
	EnvironmentFiles []string           `name:"environment-file" help:"dotenv files providing variables for plan expansion"`
	Context          context.Context    `kong:"-"`
	Shutdown         context.CancelFunc `kong:"-"`
}

// Store builds the key value store client from the global options.
func (t Global) Store() (*kv.Client, error) {
	options := []kv.Option{
		kv.OptionAddress(t.Address),
		kv.OptionToken(t.Token),
	}

	if t.Verbosity >= commandutils.VerbosityHTTP {
		options = append(options, kv.OptionRoundTripper(httputilx.DebugRoundTripper))
	}

	c, err := kv.New(options...)

	return c, errors.Wrap(err, "unable to connect to the store")
}

// Environ variable mapping used to expand plan files.
func (t Global) Environ() (func(string) string, error) {
	return pp.Environ(t.EnvironmentFiles...)
}

// WithTimeout derives a context bounded by the configured timeout.
// a zero timeout is unbounded.
func (t Global) WithTimeout() (context.Context, context.CancelFunc) {
	if t.Timeout <= 0 {
		return context.WithCancel(t.Context)
	}

	return context.WithTimeout(t.Context, t.Timeout)
}
