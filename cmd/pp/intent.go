package main

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"

	"github.com/platypus-platform/pp/cmd/pp/cmdopts"
	"github.com/platypus-platform/pp/intent"
	"github.com/platypus-platform/pp/internal/errorsx"
	"github.com/platypus-platform/pp/internal/logx"
	"github.com/platypus-platform/pp/internal/stringsx"
	"github.com/platypus-platform/pp/internal/systemx"
	"github.com/platypus-platform/pp/kv"
)

type cmdIntent struct {
	Hostname string        `help:"host to inspect, defaults to the local hostname" env:"${env_pp_hostname}"`
	Watch    time.Duration `help:"poll continuously at the given interval"`
}

func (t cmdIntent) Run(gctx *cmdopts.Global) (err error) {
	var (
		store *kv.Client
		n     intent.Node
	)

	if store, err = gctx.Store(); err != nil {
		return err
	}

	hostname := stringsx.DefaultIfBlank(strings.TrimSpace(t.Hostname), systemx.HostnameOrLocalhost())

	if t.Watch > 0 {
		err = intent.Watch(gctx.Context, store, hostname, t.Watch, func(n intent.Node) {
			logx.MaybeLog(printIntent(os.Stdout, n))
		})
		return errorsx.Ignore(err, context.Canceled)
	}

	ctx, done := gctx.WithTimeout()
	defer done()

	if n, err = intent.Poll(ctx, store, hostname); err != nil {
		return err
	}

	return printIntent(os.Stdout, n)
}

func printIntent(dst io.Writer, n intent.Node) (err error) {
	var (
		encoded []byte
	)

	if encoded, err = yaml.Marshal(n); err != nil {
		return errors.Wrap(err, "unable to encode intent")
	}

	_, err = dst.Write(append([]byte("---\n"), encoded...))
	return errors.WithStack(err)
}
