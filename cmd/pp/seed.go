package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/platypus-platform/pp"
	"github.com/platypus-platform/pp/backoff"
	"github.com/platypus-platform/pp/cmd/pp/cmdopts"
	"github.com/platypus-platform/pp/intent"
	"github.com/platypus-platform/pp/internal/errorsx"
	"github.com/platypus-platform/pp/internal/stringsx"
	"github.com/platypus-platform/pp/internal/systemx"
	"github.com/platypus-platform/pp/kv"
	"github.com/platypus-platform/pp/seed"
)

type cmdSeed struct {
	Plan           string            `help:"yaml plan file, variables are expanded from the environment" default:"${vars_pp_default_plan_file}"`
	App            string            `help:"application name" env:"${env_pp_app}"`
	Cluster        string            `help:"cluster the application belongs to" env:"${env_pp_cluster}"`
	Hostname       string            `help:"host to assign the application to, defaults to the local hostname" env:"${env_pp_hostname}"`
	Versions       map[string]string `name:"versions" help:"artifact hash and lifecycle label pairs, e.g. 56d459e=active"`
	Basedir        string            `help:"absolute directory the application is deployed into"`
	Ports          []int             `name:"port" help:"port bound by the application, repeatable and order preserving"`
	AbortOnFailure bool              `help:"stop at the first failed publish instead of continuing"`
	Retries        int               `help:"reattempts for transport failures and temporary rejections" default:"0"`
}

func (t cmdSeed) Run(gctx *cmdopts.Global) (err error) {
	var (
		plan    seed.Plan
		mapping func(string) string
		store   *kv.Client
	)

	if mapping, err = gctx.Environ(); err != nil {
		return errorsx.UserFriendly(err)
	}

	if err = pp.ExpandEnvironAndDecodeFile(t.Plan, &plan, mapping); err != nil {
		return errorsx.UserFriendly(err)
	}

	plan = t.merge(plan, systemx.HostnameOrLocalhost)

	if store, err = gctx.Store(); err != nil {
		return err
	}

	ctx, done := gctx.WithTimeout()
	defer done()

	s := seed.New(
		store,
		seed.OptionAbortOnFailure(t.AbortOnFailure),
		seed.OptionRetry(t.Retries, backoff.New(backoff.Exponential(250*time.Millisecond), backoff.Maximum(5*time.Second))),
	)

	if err = s.Seed(ctx, plan); err != nil {
		if errors.Is(err, intent.ErrInvalid) {
			return errorsx.UserFriendly(err)
		}

		return err
	}

	au := aurora.NewAurora(isatty.IsTerminal(os.Stdout.Fd()))
	_, err = fmt.Println(au.Green("seeded"), plan.App, plan.Cluster, plan.Hostname)
	return err
}

// merge flags over the plan file. the hostname is only resolved when
// neither provides one.
func (t cmdSeed) merge(p seed.Plan, hostname func() string) seed.Plan {
	p.App = stringsx.DefaultIfBlank(t.App, p.App)
	p.Cluster = stringsx.DefaultIfBlank(t.Cluster, p.Cluster)
	if p.Hostname = strings.TrimSpace(stringsx.First(t.Hostname, p.Hostname)); p.Hostname == "" {
		p.Hostname = hostname()
	}

	if len(t.Versions) > 0 && p.Versions == nil {
		p.Versions = make(intent.VersionMap, len(t.Versions))
	}

	for id, label := range t.Versions {
		p.Versions[id] = intent.Label(label)
	}

	p.DeployConfig.Basedir = stringsx.DefaultIfBlank(t.Basedir, p.DeployConfig.Basedir)
	if len(t.Ports) > 0 {
		p.DeployConfig.Ports = t.Ports
	}

	return p
}
