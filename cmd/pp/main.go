// Package main is the operator frontend to the node intent store.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/platypus-platform/pp"
	"github.com/platypus-platform/pp/cmd/commandutils"
	"github.com/platypus-platform/pp/cmd/pp/cmdopts"
)

func main() {
	var shellCli struct {
		cmdopts.Global
		Version cmdVersion `cmd:"" help:"display versioning information"`
		Seed    cmdSeed    `cmd:"" help:"publish an application's node, versions and deploy configuration records"`
		Intent  cmdIntent  `cmd:"" help:"display the intent recorded for a host"`
	}

	var (
		err error
		ctx *kong.Context
	)

	log.SetFlags(log.Flags() | log.Lshortfile)

	shellCli.Context, shellCli.Shutdown = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer shellCli.Shutdown()

	parser := kong.Must(
		&shellCli,
		kong.Name("pp"),
		kong.Description("seed and inspect the node intent store"),
		vars(),
		kong.UsageOnError(),
		kong.Bind(&shellCli.Global),
	)

	if ctx, err = parser.Parse(os.Args[1:]); err != nil {
		commandutils.LogCause(err)
		os.Exit(1)
	}

	commandutils.ConfigLog(shellCli.Verbosity)

	if err = commandutils.LogCause(ctx.Run()); err != nil {
		shellCli.Shutdown()
		os.Exit(1)
	}
}

// vars interpolated into the command line definitions.
func vars() kong.Vars {
	return kong.Vars{
		"vars_pp_default_address":   pp.DefaultStoreAddress,
		"vars_pp_default_timeout":   pp.DefaultTimeout.String(),
		"vars_pp_default_plan_file": pp.DefaultPlanFile,
		"env_pp_kv_address":         pp.EnvStoreAddress,
		"env_pp_kv_token":           pp.EnvStoreToken,
		"env_pp_kv_timeout":         pp.EnvStoreTimeout,
		"env_pp_hostname":           pp.EnvHostname,
		"env_pp_app":                pp.EnvApp,
		"env_pp_cluster":            pp.EnvCluster,
	}
}
