package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/mattn/go-isatty"

	"github.com/platypus-platform/pp/cmd/pp/cmdopts"
)

type cmdVersion struct{}

func (t cmdVersion) Run(ctx *cmdopts.Global) (err error) {
	var (
		ok    bool
		info  *debug.BuildInfo
		ts    time.Time
		id    string
		dirty bool
	)

	if info, ok = debug.ReadBuildInfo(); !ok {
		return errors.New("unable to detect build information")
	}

	au := aurora.NewAurora(isatty.IsTerminal(os.Stdout.Fd()))
	for _, v := range info.Settings {
		switch v.Key {
		case "vcs.modified":
			if dirty, err = strconv.ParseBool(v.Value); err != nil {
				return err
			}
		case "vcs.revision":
			id = v.Value
		case "vcs.time":
			if ts, err = time.Parse(time.RFC3339, v.Value); err != nil {
				return err
			}
		}
	}

	if _, err = fmt.Println(info.Main.Path, info.Main.Version, ts.Format("2006-01-02"), id); err != nil {
		return err
	}

	if dirty {
		if _, err = fmt.Println(au.Red("unsupported modified build")); err != nil {
			return err
		}
	}

	return nil
}
