package main

import (
	"flag"
	"io"
	"strconv"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/dailystats/internal/constants"
	"github.com/hyp3rd/dailystats/internal/sentinel"
)

// options holds the parsed command line.
type options struct {
	strategy string
	value    int
	runs     int
	showData bool
	help     bool
	verbose  bool

	realTime bool
	priority int

	seed    uint64
	seedSet bool

	format      string
	output      string
	hardwareCap bool
	mgmtAddr    string
	redisAddr   string
	configPath  string
}

// parseFlags parses args. Every flag has a short and a long name; the flag
// package accepts one or two leading dashes for either.
func parseFlags(args []string) (*options, error) {
	opts := &options{
		strategy: constants.SerialStrategy,
		runs:     constants.DefaultRuns,
		format:   "text",
	}

	fs := flag.NewFlagSet("dailystats", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	strategyFlag := func(name string) func(string) error {
		return func(s string) error {
			v, err := atoi(s)
			if err != nil {
				return err
			}

			// the last strategy flag wins
			opts.strategy = name
			opts.value = v

			return nil
		}
	}

	for _, name := range []string{"p", "pool-of-threads"} {
		fs.Func(name, "worker pool size", strategyFlag(constants.PoolStrategy))
	}

	for _, name := range []string{"d", "divide-and-conquer"} {
		fs.Func(name, "divide-and-conquer depth", strategyFlag(constants.DivideStrategy))
	}

	for _, name := range []string{"n", "number-of-exec"} {
		fs.IntVar(&opts.runs, name, constants.DefaultRuns, "number of executions")
	}

	for _, name := range []string{"s", "show-data"} {
		fs.BoolVar(&opts.showData, name, false, "print every day")
	}

	for _, name := range []string{"r", "real-time-priority"} {
		fs.Func(name, "real-time round-robin priority", func(s string) error {
			v, err := atoi(s)
			if err != nil {
				return err
			}

			opts.realTime = true
			opts.priority = v

			return nil
		})
	}

	for _, name := range []string{"h", "help"} {
		fs.BoolVar(&opts.help, name, false, "print the manual")
	}

	for _, name := range []string{"v", "verbose"} {
		fs.BoolVar(&opts.verbose, name, false, "debug logging")
	}

	fs.Func("seed", "generator seed", func(s string) error {
		v, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return err
		}

		opts.seed = v
		opts.seedSet = true

		return nil
	})
	fs.StringVar(&opts.format, "format", opts.format, "report format")
	fs.StringVar(&opts.output, "output", "", "report file")
	fs.BoolVar(&opts.hardwareCap, "hardware-cap", false, "cap workers at the CPU count")
	fs.StringVar(&opts.mgmtAddr, "mgmt-addr", "", "management HTTP address")
	fs.StringVar(&opts.redisAddr, "redis-addr", "", "redis address")
	fs.StringVar(&opts.configPath, "config", "", "TOML file with default options")

	err := fs.Parse(args)
	if err != nil {
		return nil, ewrap.Wrap(sentinel.ErrInvalidParameter, err.Error())
	}

	if fs.NArg() > 0 {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidParameter, "unexpected argument %q", fs.Arg(0))
	}

	if opts.configPath != "" {
		fc, err := loadFileConfig(opts.configPath)
		if err != nil {
			return nil, err
		}

		fc.merge(opts, fs)
	}

	return opts, nil
}

func atoi(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, ewrap.Newf("%q is not an integer", s)
	}

	return v, nil
}
