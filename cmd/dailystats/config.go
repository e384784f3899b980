package main

import (
	"flag"

	"github.com/BurntSushi/toml"
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/dailystats/internal/constants"
	"github.com/hyp3rd/dailystats/internal/sentinel"
)

// fileConfig is the TOML form of the command line. Flags given on the
// command line take precedence over the file.
//
//	strategy = "pool"
//	value = 8
//	runs = 10
//	seed = 42
type fileConfig struct {
	Strategy         string  `toml:"strategy"`
	Value            *int    `toml:"value"`
	Runs             *int    `toml:"runs"`
	ShowData         *bool   `toml:"show_data"`
	RealTimePriority *int    `toml:"real_time_priority"`
	Seed             *uint64 `toml:"seed"`
	Format           string  `toml:"format"`
	Output           string  `toml:"output"`
	HardwareCap      *bool   `toml:"hardware_cap"`
	MgmtAddr         string  `toml:"mgmt_addr"`
	RedisAddr        string  `toml:"redis_addr"`
	Verbose          *bool   `toml:"verbose"`
}

func loadFileConfig(path string) (*fileConfig, error) {
	var fc fileConfig

	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidParameter, "config %s: %v", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, ewrap.Wrapf(sentinel.ErrInvalidParameter, "config %s: unknown key %q", path, undecoded[0].String())
	}

	switch fc.Strategy {
	case "", constants.SerialStrategy, constants.PoolStrategy, constants.DivideStrategy:
	default:
		return nil, ewrap.Wrapf(sentinel.ErrUnknownStrategy, "config %s: %q", path, fc.Strategy)
	}

	return &fc, nil
}

// merge fills every option whose flag was not given on the command line.
func (fc *fileConfig) merge(opts *options, fs *flag.FlagSet) {
	given := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { given[f.Name] = true })

	unset := func(names ...string) bool {
		for _, name := range names {
			if given[name] {
				return false
			}
		}

		return true
	}

	if fc.Strategy != "" && unset("p", "pool-of-threads", "d", "divide-and-conquer") {
		opts.strategy = fc.Strategy
		opts.value = deref(fc.Value, 0)
	}

	if fc.Runs != nil && unset("n", "number-of-exec") {
		opts.runs = *fc.Runs
	}

	if fc.ShowData != nil && unset("s", "show-data") {
		opts.showData = *fc.ShowData
	}

	if fc.RealTimePriority != nil && unset("r", "real-time-priority") {
		opts.realTime = true
		opts.priority = *fc.RealTimePriority
	}

	if fc.Seed != nil && unset("seed") {
		opts.seed = *fc.Seed
		opts.seedSet = true
	}

	if fc.Format != "" && unset("format") {
		opts.format = fc.Format
	}

	if fc.Output != "" && unset("output") {
		opts.output = fc.Output
	}

	if fc.HardwareCap != nil && unset("hardware-cap") {
		opts.hardwareCap = *fc.HardwareCap
	}

	if fc.MgmtAddr != "" && unset("mgmt-addr") {
		opts.mgmtAddr = fc.MgmtAddr
	}

	if fc.RedisAddr != "" && unset("redis-addr") {
		opts.redisAddr = fc.RedisAddr
	}

	if fc.Verbose != nil && unset("v", "verbose") {
		opts.verbose = *fc.Verbose
	}
}

func deref[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}

	return *v
}
