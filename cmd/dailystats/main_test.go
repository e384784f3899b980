package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/dailystats/internal/constants"
	"github.com/hyp3rd/dailystats/internal/sentinel"
	"github.com/hyp3rd/dailystats/pkg/report"
)

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), args, &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestRun_Help(t *testing.T) {
	for _, flag := range []string{"-h", "--help", "-help"} {
		code, stdout, _ := runCLI("-d", "1", flag)
		assert.Equal(t, exitHelp, code)
		assert.True(t, strings.Contains(stdout, "USAGE"))
		assert.False(t, strings.Contains(stdout, "Executions"))
	}
}

func TestRun_InvalidInvocation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown flag", args: []string{"-x"}},
		{name: "non numeric pool", args: []string{"-p", "abc"}},
		{name: "missing value", args: []string{"--divide-and-conquer"}},
		{name: "zero runs", args: []string{"-n", "0"}},
		{name: "negative runs", args: []string{"--number-of-exec", "-3"}},
		{name: "negative workers", args: []string{"-p", "-1"}},
		{name: "negative depth", args: []string{"-d", "-1"}},
		{name: "depth above maximum", args: []string{"-d", "13"}},
		{name: "priority zero", args: []string{"-r", "0"}},
		{name: "priority too high", args: []string{"--real-time-priority", "150"}},
		{name: "unknown format", args: []string{"--format", "yaml"}},
		{name: "positional argument", args: []string{"serial"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(tt.args...)
			assert.Equal(t, exitUsage, code)
			assert.Equal(t, "", stdout)
			assert.True(t, strings.HasPrefix(stderr, "dailystats > INVALID INVOCATION > "))
		})
	}
}

func TestRun_ShowData(t *testing.T) {
	code, stdout, _ := runCLI("-d", "2", "-s", "--seed", "7")
	assert.Equal(t, exitOK, code)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Equal(t, constants.DaysPerYear+1, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "0 of 365 - Average: "))
	assert.True(t, strings.Contains(lines[0], " - Median: "))
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "Last execution time: "))
	assert.True(t, strings.HasSuffix(lines[len(lines)-1], "Executions: 1"))
}

func TestRun_SummaryOnly(t *testing.T) {
	code, stdout, _ := runCLI("-p", "4", "-n", "2")
	assert.Equal(t, exitOK, code)
	assert.True(t, strings.HasPrefix(stdout, "Last execution time: "))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(stdout), "Executions: 2"))
}

func TestRun_LastStrategyWins(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.json")

	code, stdout, _ := runCLI("--pool-of-threads", "3", "-d", "1", "--format", "json", "--output", out)
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "", stdout)

	data, err := os.ReadFile(out)
	assert.NoError(t, err)

	rep, err := report.Decode(data, "json")
	assert.NoError(t, err)
	assert.Equal(t, constants.DivideStrategy, rep.Strategy)
	assert.Equal(t, 1, rep.Value)
	assert.Equal(t, constants.DaysPerYear, rep.Populated)
}

func TestRun_GapIsReported(t *testing.T) {
	code, stdout, _ := runCLI("-d", "8", "--seed", "1")
	assert.Equal(t, exitOK, code)
	assert.True(t, strings.HasPrefix(stdout, "Coverage: 363 of 365 days populated, 1 range(s) skipped"))
}

func TestParseFlags_Defaults(t *testing.T) {
	opts, err := parseFlags(nil)
	assert.NoError(t, err)
	assert.Equal(t, constants.SerialStrategy, opts.strategy)
	assert.Equal(t, constants.DefaultRuns, opts.runs)
	assert.Equal(t, "text", opts.format)
	assert.False(t, opts.realTime)
	assert.False(t, opts.seedSet)

	opts, err = parseFlags([]string{"-r", "20", "--seed", "0x10", "-p", "8", "--hardware-cap"})
	assert.NoError(t, err)
	assert.Equal(t, constants.PoolStrategy, opts.strategy)
	assert.Equal(t, 8, opts.value)
	assert.True(t, opts.realTime)
	assert.Equal(t, 20, opts.priority)
	assert.Equal(t, uint64(16), opts.seed)
	assert.True(t, opts.hardwareCap)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "dailystats.toml")
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestParseFlags_ConfigFile(t *testing.T) {
	path := writeConfig(t, `
strategy = "divide"
value = 4
runs = 3
seed = 99
format = "json"
`)

	opts, err := parseFlags([]string{"--config", path, "-n", "5"})
	assert.NoError(t, err)
	assert.Equal(t, constants.DivideStrategy, opts.strategy)
	assert.Equal(t, 4, opts.value)
	assert.Equal(t, 5, opts.runs)
	assert.Equal(t, uint64(99), opts.seed)
	assert.True(t, opts.seedSet)
	assert.Equal(t, "json", opts.format)

	// a strategy flag overrides the file
	opts, err = parseFlags([]string{"--config", path, "-p", "2"})
	assert.NoError(t, err)
	assert.Equal(t, constants.PoolStrategy, opts.strategy)
	assert.Equal(t, 2, opts.value)
}

func TestRun_BadConfigFile(t *testing.T) {
	for _, content := range []string{`strategy = "quantum"`, `threads = 4`, `runs = "many"`} {
		code, _, stderr := runCLI("--config", writeConfig(t, content))
		assert.Equal(t, exitUsage, code)
		assert.True(t, strings.Contains(stderr, "INVALID INVOCATION"))
	}

	code, _, _ := runCLI("--config", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Equal(t, exitUsage, code)
}

func TestFail_Classes(t *testing.T) {
	var stderr bytes.Buffer

	assert.Equal(t, exitUsage, fail(&stderr, sentinel.ErrInvalidRuns))
	assert.Equal(t, exitInternal, fail(&stderr, sentinel.ErrBufferSize))
	assert.Equal(t, exitInternal, fail(&stderr, sentinel.ErrUnitFailed))

	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	assert.Equal(t, 3, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "dailystats > INVALID INVOCATION > "))
	assert.True(t, strings.HasPrefix(lines[1], "dailystats > INVARIANT VIOLATION > "))
	assert.True(t, strings.HasPrefix(lines[2], "dailystats > EXCEPTION > "))
}
