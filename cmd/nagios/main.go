// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/wneessen/rscheck"
)

// main is the entry point for the research software status plugin.
//
// Outputs:
//   - "OK": The resource is up and its status document is complete.
//   - "WARNING": The resource has not been polled yet, its status document lacks freshness
//     information, or the plugin was called with invalid arguments.
//   - "CRITICAL": The status service is unreachable, answered with an error or reports the
//     resource as failed.
//   - "UNKNOWN": The plugin configuration in the environment is invalid.
//
// Exit Codes:
//   - 0: OK
//   - 1: WARNING
//   - 2: CRITICAL
//   - 3: UNKNOWN
func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes a single check for the given command line arguments.
//
// This function parses the arguments, loads the configuration from the environment, runs the
// check and writes exactly one result line to stdout. Usage information and log output go
// to stderr.
//
// Parameters:
//   - args: The command line arguments without the program name.
//   - stdout: The writer receiving the plugin output line.
//   - stderr: The writer receiving usage information and logs.
//
// Returns:
//   - The exit code matching the severity of the result.
func run(args []string, stdout, stderr io.Writer) int {
	var verbose bool

	flags := flag.NewFlagSet("check_research_sw", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.BoolVar(&verbose, "v", false, "")
	if err := flags.Parse(args); err != nil {
		usage(stderr, err.Error())
		return report(stdout, rscheck.UsageResult(rscheck.DefaultLabel))
	}
	if flags.NArg() != 1 {
		usage(stderr, "Exactly one resource id is required")
		return report(stdout, rscheck.UsageResult(rscheck.DefaultLabel))
	}
	id, err := rscheck.ParseID(flags.Arg(0))
	if err != nil {
		usage(stderr, err.Error())
		return report(stdout, rscheck.UsageResult(rscheck.DefaultLabel))
	}

	cfg, level, err := loadConfig()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "%s\n", err)
		return report(stdout, rscheck.ConfigResult(rscheck.DefaultLabel))
	}
	if verbose {
		level = slog.LevelDebug
	}

	checker := rscheck.New(rscheck.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout})
	checker.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	return report(stdout, checker.Check(ctx, id))
}

// report writes the result line to w and returns the exit code of the result.
func report(w io.Writer, result rscheck.Result) int {
	_, _ = fmt.Fprintln(w, result.String())
	return result.Severity.ExitCode()
}

// usage prints the usage information followed by reason to w.
func usage(w io.Writer, reason string) {
	const usage = `check_research_sw - a Nagios plugin to check the status of research software resources

Usage: check_research_sw [-v] <id>

Arguments:
    <id>                       Numeric identifier of the service or platform to check

Flags:
    -v                         Write debug logs to stderr

Environment:
    RSCHECK_BASE_URL           Base URL of the status service (Default: ` + rscheck.DefaultBaseURL + `)
    RSCHECK_TIMEOUT            Request timeout (Default: 5s)
    RSCHECK_LOG_LEVEL          Log level: debug, info, warn or error (Default: error)
    RSCHECK_ENV_FILE           Dotenv file to read the variables above from`

	_, _ = io.WriteString(w, usage+"\n\n"+reason+"\n")
}
