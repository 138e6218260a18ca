// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// idtoken prints an ID token for a service account.
//
//	idtoken --creds <json-key-file> --audience AUDIENCE [--inquire]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"time"

	idtoken "github.com/hashicorp/cap-idtoken"
	"github.com/hashicorp/cap-idtoken/credential"
	"github.com/hashicorp/cap-idtoken/exchange"
	"github.com/hashicorp/go-hclog"
)

const (
	exitOK          = 0
	exitRuntimeErr  = 1
	exitBadArgument = 2

	// logLevelEnv overrides the log level when --verbose isn't set.
	logLevelEnv = "IDTOKEN_LOG_LEVEL"
)

var errBadArguments = errors.New("bad arguments")

// fetchIdToken is replaced in tests.
var fetchIdToken = idtoken.Fetch

type config struct {
	credsFile    string
	audience     string
	inquire      bool
	verbose      bool
	timeout      time.Duration
	tokenInfoURL string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stdout, "Exception: %v\n%s", r, debug.Stack())
			code = exitRuntimeErr
		}
	}()

	cfg, err := parseArgs(args)
	switch {
	case errors.Is(err, flag.ErrHelp):
		usage(stdout)
		return exitOK
	case err != nil:
		fmt.Fprintf(stdout, "Exception: %s\n", err)
		usage(stdout)
		return exitBadArgument
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "idtoken",
		Output: stderr,
		Level:  logLevel(cfg.verbose),
	})

	ctx := context.Background()
	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	if err := fetch(ctx, cfg, logger, stdout); err != nil {
		fmt.Fprintf(stdout, "Exception: %s\n", err)
		return exitRuntimeErr
	}
	return exitOK
}

func fetch(ctx context.Context, cfg *config, logger hclog.Logger, stdout io.Writer) error {
	const op = "fetch"
	cred, err := credential.Load(cfg.credsFile)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	client, err := exchange.NewClient(
		exchange.WithLogger(logger),
		exchange.WithTokenInfoEndpoint(cfg.tokenInfoURL),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tok, err := fetchIdToken(ctx, cred, cfg.audience,
		idtoken.WithClient(client),
		idtoken.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	fmt.Fprintf(stdout, "id token: %s\n", string(tok))

	if !cfg.inquire {
		return nil
	}
	info, err := client.Inspect(ctx, tok)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	fmt.Fprintf(stdout, "\ntoken info:\n%s\n", info)
	return nil
}

func parseArgs(args []string) (*config, error) {
	const op = "parseArgs"
	cfg := &config{}
	fs := flag.NewFlagSet("idtoken", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.credsFile, "creds", "", "service account json key file")
	fs.StringVar(&cfg.credsFile, "keyfile", "", "alias for --creds")
	fs.StringVar(&cfg.audience, "audience", "", "target audience of the id token")
	fs.BoolVar(&cfg.inquire, "inquire", false, "show what the token info endpoint reports for the id token")
	fs.BoolVar(&cfg.verbose, "verbose", false, "log at debug level to stderr")
	fs.DurationVar(&cfg.timeout, "timeout", 0, "overall time limit, zero means none")
	fs.StringVar(&cfg.tokenInfoURL, "tokeninfo-url", exchange.DefaultTokenInfoEndpoint, "token info endpoint used by --inquire")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w: %w", op, errBadArguments, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%s: %w: unhandled argument: %s", op, errBadArguments, fs.Arg(0))
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	switch {
	case set["creds"] && set["keyfile"]:
		return nil, fmt.Errorf("%s: %w: --creds and --keyfile are mutually exclusive", op, errBadArguments)
	case strings.TrimSpace(cfg.audience) == "":
		return nil, fmt.Errorf("%s: %w: missing required argument: --audience", op, errBadArguments)
	case strings.TrimSpace(cfg.credsFile) == "":
		return nil, fmt.Errorf("%s: %w: missing required argument: --creds", op, errBadArguments)
	}
	return cfg, nil
}

func logLevel(verbose bool) hclog.Level {
	if verbose {
		return hclog.Debug
	}
	if l := hclog.LevelFromString(os.Getenv(logLevelEnv)); l != hclog.NoLevel {
		return l
	}
	return hclog.Warn
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "idtoken: get an ID token for a service account.")
	fmt.Fprintln(w, "Usage: idtoken --creds <json-key-file> --audience AUDIENCE [--inquire]")
}
