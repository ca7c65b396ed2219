// Package main implements the command-line interface for the API test runner.
// It loads the configuration and the test file, runs every test case in order,
// and prints a PASS/FAIL report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"apirunner/pkg/config"
	"apirunner/pkg/dispatcher"
	"apirunner/pkg/executor"
	"apirunner/pkg/logging"
	"apirunner/pkg/reporter"
	"apirunner/pkg/testcase"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

// run is main without the process exit, so the CLI can be driven from tests.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("apirunner", flag.ContinueOnError)
	fs.SetOutput(stderr)
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	logFormat := fs.String("log-format", "", "Log format (text, json); overrides the config file")
	envPrefix := fs.String("env-prefix", config.DefaultEnvPrefix, "Environment variable prefix for config overrides")
	noColor := fs.Bool("no-color", false, "Disable colored output")
	dryRun := fs.Bool("dry-run", false, "Print the resolved requests without sending them")
	failExit := fs.Bool("fail-exit", false, "Exit with status 1 when any test case fails")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] <config_file> <test_file>\n", fs.Name())
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return 1
	}
	configFile, testFile := fs.Arg(0), fs.Arg(1)

	// Bootstrap logger until the configured one is available
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	cfg, err := config.NewLoader(*envPrefix, configFile).Load(ctx)
	if err != nil {
		logger.Error("Failed to load configuration", "path", configFile, "error", err)
		return 1
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	logger, err = logging.New(cfg.Log.Level, cfg.Log.Format, stderr)
	if err != nil {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
		logger.Error("Failed to configure logger", "error", err)
		return 1
	}
	slog.SetDefault(logger)

	logger.Info("Loading test cases", "path", testFile)
	cases, err := testcase.LoadTestCasesFromFile(testFile)
	if err != nil {
		logger.Error("Failed to load test cases", "path", testFile, "error", err)
		return 1
	}

	result, err := executor.Run(ctx, cfg.BaseURL, cases, executor.Options{
		Sender:   dispatcher.New(nil, logger),
		Reporter: reporter.NewConsole(stdout, *noColor),
		Logger:   logger,
		DryRun:   *dryRun,
	})
	if err != nil {
		logger.Error("Execution encountered an error", "error", err)
		return 1
	}

	// Failed cases do not change the exit status unless asked to.
	if *failExit && result.Summary().Failed > 0 {
		return 1
	}
	return 0
}
