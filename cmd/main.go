package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/honeycombio/otel-config-go/otelconfig"
	"github.com/urfave/cli/v2"

	reporter "github.com/Klimanso/json-reporter"
	"github.com/Klimanso/json-reporter/exitcodes"
	"github.com/Klimanso/json-reporter/flags"
	"github.com/Klimanso/json-reporter/service"
)

var (
	Version   = "v1.0.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "json-reporter"
	app.Usage = "Test result aggregation and JSON report writer"
	app.Description = "json-reporter replays a test event stream and persists a single structured JSON report"
	app.Flags = flags.Flags
	app.Action = run
	app.ExitErrHandler = func(c *cli.Context, err error) {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			// Use the exit code from the ExitCoder
			cli.HandleExitCoder(exitErr)
		} else if err != nil {
			if reporter.IsRuntimeError(err) {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.RuntimeErr))
			} else if reporter.IsTestFailureError(err) {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.TestFailure))
			} else {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.TestFailure))
			}
		}
	}

	// Start telemetry
	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(app.Name),
		otelconfig.WithServiceVersion(app.Version),
	)
	if err != nil {
		log.Warn("Failed to setup open telemetry", "message", err)
	} else {
		defer otelShutdown()
	}

	if err := app.Run(os.Args); err != nil {
		log.Crit("Application failed", "message", err)
	}
}

func run(ctx *cli.Context) error {
	logger := newLogger(
		ctx.String(flags.LogLevel.Name),
		ctx.Bool(flags.LogColor.Name),
	)
	log.SetDefault(logger)

	cfg, err := reporter.NewConfig(ctx, logger)
	if err != nil {
		return reporter.NewRuntimeError(fmt.Errorf("failed to create config: %w", err))
	}

	if cfg.Serve {
		svc := service.New(logger)
		go func() {
			if err := svc.Start(ctx.Context, cfg.ServeAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("error starting service", "err", err)
			}
		}()
		defer func() {
			if err := svc.Shutdown(ctx.Context); err != nil {
				logger.Error("error shutting down service", "err", err)
			}
		}()
	}

	r, err := reporter.New(cfg, Version)
	if err != nil {
		return reporter.NewRuntimeError(fmt.Errorf("failed to create reporter: %w", err))
	}

	return r.Run(ctx.Context)
}

// newLogger builds the terminal logger from the CLI log flags
func newLogger(level string, color bool) log.Logger {
	return log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, levelFromString(level), color))
}

func levelFromString(level string) slog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return log.LevelTrace
	case "debug":
		return log.LevelDebug
	case "info":
		return log.LevelInfo
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	case "crit":
		return log.LevelCrit
	default:
		return log.LevelInfo
	}
}
