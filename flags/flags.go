package flags

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "JSON_REPORTER"

// prefixEnvVars derives the single env var for a flag name, eg.
// "log-level" -> "JSON_REPORTER_LOG_LEVEL".
func prefixEnvVars(name string) []string {
	envName := strings.ReplaceAll(strings.ToUpper(name), "-", "_")
	return []string{EnvVarPrefix + "_" + envName}
}

var (
	Input = &cli.StringFlag{
		Name:    "input",
		Value:   "",
		EnvVars: prefixEnvVars("input"),
		Usage:   "Path to the NDJSON test event stream to replay (defaults to stdin)",
	}
	Output = &cli.StringFlag{
		Name:    "output",
		Value:   "json-reporter.json",
		EnvVars: prefixEnvVars("output"),
		Usage:   "Destination file path for the persisted JSON report",
	}
	ConfigFile = &cli.StringFlag{
		Name:    "config",
		Value:   "",
		EnvVars: prefixEnvVars("config"),
		Usage:   "Path to an optional YAML config file (eg. 'json-reporter.yaml')",
	}
	FailOnResults = &cli.BoolFlag{
		Name:    "fail-on-results",
		Value:   false,
		EnvVars: prefixEnvVars("fail-on-results"),
		Usage:   "Exit with code 1 when the report contains failed or errored tests",
	}
	LogLevel = &cli.StringFlag{
		Name:    "log-level",
		Value:   "info",
		EnvVars: prefixEnvVars("log-level"),
		Usage:   "Log level: trace, debug, info, warn, error, crit",
	}
	LogColor = &cli.BoolFlag{
		Name:    "log-color",
		Value:   false,
		EnvVars: prefixEnvVars("log-color"),
		Usage:   "Colorize log output",
	}
	Serve = &cli.BoolFlag{
		Name:    "serve",
		Value:   false,
		EnvVars: prefixEnvVars("serve"),
		Usage:   "Expose /healthz and /metrics over HTTP while the reporter runs",
	}
	ServeAddr = &cli.StringFlag{
		Name:    "serve-addr",
		Value:   "0.0.0.0:7300",
		EnvVars: prefixEnvVars("serve-addr"),
		Usage:   "Listen address for the healthz/metrics server",
	}
)

var requiredFlags = []cli.Flag{}

var optionalFlags = []cli.Flag{
	Input,
	Output,
	ConfigFile,
	FailOnResults,
	LogLevel,
	LogColor,
	Serve,
	ServeAddr,
}

var Flags []cli.Flag

func init() {
	Flags = append(requiredFlags, optionalFlags...)
}

func CheckRequired(ctx *cli.Context) error {
	for _, f := range requiredFlags {
		if !ctx.IsSet(f.Names()[0]) {
			return fmt.Errorf("flag %s is required", f.Names()[0])
		}
	}
	return nil
}
