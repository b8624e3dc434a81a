package reporter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/Klimanso/json-reporter/flags"
)

// Config holds the application configuration
type Config struct {
	Input         string // Path to the NDJSON event stream; empty means stdin
	Output        string // Destination file path for the persisted report
	FailOnResults bool   // Exit non-zero when the report contains failures
	Serve         bool   // Expose healthz/metrics over HTTP during the run
	ServeAddr     string // Listen address for the healthz/metrics server
	Log           log.Logger
}

// fileConfig mirrors the optional YAML config file. CLI flags that were set
// explicitly win over file values; file values win over flag defaults.
type fileConfig struct {
	Input         string `yaml:"input"`
	Output        string `yaml:"output"`
	FailOnResults *bool  `yaml:"failOnResults"`
	Serve         *bool  `yaml:"serve"`
	ServeAddr     string `yaml:"serveAddr"`
}

// NewConfig creates a new Config from cli context
func NewConfig(ctx *cli.Context, logger log.Logger) (*Config, error) {
	if err := flags.CheckRequired(ctx); err != nil {
		return nil, fmt.Errorf("missing required flags: %w", err)
	}

	cfg := &Config{
		Input:         ctx.String(flags.Input.Name),
		Output:        ctx.String(flags.Output.Name),
		FailOnResults: ctx.Bool(flags.FailOnResults.Name),
		Serve:         ctx.Bool(flags.Serve.Name),
		ServeAddr:     ctx.String(flags.ServeAddr.Name),
		Log:           logger,
	}

	if configFile := ctx.String(flags.ConfigFile.Name); configFile != "" {
		fc, err := loadFileConfig(configFile)
		if err != nil {
			return nil, err
		}
		cfg.applyFileConfig(ctx, fc)
	}

	if cfg.Output == "" {
		return nil, errors.New("output path is required")
	}

	// Resolve the absolute paths
	output, err := filepath.Abs(cfg.Output)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve absolute path for output '%s': %w", cfg.Output, err)
	}
	cfg.Output = output

	if cfg.Input != "" {
		input, err := filepath.Abs(cfg.Input)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve absolute path for input '%s': %w", cfg.Input, err)
		}
		cfg.Input = input
	}

	return cfg, nil
}

func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}
	return &fc, nil
}

// applyFileConfig fills in values from the config file for every flag the
// user did not set explicitly on the command line or environment.
func (c *Config) applyFileConfig(ctx *cli.Context, fc *fileConfig) {
	if fc.Input != "" && !ctx.IsSet(flags.Input.Name) {
		c.Input = fc.Input
	}
	if fc.Output != "" && !ctx.IsSet(flags.Output.Name) {
		c.Output = fc.Output
	}
	if fc.FailOnResults != nil && !ctx.IsSet(flags.FailOnResults.Name) {
		c.FailOnResults = *fc.FailOnResults
	}
	if fc.Serve != nil && !ctx.IsSet(flags.Serve.Name) {
		c.Serve = *fc.Serve
	}
	if fc.ServeAddr != "" && !ctx.IsSet(flags.ServeAddr.Name) {
		c.ServeAddr = fc.ServeAddr
	}
}
