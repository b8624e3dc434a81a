package reporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/Klimanso/json-reporter/adapter"
	"github.com/Klimanso/json-reporter/metrics"
	"github.com/Klimanso/json-reporter/stream"
)

// Reporter wires the aggregator, the event stream reader and the console
// summary together for a single run.
type Reporter struct {
	config    *Config
	version   string
	runID     string
	agg       *Aggregator
	reader    *stream.Reader
	formatter ResultFormatter
}

// New creates a reporter for one run, with a fresh run ID
func New(config *Config, version string) (*Reporter, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}

	runID := uuid.New().String()
	config.Log.Debug("Creating reporter",
		"input", config.Input,
		"output", config.Output,
		"failOnResults", config.FailOnResults,
		"runID", runID)

	agg, err := NewAggregator(AggregatorConfig{
		Log:     config.Log,
		Adapter: adapter.NewDefaultAdapter(),
		Path:    config.Output,
		RunID:   runID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create aggregator: %w", err)
	}

	return &Reporter{
		config:    config,
		version:   version,
		runID:     runID,
		agg:       agg,
		reader:    stream.NewReader(config.Log, runID),
		formatter: NewConsoleResultFormatter(config.Log),
	}, nil
}

// Aggregator exposes the underlying aggregator so an embedding tool can feed
// lifecycle events directly instead of replaying a recorded stream.
func (r *Reporter) Aggregator() *Aggregator {
	return r.agg
}

// RunID returns the unique identifier of this run
func (r *Reporter) RunID() string {
	return r.runID
}

// Run replays the input stream through the aggregator, persists the report
// and prints the console summary. Unreadable input is a runtime error; a
// report containing failures is a test failure error when fail-on-results is
// configured.
func (r *Reporter) Run(ctx context.Context) error {
	start := time.Now()

	input, closeInput, err := r.openInput()
	if err != nil {
		return NewRuntimeError(err)
	}
	defer closeInput()

	r.config.Log.Info("Replaying test event stream", "input", inputName(r.config.Input), "runID", r.runID)
	streamStats, err := r.reader.Replay(ctx, input, r.agg)
	if err != nil {
		return NewRuntimeError(fmt.Errorf("failed to replay event stream: %w", err))
	}

	r.agg.Persist(ctx)

	snapshot := r.agg.Snapshot()
	if err := r.formatter.FormatResults(snapshot); err != nil {
		r.config.Log.Error("Failed to print results", "err", err)
	}

	summary := ComputeStats(snapshot)
	metrics.RecordRun(r.runID, summary.Total, time.Since(start))
	r.config.Log.Info("Run complete",
		"runID", r.runID,
		"lines", streamStats.Lines,
		"dispatched", streamStats.Dispatched,
		"malformed", streamStats.Malformed,
		"unknown", streamStats.Unknown,
		"tests", summary.Total,
		"status", summary.Overall())

	if r.config.FailOnResults && summary.HasFailures() {
		return NewTestFailureError(summary.Failed, summary.Errored)
	}
	return nil
}

// openInput returns the configured event stream, defaulting to stdin
func (r *Reporter) openInput() (io.Reader, func(), error) {
	if r.config.Input == "" {
		return os.Stdin, func() {}, nil
	}

	f, err := os.Open(r.config.Input)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open input stream '%s': %w", r.config.Input, err)
	}
	return f, func() { f.Close() }, nil
}

func inputName(input string) string {
	if input == "" {
		return "stdin"
	}
	return input
}
