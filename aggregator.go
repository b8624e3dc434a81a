package reporter

import (
	"context"
	"errors"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"go.opentelemetry.io/otel"

	"github.com/Klimanso/json-reporter/adapter"
	"github.com/Klimanso/json-reporter/metrics"
	"github.com/Klimanso/json-reporter/storage"
	"github.com/Klimanso/json-reporter/store"
	"github.com/Klimanso/json-reporter/types"
)

var tracer = otel.Tracer("json-reporter")

// Aggregator translates per-test lifecycle events into status-tagged records
// and owns persistence of the final snapshot. It is the single entry point
// the test tool drives: one MarkStart plus one terminal Add* call per test,
// serialized by the caller.
type Aggregator struct {
	log        log.Logger
	adapter    adapter.ToolAdapter
	store      *store.RecordStore
	writer     storage.Writer
	path       string
	runID      string
	startTimes map[string]time.Time
	now        func() time.Time
}

// AggregatorConfig carries the collaborators for a single run
type AggregatorConfig struct {
	Log     log.Logger
	Adapter adapter.ToolAdapter
	Writer  storage.Writer // defaults to storage.NewFileWriter()
	Path    string         // destination of the persisted report
	RunID   string
	Now     func() time.Time // defaults to time.Now, injectable for tests
}

// NewAggregator creates an aggregator with an empty record store
func NewAggregator(cfg AggregatorConfig) (*Aggregator, error) {
	if cfg.Adapter == nil {
		return nil, errors.New("tool adapter is required")
	}
	if cfg.Path == "" {
		return nil, errors.New("report path is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.Root()
	}
	if cfg.Writer == nil {
		cfg.Writer = storage.NewFileWriter()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Aggregator{
		log:        cfg.Log,
		adapter:    cfg.Adapter,
		store:      store.NewRecordStore(),
		writer:     cfg.Writer,
		path:       cfg.Path,
		runID:      cfg.RunID,
		startTimes: make(map[string]time.Time),
		now:        cfg.Now,
	}, nil
}

// MarkStart records the start timestamp for the event's identity. It does not
// create a status record; the timestamp is consumed when a terminal status is
// later recorded, to compute the elapsed duration.
func (a *Aggregator) MarkStart(event types.TestEvent) {
	configured := a.adapter.ConfigureTestResult(event)
	a.startTimes[configured.Identity()] = a.now()
}

// AddSuccess records the test as passed
func (a *Aggregator) AddSuccess(event types.TestEvent) {
	a.append(event, func(rec *types.TestRecord) {
		rec.Status = types.TestStatusSuccess
	})
}

// AddFail records the test as failed
func (a *Aggregator) AddFail(event types.TestEvent) {
	a.append(event, func(rec *types.TestRecord) {
		rec.Status = types.TestStatusFail
	})
}

// AddSkipped records the test as skipped, with the tool's skip reason
func (a *Aggregator) AddSkipped(event types.TestEvent) {
	a.append(event, func(rec *types.TestRecord) {
		rec.Status = types.TestStatusSkipped
		rec.SkipReason = a.adapter.GetSkipReason(event)
	})
}

// AddRetry records a retried test. The tool adapter is the sole authority on
// whether the retry was a genuine test failure or a transient tooling error.
func (a *Aggregator) AddRetry(event types.TestEvent) {
	if a.adapter.IsFailedTest(event) {
		a.AddFail(event)
		return
	}
	a.AddError(event)
}

// AddError records the test as errored. The stack trace is preferred over the
// message; an event carrying neither yields an empty error reason.
func (a *Aggregator) AddError(event types.TestEvent) {
	a.append(event, func(rec *types.TestRecord) {
		rec.Status = types.TestStatusError
		rec.ErrorReason = errorReason(rec.Event)
	})
}

// Persist writes the full snapshot to the configured path. Failure to write
// the report is logged and counted but never propagated: a report that cannot
// be written must not fail the test run that produced it.
func (a *Aggregator) Persist(ctx context.Context) {
	_, span := tracer.Start(ctx, "persist report")
	defer span.End()

	snapshot := a.store.Snapshot()
	if err := a.writer.WriteJSON(a.path, snapshot); err != nil {
		span.RecordError(err)
		metrics.RecordPersistFailure(err)
		a.log.Error("Failed to persist test report", "path", a.path, "err", err)
		return
	}

	a.log.Info("Persisted test report", "path", a.path, "tests", len(snapshot))
}

// Snapshot returns the current record set keyed by test identity
func (a *Aggregator) Snapshot() map[string]types.TestRecord {
	return a.store.Snapshot()
}

// Len returns the number of recorded test identities
func (a *Aggregator) Len() int {
	return a.store.Len()
}

// append runs the event through the adapter, attaches status fields via
// annotate and stores the record, replacing any prior record for the identity.
func (a *Aggregator) append(event types.TestEvent, annotate func(*types.TestRecord)) {
	configured := a.adapter.ConfigureTestResult(event)
	rec := types.TestRecord{
		Event:    configured,
		Duration: a.elapsed(configured.Identity()),
	}
	annotate(&rec)
	a.store.Append(rec)
	metrics.RecordResult(a.runID, rec.Status)
}

// elapsed returns the duration since the recorded start for the identity,
// or zero when no start was observed.
func (a *Aggregator) elapsed(identity string) time.Duration {
	start, ok := a.startTimes[identity]
	if !ok {
		return 0
	}
	return a.now().Sub(start)
}

func errorReason(event types.TestEvent) string {
	if event.Stack != "" {
		return event.Stack
	}
	return event.Message
}
