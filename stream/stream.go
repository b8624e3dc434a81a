// Package stream replays a recorded NDJSON test event stream into the
// aggregator. Each line is one envelope: the lifecycle action plus the raw
// tool event.
package stream

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/log"

	"github.com/Klimanso/json-reporter/metrics"
	"github.com/Klimanso/json-reporter/types"
)

// Action names the lifecycle operation an envelope dispatches to
type Action string

const (
	ActionStart   Action = "start"
	ActionSuccess Action = "success"
	ActionFail    Action = "fail"
	ActionSkipped Action = "skipped"
	ActionRetry   Action = "retry"
	ActionError   Action = "error"
)

// Sink receives the lifecycle operations decoded from the stream.
// *reporter.Aggregator satisfies it.
type Sink interface {
	MarkStart(event types.TestEvent)
	AddSuccess(event types.TestEvent)
	AddFail(event types.TestEvent)
	AddSkipped(event types.TestEvent)
	AddRetry(event types.TestEvent)
	AddError(event types.TestEvent)
}

// Envelope is one NDJSON line: the action plus the tool event's own fields
// flattened alongside it.
type Envelope struct {
	Action Action
	Event  types.TestEvent
}

func (e *Envelope) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if s, ok := raw["action"].(string); ok {
		e.Action = Action(s)
		delete(raw, "action")
	}
	e.Event = types.EventFromMap(raw)
	return nil
}

// Stats summarizes one replay pass
type Stats struct {
	Lines      int // Non-empty lines seen
	Dispatched int // Lines that reached the sink
	Malformed  int // Lines that failed to decode
	Unknown    int // Lines with an unrecognized action
}

// Reader replays event streams into a sink
type Reader struct {
	log   log.Logger
	runID string
}

// NewReader creates a reader that tags its metrics with runID
func NewReader(logger log.Logger, runID string) *Reader {
	if logger == nil {
		logger = log.Root()
	}
	return &Reader{
		log:   logger,
		runID: runID,
	}
}

// Replay scans rd line by line and dispatches each envelope to the sink.
// Malformed lines and unknown actions are logged and counted but do not stop
// the replay; a read error on the underlying stream does.
func (r *Reader) Replay(ctx context.Context, rd io.Reader, sink Sink) (Stats, error) {
	var stats Stats

	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		stats.Lines++

		var env Envelope
		if err := json.Unmarshal(line, &env); err != nil {
			stats.Malformed++
			r.log.Warn("Skipping malformed event line", "line", stats.Lines, "err", err)
			metrics.RecordError("stream_malformed_line")
			continue
		}

		switch env.Action {
		case ActionStart:
			sink.MarkStart(env.Event)
		case ActionSuccess:
			sink.AddSuccess(env.Event)
		case ActionFail:
			sink.AddFail(env.Event)
		case ActionSkipped:
			sink.AddSkipped(env.Event)
		case ActionRetry:
			sink.AddRetry(env.Event)
		case ActionError:
			sink.AddError(env.Event)
		default:
			stats.Unknown++
			r.log.Warn("Skipping unknown action", "line", stats.Lines, "action", env.Action)
			metrics.RecordError("stream_unknown_action")
			continue
		}

		stats.Dispatched++
		metrics.RecordStreamLine(r.runID, string(env.Action))
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed reading event stream: %w", err)
	}
	return stats, nil
}
