package types

import (
	"encoding/json"
	"time"
)

const (
	fieldStatus      = "status"
	fieldSkipReason  = "skipReason"
	fieldErrorReason = "errorReason"
	fieldDuration    = "duration"
)

// TestRecord is the stored value for one test identity: the original event
// merged with exactly one status annotation and the elapsed duration.
// A new record for the same identity fully replaces the prior one.
type TestRecord struct {
	Event       TestEvent
	Status      TestStatus
	SkipReason  string // set only for TestStatusSkipped
	ErrorReason string // set only for TestStatusError, may be empty
	Duration    time.Duration
}

// Identity returns the report key the record is stored under
func (r TestRecord) Identity() string {
	return r.Event.Identity()
}

// MarshalJSON flattens the record into a single JSON object: the event fields
// (passthrough included), the status, the reason field matching the status,
// and the duration in milliseconds.
func (r TestRecord) MarshalJSON() ([]byte, error) {
	m := r.Event.toMap()
	m[fieldStatus] = r.Status
	switch r.Status {
	case TestStatusSkipped:
		m[fieldSkipReason] = r.SkipReason
	case TestStatusError:
		m[fieldErrorReason] = r.ErrorReason
	}
	m[fieldDuration] = r.Duration.Milliseconds()
	return json.Marshal(m)
}

func (r *TestRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	rec := TestRecord{}
	if s, ok := raw[fieldStatus].(string); ok {
		rec.Status = TestStatus(s)
		delete(raw, fieldStatus)
	}
	if s, ok := raw[fieldSkipReason].(string); ok && rec.Status == TestStatusSkipped {
		rec.SkipReason = s
		delete(raw, fieldSkipReason)
	}
	if s, ok := raw[fieldErrorReason].(string); ok && rec.Status == TestStatusError {
		rec.ErrorReason = s
		delete(raw, fieldErrorReason)
	}
	if ms, ok := raw[fieldDuration].(float64); ok {
		rec.Duration = time.Duration(ms) * time.Millisecond
		delete(raw, fieldDuration)
	}
	rec.Event = EventFromMap(raw)

	*r = rec
	return nil
}
