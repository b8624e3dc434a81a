package stream

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Klimanso/json-reporter/types"
)

// recordingSink captures dispatched operations in order
type recordingSink struct {
	calls  []string
	events []types.TestEvent
}

func (s *recordingSink) record(op string, event types.TestEvent) {
	s.calls = append(s.calls, op)
	s.events = append(s.events, event)
}

func (s *recordingSink) MarkStart(event types.TestEvent)  { s.record("start", event) }
func (s *recordingSink) AddSuccess(event types.TestEvent) { s.record("success", event) }
func (s *recordingSink) AddFail(event types.TestEvent)    { s.record("fail", event) }
func (s *recordingSink) AddSkipped(event types.TestEvent) { s.record("skipped", event) }
func (s *recordingSink) AddRetry(event types.TestEvent)   { s.record("retry", event) }
func (s *recordingSink) AddError(event types.TestEvent)   { s.record("error", event) }

// errReader fails after yielding its payload
type errReader struct {
	data []byte
	err  error
	read bool
}

func (r *errReader) Read(p []byte) (int, error) {
	if !r.read {
		r.read = true
		n := copy(p, r.data)
		return n, nil
	}
	return 0, r.err
}

func TestReplayDispatchesInOrder(t *testing.T) {
	input := strings.Join([]string{
		`{"action":"start","fullName":"n","browserId":"b"}`,
		`{"action":"success","fullName":"n","browserId":"b","sessionId":"abc"}`,
		`{"action":"fail","fullName":"m","browserId":"b"}`,
		`{"action":"skipped","fullName":"s","browserId":"b","skipReason":"no chrome"}`,
		`{"action":"retry","fullName":"r","browserId":"b","failed":true}`,
		`{"action":"error","fullName":"e","browserId":"b","stack":"trace"}`,
	}, "\n")

	sink := &recordingSink{}
	stats, err := NewReader(nil, "run1").Replay(context.Background(), strings.NewReader(input), sink)
	require.NoError(t, err)

	assert.Equal(t, []string{"start", "success", "fail", "skipped", "retry", "error"}, sink.calls)
	assert.Equal(t, 6, stats.Lines)
	assert.Equal(t, 6, stats.Dispatched)
	assert.Zero(t, stats.Malformed)
	assert.Zero(t, stats.Unknown)

	// The action field is stripped; event fields survive as passthrough
	assert.Equal(t, "abc", sink.events[1].ExtraString("sessionId"))
	assert.NotContains(t, sink.events[1].Extra, "action")
	assert.Equal(t, "trace", sink.events[5].Stack)
}

func TestReplaySkipsMalformedAndUnknown(t *testing.T) {
	input := strings.Join([]string{
		`{"action":"success","fullName":"a"}`,
		`{not json`,
		`{"action":"pause","fullName":"b"}`,
		``,
		`{"action":"fail","fullName":"c"}`,
	}, "\n")

	sink := &recordingSink{}
	stats, err := NewReader(nil, "run1").Replay(context.Background(), strings.NewReader(input), sink)
	require.NoError(t, err)

	assert.Equal(t, []string{"success", "fail"}, sink.calls)
	assert.Equal(t, 4, stats.Lines, "blank lines are not counted")
	assert.Equal(t, 2, stats.Dispatched)
	assert.Equal(t, 1, stats.Malformed)
	assert.Equal(t, 1, stats.Unknown)
}

func TestReplayPropagatesReadError(t *testing.T) {
	cause := errors.New("pipe closed")
	rd := &errReader{data: []byte(`{"action":"success","fullName":"a"}` + "\n"), err: cause}

	sink := &recordingSink{}
	_, err := NewReader(nil, "run1").Replay(context.Background(), rd, sink)

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, []string{"success"}, sink.calls, "lines before the failure are still dispatched")
}

func TestReplayHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := `{"action":"success","fullName":"a"}`
	sink := &recordingSink{}
	_, err := NewReader(nil, "run1").Replay(ctx, strings.NewReader(input), sink)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, sink.calls)
}

func TestEnvelopeUnmarshal(t *testing.T) {
	var env Envelope
	require.NoError(t, env.UnmarshalJSON([]byte(`{"action":"retry","fullName":"n","failed":false}`)))

	assert.Equal(t, ActionRetry, env.Action)
	assert.Equal(t, "n", env.Event.FullName)
	assert.Equal(t, false, env.Event.Extra["failed"])
}
