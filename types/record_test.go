package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMarshalStatusFields(t *testing.T) {
	tests := []struct {
		name        string
		record      TestRecord
		wantKeys    []string
		missingKeys []string
	}{
		{
			name:        "success has no reason fields",
			record:      TestRecord{Event: TestEvent{FullName: "n"}, Status: TestStatusSuccess},
			wantKeys:    []string{"fullName", "status", "duration"},
			missingKeys: []string{"skipReason", "errorReason"},
		},
		{
			name:        "skipped carries skipReason",
			record:      TestRecord{Event: TestEvent{FullName: "n"}, Status: TestStatusSkipped, SkipReason: "not supported"},
			wantKeys:    []string{"status", "skipReason"},
			missingKeys: []string{"errorReason"},
		},
		{
			name:        "error carries errorReason even when empty",
			record:      TestRecord{Event: TestEvent{FullName: "n"}, Status: TestStatusError},
			wantKeys:    []string{"status", "errorReason"},
			missingKeys: []string{"skipReason"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := json.Marshal(tt.record)
			require.NoError(t, err)

			var raw map[string]any
			require.NoError(t, json.Unmarshal(out, &raw))
			for _, key := range tt.wantKeys {
				assert.Contains(t, raw, key)
			}
			for _, key := range tt.missingKeys {
				assert.NotContains(t, raw, key)
			}
		})
	}
}

func TestRecordMarshalDurationMilliseconds(t *testing.T) {
	record := TestRecord{
		Event:    TestEvent{FullName: "n", BrowserID: "b"},
		Status:   TestStatusSuccess,
		Duration: 1500 * time.Millisecond,
	}

	out, err := json.Marshal(record)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(out, &raw))
	assert.Equal(t, float64(1500), raw["duration"])
}

func TestRecordJSONRoundTrip(t *testing.T) {
	record := TestRecord{
		Event: TestEvent{
			FullName:  "suite test",
			BrowserID: "chrome",
			Message:   "assertion failed",
			Extra:     map[string]any{"sessionId": "abc"},
		},
		Status:      TestStatusError,
		ErrorReason: "assertion failed",
		Duration:    2 * time.Second,
	}

	out, err := json.Marshal(record)
	require.NoError(t, err)

	var decoded TestRecord
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.Equal(t, record.Status, decoded.Status)
	assert.Equal(t, record.ErrorReason, decoded.ErrorReason)
	assert.Equal(t, record.Duration, decoded.Duration)
	assert.Equal(t, "suite test", decoded.Event.FullName)
	assert.Equal(t, "abc", decoded.Event.Extra["sessionId"])
}

func TestRecordIdentityDelegatesToEvent(t *testing.T) {
	record := TestRecord{Event: TestEvent{FullName: "n", BrowserID: "b"}}
	assert.Equal(t, "n.b", record.Identity())
}
