package metrics

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/Klimanso/json-reporter/types"
)

func TestErrToLabel(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{
			name: "nil error",
			err:  nil,
		},
		{
			name: "simple error",
			err:  errors.New("write error"),
		},
		{
			name: "error with special chars",
			err:  errors.New("write@error#123"),
		},
		{
			name: "error with multiple spaces",
			err:  errors.New("write   error"),
		},
		{
			name: "error with multiple underscores",
			err:  errors.New("write__error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := errToLabel(tt.err)
			validLabelRegex := regexp.MustCompile(`[a-zA-Z_][a-zA-Z0-9_]*`)
			if !validLabelRegex.MatchString(result) {
				t.Errorf("errToLabel() = %v, is not a valid Prometheus label", result)
			}
		})
	}
}

func TestRecordError(t *testing.T) {
	// just test that it doesn't panic
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("RecordError panic'd")
		}
	}()

	RecordError("test_error")
}

func TestRecordErrorDetails(t *testing.T) {
	// Test with nil error
	RecordErrorDetails("persist", nil)

	// Test with actual error
	RecordErrorDetails("persist", errors.New("disk full"))
}

func TestRecordResult(t *testing.T) {
	RecordResult("run1", types.TestStatusSuccess)
	RecordResult("run1", types.TestStatusFail)
	RecordResult("run1", types.TestStatusSkipped)
	RecordResult("run1", types.TestStatusError)

	// Invalid statuses are dropped, not recorded
	RecordResult("run1", types.TestStatus("bogus"))
}

func TestRecordPersistFailure(t *testing.T) {
	RecordPersistFailure(errors.New("permission denied"))
}

func TestRecordRun(t *testing.T) {
	RecordRun("run1", 12, 3*time.Second)
	RecordRun("run2", 0, 0)
}

func TestRecordStreamLine(t *testing.T) {
	RecordStreamLine("run1", "success")
	RecordStreamLine("run1", "unknown")
}
