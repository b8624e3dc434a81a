package reporter

import (
	"github.com/Klimanso/json-reporter/types"
)

// getResultString returns a short symbol-prefixed string for the test status
func getResultString(status types.TestStatus) string {
	switch status {
	case types.TestStatusSuccess:
		return "✓ success"
	case types.TestStatusSkipped:
		return "- skipped"
	case types.TestStatusError:
		return "! error"
	default:
		return "✗ fail"
	}
}
