package adapter

import (
	"github.com/acarl005/stripansi"

	"github.com/Klimanso/json-reporter/types"
)

// Passthrough fields the default adapter interprets.
const (
	FieldFailed     = "failed"
	FieldSkipReason = "skipReason"
)

// DefaultAdapter implements ToolAdapter for testplane/hermione-style event
// streams, where classification data rides along on the event itself.
type DefaultAdapter struct{}

var _ ToolAdapter = DefaultAdapter{}

// NewDefaultAdapter creates the adapter used when no tool-specific
// integration is configured.
func NewDefaultAdapter() DefaultAdapter {
	return DefaultAdapter{}
}

// ConfigureTestResult strips ANSI escape sequences from the message and stack
// fields. Browser test tools color their assertion output; the persisted
// report should hold plain text.
func (DefaultAdapter) ConfigureTestResult(event types.TestEvent) types.TestEvent {
	out := event.Clone()
	out.Message = stripansi.Strip(out.Message)
	out.Stack = stripansi.Strip(out.Stack)
	return out
}

// IsFailedTest reads the boolean "failed" passthrough field. Absent or
// non-boolean values classify as a tooling error rather than a test failure.
func (DefaultAdapter) IsFailedTest(event types.TestEvent) bool {
	return event.ExtraBool(FieldFailed)
}

// GetSkipReason reads the "skipReason" passthrough field
func (DefaultAdapter) GetSkipReason(event types.TestEvent) string {
	return event.ExtraString(FieldSkipReason)
}
