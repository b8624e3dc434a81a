// Package adapter defines the capability set a test tool integration must
// provide for the reporter to classify and enrich raw result events.
package adapter

import "github.com/Klimanso/json-reporter/types"

// ToolAdapter is the pluggable integration point with the external test tool.
// The reporter calls it on every lifecycle event; it is the sole authority on
// tool-specific semantics such as whether a retried test actually failed.
type ToolAdapter interface {
	// ConfigureTestResult normalizes or enriches a raw event before it is
	// recorded. Implementations must preserve the event's identity fields and
	// must not mutate the input.
	ConfigureTestResult(event types.TestEvent) types.TestEvent

	// IsFailedTest classifies a retried test: true means the test logic
	// itself failed, false means a transient or tooling error.
	IsFailedTest(event types.TestEvent) bool

	// GetSkipReason returns the tool's reason for skipping the test
	GetSkipReason(event types.TestEvent) string
}
