// Package exitcodes defines the standard exit codes used by json-reporter.
package exitcodes

// Exit code constants used by json-reporter
// These constants define the exit codes that the application uses to indicate
// various states when it exits:
//
// * Success (0): Used when the report was produced and no failures were recorded
// * TestFailure (1): Used when the report contains failed or errored tests
// * RuntimeErr (2): Used for runtime errors such as bad configuration or unreadable input
const (
	Success     = 0 // Report produced, no failures recorded
	TestFailure = 1 // Report contains failed or errored tests
	RuntimeErr  = 2 // Runtime errors such as bad configuration
)
