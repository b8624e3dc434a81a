package types

// TestStatus represents the terminal states of a test execution
type TestStatus string

const (
	TestStatusSuccess TestStatus = "success"
	TestStatusFail    TestStatus = "fail"
	TestStatusSkipped TestStatus = "skipped"
	TestStatusError   TestStatus = "error"
)

// IsFailure reports whether the status counts against the run outcome
func (s TestStatus) IsFailure() bool {
	return s == TestStatusFail || s == TestStatusError
}

// IsValid reports whether s is one of the recognized terminal statuses
func (s TestStatus) IsValid() bool {
	switch s {
	case TestStatusSuccess, TestStatusFail, TestStatusSkipped, TestStatusError:
		return true
	default:
		return false
	}
}
