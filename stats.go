package reporter

import "github.com/Klimanso/json-reporter/types"

// SnapshotStats aggregates record counts per terminal status
type SnapshotStats struct {
	Total   int
	Success int
	Failed  int
	Skipped int
	Errored int
}

// ComputeStats counts the records of a snapshot by status
func ComputeStats(records map[string]types.TestRecord) SnapshotStats {
	var stats SnapshotStats
	for _, rec := range records {
		stats.Total++
		switch rec.Status {
		case types.TestStatusSuccess:
			stats.Success++
		case types.TestStatusFail:
			stats.Failed++
		case types.TestStatusSkipped:
			stats.Skipped++
		case types.TestStatusError:
			stats.Errored++
		}
	}
	return stats
}

// HasFailures reports whether any record counts against the run outcome
func (s SnapshotStats) HasFailures() bool {
	return s.Failed+s.Errored > 0
}

// Overall determines the run-level status for the snapshot
func (s SnapshotStats) Overall() types.TestStatus {
	if s.HasFailures() {
		return types.TestStatusFail
	}
	if s.Success == 0 && s.Skipped > 0 {
		return types.TestStatusSkipped
	}
	return types.TestStatusSuccess
}
