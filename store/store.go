// Package store holds the canonical mapping from test identity to the latest
// result record observed for it during a run.
package store

import "github.com/Klimanso/json-reporter/types"

// RecordStore keeps at most one TestRecord per test identity. It lives for
// the duration of a single run and is written out once at the end.
//
// The store does no locking: the reporter receives events serially even when
// the underlying tool runs tests concurrently, so callers are responsible for
// serializing access.
type RecordStore struct {
	table map[string]types.TestRecord
}

// NewRecordStore creates an empty record store
func NewRecordStore() *RecordStore {
	return &RecordStore{
		table: make(map[string]types.TestRecord),
	}
}

// Append stores the record under its derived identity, fully replacing any
// prior record for the same identity. Any record shape is accepted; records
// lacking both name parts collapse onto the empty key.
func (s *RecordStore) Append(record types.TestRecord) {
	s.table[record.Identity()] = record
}

// Snapshot returns a copy of the current table. Mutations after the snapshot
// is taken are not visible through it, so a persisted report reflects the
// store exactly as it was at snapshot time.
func (s *RecordStore) Snapshot() map[string]types.TestRecord {
	out := make(map[string]types.TestRecord, len(s.table))
	for identity, record := range s.table {
		out[identity] = record
	}
	return out
}

// Len returns the number of stored identities
func (s *RecordStore) Len() int {
	return len(s.table)
}
