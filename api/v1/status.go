package v1

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gnocchid/gnocchid/dispatch"
)

// StatusTracker accumulates service-level counters across batches.
type StatusTracker struct {
	mutex          sync.Mutex
	started        time.Time
	batches        int64
	samples        int64
	unitsSucceeded int64
	unitsFailed    int64
}

// NewStatusTracker returns a tracker with the uptime clock started.
func NewStatusTracker() *StatusTracker {
	return &StatusTracker{started: time.Now()}
}

// RecordBatch folds one dispatch summary into the counters.
func (st *StatusTracker) RecordBatch(summary dispatch.Summary) {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	st.batches++
	st.samples += int64(summary.Samples)
	st.unitsSucceeded += int64(summary.Succeeded)
	st.unitsFailed += int64(summary.Failed)
}

// Status is the wire form of the service counters.
type Status struct {
	UptimeSeconds  int64 `json:"uptime_seconds"`
	Batches        int64 `json:"batches"`
	Samples        int64 `json:"samples"`
	UnitsSucceeded int64 `json:"units_succeeded"`
	UnitsFailed    int64 `json:"units_failed"`
}

// Snapshot returns the current counters.
func (st *StatusTracker) Snapshot() Status {
	st.mutex.Lock()
	defer st.mutex.Unlock()
	return Status{
		UptimeSeconds:  int64(time.Since(st.started).Seconds()),
		Batches:        st.batches,
		Samples:        st.samples,
		UnitsSucceeded: st.unitsSucceeded,
		UnitsFailed:    st.unitsFailed,
	}
}

// MarshalJSON makes the tracker directly serialisable as its snapshot.
func (st *StatusTracker) MarshalJSON() ([]byte, error) {
	return json.Marshal(st.Snapshot())
}
