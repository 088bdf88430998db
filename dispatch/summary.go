package dispatch

import "fmt"

// Operation names used in unit failure reports.
const (
	OpPost           = "post"
	OpCreateResource = "create-resource"
	OpCreateEntity   = "create-entity"
	OpRetryPost      = "retry-post"
	OpUpdate         = "update"
)

// UnitFailure describes why one work unit was abandoned.
type UnitFailure struct {
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id"`
	MetricName   string `json:"metric_name"`
	Op           string `json:"op"`
	Code         int    `json:"code,omitempty"`
	Detail       string `json:"detail,omitempty"`
}

func (f UnitFailure) String() string {
	msg := fmt.Sprintf("%s failed for metric %s of resource %s", f.Op, f.MetricName, f.ResourceID)
	if f.Code > 0 {
		msg = fmt.Sprintf("%s with status %d", msg, f.Code)
	}
	if f.Detail != "" {
		msg += ": " + f.Detail
	}
	return msg
}

// Summary is the structured result of dispatching one batch. Dispatch never
// fails as a whole; per-unit failures are collected here so callers can see
// what best-effort delivery actually delivered.
type Summary struct {
	BatchID   string        `json:"batch_id"`
	Samples   int           `json:"samples"`
	Units     int           `json:"units"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Failures  []UnitFailure `json:"failures,omitempty"`
}
