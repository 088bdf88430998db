// Package metering contains the domain types for metering samples, the raw
// metric readings that get dispatched to the time-series store.
package metering

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// A Sample is a single metric reading for a monitored resource. Samples are
// produced upstream and are read-only once received; the dispatch workflow
// never mutates them.
type Sample struct {
	ResourceID string    `json:"resource_id"`
	MetricName string    `json:"metric_name"`
	Timestamp  time.Time `json:"timestamp"`
	Value      float64   `json:"value"`
	UserID     string    `json:"user_id"`
	ProjectID  string    `json:"project_id"`

	// Metadata carries resource-specific attributes (hypervisor host, image
	// ref, display name, ...) that resource-type plugins extract resource
	// attributes from. Optional.
	Metadata map[string]interface{} `json:"resource_metadata,omitempty"`
}

// Validate checks the dispatch input contract: every sample must carry a
// resource ID and a metric name.
func (s Sample) Validate() error {
	if s.ResourceID == "" {
		return errors.New("sample has no resource_id")
	}
	if s.MetricName == "" {
		return fmt.Errorf("sample for resource %s has no metric_name", s.ResourceID)
	}
	return nil
}

// MetadataString returns the metadata value for key if it is present and a
// string, or "" otherwise.
func (s Sample) MetadataString(key string) string {
	if v, ok := s.Metadata[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

// ParseBatch decodes a JSON array of samples and validates each of them.
func ParseBatch(data []byte) ([]Sample, error) {
	var samples []Sample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("could not decode sample batch: %w", err)
	}
	for i := range samples {
		if err := samples[i].Validate(); err != nil {
			return nil, fmt.Errorf("sample #%d: %w", i, err)
		}
	}
	return samples, nil
}
