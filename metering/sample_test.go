package metering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleValidate(t *testing.T) {
	t.Parallel()
	testdata := map[string]struct {
		sample Sample
		errStr string
	}{
		"ok":          {Sample{ResourceID: "inst-1", MetricName: "vcpus"}, ""},
		"no resource": {Sample{MetricName: "vcpus"}, "sample has no resource_id"},
		"no metric":   {Sample{ResourceID: "inst-1"}, "sample for resource inst-1 has no metric_name"},
	}
	for name, data := range testdata {
		name, data := name, data
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := data.sample.Validate()
			if data.errStr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, data.errStr)
			}
		})
	}
}

func TestSampleMetadataString(t *testing.T) {
	t.Parallel()
	s := Sample{Metadata: map[string]interface{}{
		"host":      "compute-3",
		"flavor_id": float64(42),
	}}
	assert.Equal(t, "compute-3", s.MetadataString("host"))
	assert.Equal(t, "", s.MetadataString("flavor_id"))
	assert.Equal(t, "", s.MetadataString("missing"))
}

func TestParseBatch(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		data := []byte(`[
			{"resource_id": "inst-1", "metric_name": "vcpus",
			 "timestamp": "2015-03-06T14:33:57Z", "value": 2,
			 "user_id": "alice", "project_id": "proj-a",
			 "resource_metadata": {"host": "compute-3"}}
		]`)
		samples, err := ParseBatch(data)
		require.NoError(t, err)
		require.Len(t, samples, 1)
		assert.Equal(t, "inst-1", samples[0].ResourceID)
		assert.Equal(t, "vcpus", samples[0].MetricName)
		assert.Equal(t, 2.0, samples[0].Value)
		assert.Equal(t, time.Date(2015, 3, 6, 14, 33, 57, 0, time.UTC), samples[0].Timestamp)
		assert.Equal(t, "compute-3", samples[0].MetadataString("host"))
	})

	t.Run("bad JSON", func(t *testing.T) {
		t.Parallel()
		_, err := ParseBatch([]byte(`{`))
		assert.ErrorContains(t, err, "could not decode sample batch")
	})

	t.Run("contract violation", func(t *testing.T) {
		t.Parallel()
		_, err := ParseBatch([]byte(`[{"metric_name": "vcpus"}]`))
		assert.ErrorContains(t, err, "sample #0")
	})
}
