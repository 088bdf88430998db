package dispatch

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnocchid/gnocchid/metering"
)

func sample(resourceID, metricName string, value float64) metering.Sample {
	return metering.Sample{ResourceID: resourceID, MetricName: metricName, Value: value}
}

func TestGroupSamplesEmpty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, GroupSamples(nil))
	assert.Empty(t, GroupSamples([]metering.Sample{}))
}

func TestGroupSamplesOrder(t *testing.T) {
	t.Parallel()
	batch := []metering.Sample{
		sample("r1", "cpu", 1),
		sample("r2", "mem", 2),
		sample("r1", "mem", 3),
		sample("r1", "cpu", 4),
		sample("r2", "mem", 5),
		sample("r1", "cpu", 6),
	}

	groups := GroupSamples(batch)
	require.Len(t, groups, 2)

	// first-seen order of resources and of metrics within a resource
	assert.Equal(t, "r1", groups[0].ResourceID)
	assert.Equal(t, "r2", groups[1].ResourceID)
	require.Len(t, groups[0].Metrics, 2)
	assert.Equal(t, "cpu", groups[0].Metrics[0].MetricName)
	assert.Equal(t, "mem", groups[0].Metrics[1].MetricName)

	// original relative order within a (resource, metric) pair
	values := func(mg MetricGroup) []float64 {
		vs := make([]float64, len(mg.Samples))
		for i, s := range mg.Samples {
			vs[i] = s.Value
		}
		return vs
	}
	assert.Equal(t, []float64{1, 4, 6}, values(groups[0].Metrics[0]))
	assert.Equal(t, []float64{3}, values(groups[0].Metrics[1]))
	assert.Equal(t, []float64{2, 5}, values(groups[1].Metrics[0]))
}

func TestGroupSamplesNoLossNoDuplication(t *testing.T) {
	t.Parallel()
	var batch []metering.Sample
	for i := 0; i < 100; i++ {
		batch = append(batch, sample(
			fmt.Sprintf("r%d", i%7),
			fmt.Sprintf("m%d", i%3),
			float64(i),
		))
	}

	total := 0
	seen := make(map[float64]bool)
	for _, rg := range GroupSamples(batch) {
		for _, mg := range rg.Metrics {
			for _, s := range mg.Samples {
				total++
				assert.False(t, seen[s.Value], "sample %v duplicated", s.Value)
				seen[s.Value] = true
			}
		}
	}
	assert.Equal(t, len(batch), total)
}
