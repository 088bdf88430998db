package dispatch

import "github.com/gnocchid/gnocchid/metering"

// MetricGroup is the ordered run of samples for one metric of one resource.
type MetricGroup struct {
	MetricName string
	Samples    []metering.Sample
}

// ResourceGroup collects the metric groups of one resource.
type ResourceGroup struct {
	ResourceID string
	Metrics    []MetricGroup
}

// GroupSamples partitions a batch by resource ID and then by metric name.
// Resource IDs keep their first-seen order, metric names keep their
// first-seen order within a resource, and samples keep their original
// relative order within a (resource, metric) pair. The transform is pure: no
// sample is dropped, duplicated or reordered across group boundaries.
func GroupSamples(samples []metering.Sample) []ResourceGroup {
	var groups []ResourceGroup
	resourceIdx := make(map[string]int)
	metricIdx := make(map[string]map[string]int)

	for _, s := range samples {
		ri, seen := resourceIdx[s.ResourceID]
		if !seen {
			ri = len(groups)
			resourceIdx[s.ResourceID] = ri
			metricIdx[s.ResourceID] = make(map[string]int)
			groups = append(groups, ResourceGroup{ResourceID: s.ResourceID})
		}

		metrics := metricIdx[s.ResourceID]
		mi, seen := metrics[s.MetricName]
		if !seen {
			mi = len(groups[ri].Metrics)
			metrics[s.MetricName] = mi
			groups[ri].Metrics = append(groups[ri].Metrics, MetricGroup{MetricName: s.MetricName})
		}

		groups[ri].Metrics[mi].Samples = append(groups[ri].Metrics[mi].Samples, s)
	}

	return groups
}
