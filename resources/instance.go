package resources

import "github.com/gnocchid/gnocchid/metering"

func init() {
	DefaultRegistry.Register(Instance{})
}

// Instance is the resource type for compute instances.
type Instance struct{}

// Name implements ResourceType.
func (Instance) Name() string { return "instance" }

// MetricNames implements ResourceType.
func (Instance) MetricNames() []string {
	return []string{
		"instance",
		"disk.root.size",
		"disk.ephemeral.size",
		"memory",
		"vcpus",
	}
}

// Attributes implements ResourceType. Missing metadata keys are omitted.
func (Instance) Attributes(s metering.Sample) map[string]interface{} {
	attrs := make(map[string]interface{})
	for _, key := range []string{"host", "display_name", "image_ref", "flavor_id"} {
		if v := s.MetadataString(key); v != "" {
			attrs[key] = v
		}
	}
	return attrs
}
