package resources

import "github.com/gnocchid/gnocchid/metering"

func init() {
	DefaultRegistry.Register(Volume{})
}

// Volume is the resource type for block-storage volumes.
type Volume struct{}

// Name implements ResourceType.
func (Volume) Name() string { return "volume" }

// MetricNames implements ResourceType.
func (Volume) MetricNames() []string {
	return []string{"volume", "volume.size"}
}

// Attributes implements ResourceType.
func (Volume) Attributes(s metering.Sample) map[string]interface{} {
	attrs := make(map[string]interface{})
	if v := s.MetadataString("display_name"); v != "" {
		attrs["display_name"] = v
	}
	return attrs
}
