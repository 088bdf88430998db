package resources

import "github.com/gnocchid/gnocchid/metering"

func init() {
	DefaultRegistry.Register(SwiftAccount{})
}

// SwiftAccount is the resource type for object-storage accounts.
type SwiftAccount struct{}

// Name implements ResourceType.
func (SwiftAccount) Name() string { return "swift_account" }

// MetricNames implements ResourceType.
func (SwiftAccount) MetricNames() []string {
	return []string{
		"storage.objects",
		"storage.objects.size",
		"storage.objects.containers",
		"storage.objects.incoming.bytes",
		"storage.objects.outgoing.bytes",
	}
}

// Attributes implements ResourceType. Object-storage accounts carry no extra
// attributes beyond their identity.
func (SwiftAccount) Attributes(metering.Sample) map[string]interface{} {
	return nil
}
