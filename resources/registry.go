// Package resources maps resource-type names to the capability needed by the
// dispatch workflow: which metric names a type owns, and how to derive
// resource attributes from a sample. Types register themselves in the
// DefaultRegistry from init(), the same way collector modules do in agent
// plugins.
package resources

import (
	"fmt"

	"github.com/gnocchid/gnocchid/metering"
)

// ResourceType describes one kind of monitored resource.
type ResourceType interface {
	// Name is the resource-type tag used in store URLs.
	Name() string

	// MetricNames enumerates the metric streams a resource of this type owns.
	MetricNames() []string

	// Attributes derives the type-specific resource attributes (host, image
	// ref, ...) from a sample's metadata. Identity fields and policy bindings
	// are added separately by BuildAttributes.
	Attributes(s metering.Sample) map[string]interface{}
}

// Registry is a collection of resource types, preserving registration order
// so the workflow visits multiple claimants of a metric deterministically.
type Registry struct {
	types map[string]ResourceType
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]ResourceType)}
}

// DefaultRegistry holds the built-in resource types.
var DefaultRegistry = NewRegistry()

// Register adds a resource type to the registry. Registering the same name
// twice panics, like duplicate expvar or http handler registrations do.
func (r *Registry) Register(rt ResourceType) {
	name := rt.Name()
	if _, ok := r.types[name]; ok {
		panic(fmt.Sprintf("resource type %q is already registered", name))
	}
	r.types[name] = rt
	r.order = append(r.order, name)
}

// Lookup returns the resource type registered under name.
func (r *Registry) Lookup(name string) (ResourceType, bool) {
	rt, ok := r.types[name]
	return rt, ok
}

// Names returns the registered type names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// TypesForMetric returns every registered type that owns the given metric
// name, in registration order. More than one type may legitimately claim the
// same metric; the workflow runs its protocol once per match.
func (r *Registry) TypesForMetric(metricName string) []ResourceType {
	var matches []ResourceType
	for _, name := range r.order {
		rt := r.types[name]
		for _, m := range rt.MetricNames() {
			if m == metricName {
				matches = append(matches, rt)
				break
			}
		}
	}
	return matches
}

// BuildAttributes returns the resource attribute document for a create or an
// update. The update variant carries only the attributes extracted from the
// sample. The create variant additionally carries the identity fields and a
// policy binding for every metric stream the type owns, so creation
// provisions the whole resource in one call. Attributes come from the single
// sample the caller picked (the workflow uses the group's last one).
func BuildAttributes(
	rt ResourceType, resourceID string, s metering.Sample,
	policyBinding map[string]string, forUpdate bool,
) map[string]interface{} {
	attrs := rt.Attributes(s)
	if attrs == nil {
		attrs = make(map[string]interface{})
	}
	if forUpdate {
		return attrs
	}

	entities := make(map[string]interface{})
	for _, metricName := range rt.MetricNames() {
		entities[metricName] = policyBinding
	}
	attrs["id"] = resourceID
	attrs["user_id"] = s.UserID
	attrs["project_id"] = s.ProjectID
	attrs["entities"] = entities
	return attrs
}
