// Package v1 implements the v1 of the gnocchid REST API.
package v1

import (
	"context"

	"github.com/gnocchid/gnocchid/dispatch"
	"github.com/gnocchid/gnocchid/metering"
)

// Batcher dispatches one batch of samples and reports what happened.
type Batcher interface {
	Dispatch(ctx context.Context, samples []metering.Sample) dispatch.Summary
}

// ControlSurface includes all the methods the REST API can use to communicate
// with the rest of the service.
type ControlSurface struct {
	Dispatcher Batcher
	Status     *StatusTracker
}
