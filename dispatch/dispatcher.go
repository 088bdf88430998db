// Package dispatch implements the sample-dispatch workflow: it groups a batch
// of metering samples into per-(resource, metric) work units and drives the
// create/post/retry protocol against the time-series store for each of them.
//
// The protocol is optimistic: the steady-state post costs a single HTTP call,
// and only the first write for a resource or metric stream pays for the
// discovery and creation round trips. Creation conflicts are benign races
// with other writers and are treated as success.
package dispatch

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gnocchid/gnocchid/gnocchiapi"
	"github.com/gnocchid/gnocchid/metering"
	"github.com/gnocchid/gnocchid/resources"
	"github.com/gnocchid/gnocchid/stats"
)

// StoreClient is the part of the store API the workflow drives.
type StoreClient interface {
	PolicyBinding() map[string]string
	PostMeasures(ctx context.Context, resourceType, resourceID, metricName string, payload []byte) (gnocchiapi.Result, error)
	CreateResource(ctx context.Context, resourceType string, attrs map[string]interface{}) (gnocchiapi.Result, error)
	UpdateResource(ctx context.Context, resourceType, resourceID string, attrs map[string]interface{}) (gnocchiapi.Result, error)
	CreateEntity(ctx context.Context, resourceType, resourceID, metricName string) (gnocchiapi.Result, error)
}

var _ StoreClient = &gnocchiapi.Client{}

// Dispatcher drives the workflow. All dependencies are read-only after New,
// so a single Dispatcher is safe for concurrent Dispatch calls.
type Dispatcher struct {
	client   StoreClient
	registry *resources.Registry
	stats    *stats.Collector
	logger   logrus.FieldLogger
}

// New returns a Dispatcher. The stats collector may be nil.
func New(
	logger logrus.FieldLogger, client StoreClient,
	registry *resources.Registry, collector *stats.Collector,
) *Dispatcher {
	return &Dispatcher{
		client:   client,
		registry: registry,
		stats:    collector,
		logger:   logger,
	}
}

// measure is the wire form of one measurement.
type measure struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// Dispatch records a batch of samples in the store, best effort. It never
// fails as a whole: a unit hitting an unexpected store response is logged,
// counted in the returned Summary and abandoned, and its sibling units keep
// going. Units run sequentially; each one only touches its own store keys.
func (d *Dispatcher) Dispatch(ctx context.Context, samples []metering.Sample) Summary {
	start := time.Now()
	defer func() { d.stats.ObserveDispatch(time.Since(start)) }()

	summary := Summary{BatchID: uuid.NewString(), Samples: len(samples)}
	logger := d.logger.WithField("batch_id", summary.BatchID)

	for _, rg := range GroupSamples(samples) {
		// Every metric group of a resource starts out needing an update;
		// only its own resource creation clears the flag. Coalescing the
		// updates across groups would assume all metric groups carry the
		// same metadata, which is not guaranteed.
		resourceNeedsUpdate := true

		for _, mg := range rg.Metrics {
			claimants := d.registry.TypesForMetric(mg.MetricName)
			if len(claimants) == 0 {
				logger.WithField("metric_name", mg.MetricName).
					Debug("no resource type claims this metric, skipping")
				continue
			}
			if len(claimants) > 1 {
				logger.WithField("metric_name", mg.MetricName).
					Debugf("%d resource types claim this metric, dispatching once per type", len(claimants))
			}

			for _, rt := range claimants {
				summary.Units++
				if failure := d.processUnit(ctx, logger, rt, rg.ResourceID, mg, resourceNeedsUpdate); failure != nil {
					summary.Failed++
					summary.Failures = append(summary.Failures, *failure)
					d.stats.UnitFailed()
				} else {
					summary.Succeeded++
					d.stats.UnitSucceeded()
				}
			}
		}
	}

	return summary
}

// processUnit runs the create/post/retry protocol for one work unit and
// returns nil on success or the failure that made it abandon the unit.
func (d *Dispatcher) processUnit(
	ctx context.Context, logger logrus.FieldLogger, rt resources.ResourceType,
	resourceID string, mg MetricGroup, resourceNeedsUpdate bool,
) *UnitFailure {
	resourceType := rt.Name()
	logger = logger.WithFields(logrus.Fields{
		"resource_type": resourceType,
		"resource_id":   resourceID,
		"metric_name":   mg.MetricName,
	})

	fail := func(op string, res gnocchiapi.Result, err error) *UnitFailure {
		failure := &UnitFailure{
			ResourceType: resourceType,
			ResourceID:   resourceID,
			MetricName:   mg.MetricName,
			Op:           op,
		}
		if err != nil {
			failure.Detail = err.Error()
		} else {
			failure.Code = res.Code
			failure.Detail = res.Body
		}
		logger.Error(failure.String())
		return failure
	}

	// The payload is marshalled exactly once so the retry after recovery
	// sends byte-identical bytes.
	measures := make([]measure, len(mg.Samples))
	for i, s := range mg.Samples {
		measures[i] = measure{Timestamp: s.Timestamp, Value: s.Value}
	}
	payload, err := json.Marshal(measures)
	if err != nil {
		return fail(OpPost, gnocchiapi.Result{}, err)
	}

	// The group's last sample wins attribute conflicts; attributes are not
	// merged across samples.
	last := mg.Samples[len(mg.Samples)-1]

	res, err := d.client.PostMeasures(ctx, resourceType, resourceID, mg.MetricName, payload)
	switch {
	case err != nil, res.Status == gnocchiapi.Failure:
		return fail(OpPost, res, err)

	case res.Status == gnocchiapi.Missing:
		logger.WithField("status", res.Code).Debug("metric stream or resource does not exist yet")

		// Try to create the resource first: a missing resource is the more
		// likely cause than a missing stream on an existing resource, so
		// this order usually saves a call. Both orders are safe, since
		// creation conflicts are treated as benign races.
		attrs := resources.BuildAttributes(rt, resourceID, last, d.client.PolicyBinding(), false)
		cres, err := d.client.CreateResource(ctx, resourceType, attrs)
		switch {
		case err != nil, cres.Status == gnocchiapi.Failure:
			return fail(OpCreateResource, cres, err)
		case cres.Status == gnocchiapi.Conflict:
			logger.Debug("resource already exists, creating the metric stream")
			eres, err := d.client.CreateEntity(ctx, resourceType, resourceID, mg.MetricName)
			switch {
			case err != nil, eres.Status == gnocchiapi.Failure:
				return fail(OpCreateEntity, eres, err)
			case eres.Status == gnocchiapi.Conflict:
				// Another writer created the stream in the meantime.
				logger.Debug("metric stream already exists")
			default:
				logger.Debug("metric stream created")
				d.stats.EntityCreated()
			}
		default:
			logger.Debug("resource created")
			d.stats.ResourceCreated()
			// Creation provisioned the resource with everything the type
			// owns, so the trailing update would be redundant.
			resourceNeedsUpdate = false
		}

		// Retry the post with the same payload. Nothing is recoverable at
		// this point: even a second 404 is an unexpected failure.
		rres, err := d.client.PostMeasures(ctx, resourceType, resourceID, mg.MetricName, payload)
		if err != nil || rres.Status != gnocchiapi.OK {
			return fail(OpRetryPost, rres, err)
		}
	}

	logger.WithField("measures", len(measures)).Debug("measures posted")
	d.stats.MeasuresPosted(len(measures))

	if resourceNeedsUpdate {
		attrs := resources.BuildAttributes(rt, resourceID, last, d.client.PolicyBinding(), true)
		ures, err := d.client.UpdateResource(ctx, resourceType, resourceID, attrs)
		if err != nil || ures.Status != gnocchiapi.OK {
			return fail(OpUpdate, ures, err)
		}
		logger.Debug("resource updated")
	}

	return nil
}
