package stats

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollectorCounts(t *testing.T) {
	t.Parallel()
	c := New()
	c.UnitSucceeded()
	c.UnitSucceeded()
	c.UnitFailed()
	c.MeasuresPosted(5)
	c.ResourceCreated()
	c.EntityCreated()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.unitsSucceeded))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.unitsFailed))
	assert.Equal(t, 5.0, testutil.ToFloat64(c.measuresPosted))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.resourcesCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.entitiesCreated))
}

func TestNilCollectorIsNoop(t *testing.T) {
	t.Parallel()
	var c *Collector
	assert.NotPanics(t, func() {
		c.UnitSucceeded()
		c.UnitFailed()
		c.MeasuresPosted(1)
		c.ResourceCreated()
		c.EntityCreated()
		c.ObserveDispatch(time.Second)
	})
	assert.Nil(t, c.Registry())
}
