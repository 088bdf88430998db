package gnocchiapi

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v3"

	"github.com/gnocchid/gnocchid/lib/types"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()
	conf := NewConfig()
	assert.Equal(t, "http://localhost:8041", conf.URL.String)
	assert.False(t, conf.URL.Valid)
	assert.Equal(t, "low", conf.Policy.String)
	assert.Equal(t, 10*time.Second, conf.Timeout.TimeDuration())
}

func TestConfigApply(t *testing.T) {
	t.Parallel()
	conf := NewConfig().Apply(Config{
		URL:    null.StringFrom("http://store.example:8041"),
		Policy: null.StringFrom("medium"),
	})
	assert.Equal(t, "http://store.example:8041", conf.URL.String)
	assert.Equal(t, "medium", conf.Policy.String)
	// untouched fields keep their defaults
	assert.Equal(t, 10*time.Second, conf.Timeout.TimeDuration())

	// empty strings don't override
	conf = conf.Apply(Config{URL: null.StringFrom("")})
	assert.Equal(t, "http://store.example:8041", conf.URL.String)
}

func TestGetConsolidatedConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults only", func(t *testing.T) {
		t.Parallel()
		conf, err := GetConsolidatedConfig(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8041", conf.URL.String)
		assert.Equal(t, "low", conf.Policy.String)
	})

	t.Run("env overrides JSON", func(t *testing.T) {
		t.Parallel()
		jsonConf := json.RawMessage(`{"url": "http://json:8041", "policy": "high", "timeout": "30s"}`)
		env := map[string]string{"GNOCCHID_STORE_URL": "http://env:8041"}
		conf, err := GetConsolidatedConfig(jsonConf, env)
		require.NoError(t, err)
		assert.Equal(t, "http://env:8041", conf.URL.String)
		assert.Equal(t, "high", conf.Policy.String)
		assert.Equal(t, types.NullDurationFrom(30*time.Second), conf.Timeout)
	})

	t.Run("bad JSON", func(t *testing.T) {
		t.Parallel()
		_, err := GetConsolidatedConfig(json.RawMessage(`{`), nil)
		assert.Error(t, err)
	})
}
