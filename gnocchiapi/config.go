package gnocchiapi

import (
	"encoding/json"
	"time"

	"github.com/mstoykov/envconfig"
	"gopkg.in/guregu/null.v3"

	"github.com/gnocchid/gnocchid/lib/types"
)

// Config holds the connection options for the time-series store.
type Config struct {
	// URL is the base URL of the store's REST API.
	URL null.String `json:"url" envconfig:"GNOCCHID_STORE_URL"`

	// Policy is the retention/aggregation policy name bound to every metric
	// stream the dispatcher creates.
	Policy null.String `json:"policy" envconfig:"GNOCCHID_STORE_POLICY"`

	// Timeout bounds every single HTTP call made against the store.
	Timeout types.NullDuration `json:"timeout" envconfig:"GNOCCHID_STORE_TIMEOUT"`
}

// NewConfig creates a new Config instance with default values for some fields.
func NewConfig() Config {
	return Config{
		URL:     null.NewString("http://localhost:8041", false),
		Policy:  null.NewString("low", false),
		Timeout: types.NewNullDuration(10*time.Second, false),
	}
}

// Apply saves non-zero config values from the passed config in the receiver.
func (c Config) Apply(cfg Config) Config {
	if cfg.URL.Valid && cfg.URL.String != "" {
		c.URL = cfg.URL
	}
	if cfg.Policy.Valid && cfg.Policy.String != "" {
		c.Policy = cfg.Policy
	}
	if cfg.Timeout.Valid {
		c.Timeout = cfg.Timeout
	}
	return c
}

// ParseJSON parses the supplied JSON into a Config.
func ParseJSON(data []byte) (Config, error) {
	conf := Config{}
	err := json.Unmarshal(data, &conf)
	return conf, err
}

// GetConsolidatedConfig combines {default config values + JSON config +
// environment vars} and returns the final result.
func GetConsolidatedConfig(jsonRawConf json.RawMessage, env map[string]string) (Config, error) {
	result := NewConfig()
	if jsonRawConf != nil {
		jsonConf, err := ParseJSON(jsonRawConf)
		if err != nil {
			return result, err
		}
		result = result.Apply(jsonConf)
	}

	envConfig := Config{}
	if err := envconfig.Process("", &envConfig, func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}); err != nil {
		return result, err
	}
	result = result.Apply(envConfig)

	return result, nil
}
