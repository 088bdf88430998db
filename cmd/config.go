package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mstoykov/envconfig"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"gopkg.in/guregu/null.v3"
	"gopkg.in/yaml.v3"

	"github.com/gnocchid/gnocchid/gnocchiapi"
)

// Config is the full service configuration.
type Config struct {
	Store   gnocchiapi.Config `json:"store"`
	Address null.String       `json:"address" envconfig:"GNOCCHID_ADDRESS"`
}

// NewConfig returns the built-in defaults.
func NewConfig() Config {
	return Config{
		Store:   gnocchiapi.NewConfig(),
		Address: null.NewString("localhost:8042", false),
	}
}

// Apply saves non-zero config values from the passed config in the receiver.
func (c Config) Apply(cfg Config) Config {
	c.Store = c.Store.Apply(cfg.Store)
	if cfg.Address.Valid && cfg.Address.String != "" {
		c.Address = cfg.Address
	}
	return c
}

// configFromFlags picks up the config values the user explicitly set on the
// command line. Unchanged flags stay invalid so they don't clobber file or
// environment values during consolidation.
func configFromFlags(flags *pflag.FlagSet) Config {
	conf := Config{}
	if flags.Changed("address") {
		v, _ := flags.GetString("address")
		conf.Address = null.StringFrom(v)
	}
	if flags.Changed("store-url") {
		v, _ := flags.GetString("store-url")
		conf.Store.URL = null.StringFrom(v)
	}
	if flags.Changed("policy") {
		v, _ := flags.GetString("policy")
		conf.Store.Policy = null.StringFrom(v)
	}
	return conf
}

// readConfigFile loads a config file, JSON or YAML by extension. YAML is
// decoded through a generic value and re-encoded as JSON, so the nullable
// config types only need JSON unmarshalling.
func readConfigFile(fs afero.Fs, path string) (Config, error) {
	conf := Config{}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return conf, fmt.Errorf("could not read config file: %w", err)
	}

	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		var generic interface{}
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return conf, fmt.Errorf("could not parse %s: %w", path, err)
		}
		data, err = json.Marshal(generic)
		if err != nil {
			return conf, err
		}
		fallthrough
	case ".json", "":
		if err := json.Unmarshal(data, &conf); err != nil {
			return conf, fmt.Errorf("could not parse %s: %w", path, err)
		}
	default:
		return conf, fmt.Errorf("unsupported config file extension '%s'", ext)
	}
	return conf, nil
}

// getConsolidatedConfig combines {defaults + config file + environment vars +
// CLI flags}, in increasing order of precedence, and returns the final result.
func getConsolidatedConfig(
	fs afero.Fs, env map[string]string, flags *pflag.FlagSet, configFilePath string,
) (Config, error) {
	result := NewConfig()

	if configFilePath == "" {
		configFilePath = env["GNOCCHID_CONFIG"]
	}
	if configFilePath != "" {
		fileConf, err := readConfigFile(fs, configFilePath)
		if err != nil {
			return result, err
		}
		result = result.Apply(fileConf)
	}

	envConfig := Config{}
	if err := envconfig.Process("", &envConfig, func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}); err != nil {
		return result, err
	}
	result = result.Apply(envConfig)

	if flags != nil {
		result = result.Apply(configFromFlags(flags))
	}

	return result, nil
}

func (c *rootCommand) loadConfig(flags *pflag.FlagSet) (Config, error) {
	return getConsolidatedConfig(c.fs, c.env, flags, c.configFilePath)
}
