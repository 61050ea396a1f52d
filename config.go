package nexus

import (
	"github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

const (
	// DefaultLogLevel is used when NEXUS_LOG_LEVEL is unset.
	DefaultLogLevel = "info"
	// DefaultRedisAddress is used when NEXUS_REDIS_ADDRESS is unset.
	DefaultRedisAddress = "localhost:6379"
	// DefaultInitialCapacity pre-sizes the entity tables when NEXUS_INITIAL_CAPACITY is unset.
	DefaultInitialCapacity = 1024
)

var defaultConfig = Config{
	NexusName:       "nexus",
	LogLevel:        DefaultLogLevel,
	LogPretty:       false,
	RedisAddress:    DefaultRedisAddress,
	RedisPassword:   "",
	StatsdAddress:   "",
	InitialCapacity: DefaultInitialCapacity,
}

// Config is the engine configuration. New loads it from the environment; every field
// has a fallback, so an empty environment is valid.
type Config struct {
	// NexusName tags log lines and metrics emitted by this instance.
	NexusName string `config:"NEXUS_NAME"`
	// LogLevel must be one of zerolog's level strings.
	LogLevel string `config:"NEXUS_LOG_LEVEL"`
	// LogPretty switches log output from JSON to the human-readable console format.
	LogPretty bool `config:"NEXUS_LOG_PRETTY"`
	// RedisAddress is handed to snapshot stores opened from this config.
	RedisAddress string `config:"NEXUS_REDIS_ADDRESS"`
	// RedisPassword is the password for RedisAddress, empty when the server has none.
	RedisPassword string `config:"NEXUS_REDIS_PASSWORD"`
	// StatsdAddress enables metric emission when set. Empty disables metrics.
	StatsdAddress string `config:"NEXUS_STATSD_ADDRESS"`
	// InitialCapacity pre-sizes the entity tables.
	InitialCapacity int `config:"NEXUS_INITIAL_CAPACITY"`
}

// loadConfig loads the nexus configuration from environment variables, falling back
// to defaultConfig for anything unset.
func loadConfig() (*Config, error) {
	cfg := defaultConfig
	if err := config.FromEnv().To(&cfg); err != nil {
		return nil, eris.Wrap(err, "")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the constraints that individual field parsing cannot.
func (c *Config) Validate() error {
	if c.NexusName == "" {
		return eris.New("nexus name must not be empty")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return eris.Wrap(err, "invalid log level")
	}
	if c.InitialCapacity < 0 {
		return eris.Errorf("initial capacity must not be negative, got %d", c.InitialCapacity)
	}
	return nil
}
