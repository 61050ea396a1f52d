package nexus

import (
	"github.com/rs/zerolog"
)

// Option represents an option that can be used to augment how a Nexus is built.
// Config-level options override values loaded from the environment.
type Option struct {
	configOption func(*Config)
	nexusOption  func(*Nexus)
}

// WithName overrides the instance name used in log lines and metric tags. The default
// comes from NEXUS_NAME.
func WithName(name string) Option {
	return Option{configOption: func(c *Config) {
		c.NexusName = name
	}}
}

// WithLogLevel overrides the log level loaded from NEXUS_LOG_LEVEL.
func WithLogLevel(level string) Option {
	return Option{configOption: func(c *Config) {
		c.LogLevel = level
	}}
}

// WithPrettyLog switches log output to the human-readable console format. This should
// only be used for local development.
func WithPrettyLog() Option {
	return Option{configOption: func(c *Config) {
		c.LogPretty = true
	}}
}

// WithInitialCapacity pre-sizes the entity tables for callers that know their world
// size up front. The tables still grow on demand past this size.
func WithInitialCapacity(capacity int) Option {
	return Option{configOption: func(c *Config) {
		c.InitialCapacity = capacity
	}}
}

// WithStatsdAddress overrides the metric agent address loaded from
// NEXUS_STATSD_ADDRESS. An empty address disables metrics.
func WithStatsdAddress(address string) Option {
	return Option{configOption: func(c *Config) {
		c.StatsdAddress = address
	}}
}

// WithLogger replaces the logger New would otherwise build from config. Tests use
// this to capture log output.
func WithLogger(logger zerolog.Logger) Option {
	return Option{nexusOption: func(nx *Nexus) {
		nx.log = logger
	}}
}
