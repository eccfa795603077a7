/*
config resolves the backend base URL and derives the endpoint map.

The base URL is read once at process start, either from the API_BASE_URL
environment variable (optionally populated from a .env file) or from
DefaultBaseURL, and the resulting Config is passed to whatever needs it.
*/
package config

import (
	"os"
	"strings"
	"time"

	// Packages
	godotenv "github.com/joho/godotenv"
	log "github.com/rs/zerolog/log"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Config holds the client configuration
type Config struct {
	// Backend base URL, scheme+host+port with no trailing path
	BaseURL string `json:"base_url"`

	// Timeout for non-streaming requests, zero means no timeout
	Timeout time.Duration `json:"timeout,omitempty"`
}

// LookupFunc returns the value of an environment variable and whether it
// was set
type LookupFunc func(key string) (string, bool)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultBaseURL = "http://localhost:8000"
	EnvBaseURL     = "API_BASE_URL"
	EnvTimeout     = "API_TIMEOUT"
	envFile        = ".env"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a configuration for the given base URL, or the default
// base URL if empty
func New(base string) *Config {
	base = strings.TrimSpace(base)
	if base == "" {
		base = DefaultBaseURL
	}
	return &Config{
		BaseURL: base,
	}
}

// FromEnv loads an optional .env file and then reads the configuration
// from the process environment. Variables already set in the environment
// are not overwritten by the .env file.
func FromEnv() *Config {
	if err := godotenv.Load(envFile); err == nil {
		log.Debug().Str("file", envFile).Msg("loaded environment file")
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup reads the configuration using the given lookup function.
// An empty value is treated the same as an unset one.
func FromLookup(lookup LookupFunc) *Config {
	var base string
	if value, exists := lookup(EnvBaseURL); exists {
		base = value
	}
	config := New(base)

	// Timeout is optional, ignore invalid values
	if value, exists := lookup(EnvTimeout); exists && strings.TrimSpace(value) != "" {
		if timeout, err := time.ParseDuration(strings.TrimSpace(value)); err != nil {
			log.Warn().Err(err).Str("key", EnvTimeout).Msg("ignoring invalid timeout")
		} else if timeout > 0 {
			config.Timeout = timeout
		}
	}

	return config
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Endpoints builds the endpoint map for the configured base URL
func (c *Config) Endpoints() Endpoints {
	return NewEndpoints(c.BaseURL)
}
