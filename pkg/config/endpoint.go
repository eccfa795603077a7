package config

import (
	"maps"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Endpoint is the logical name of a backend operation
type Endpoint string

// Endpoints maps each logical endpoint to an absolute URL. The zero value
// has no endpoints; use NewEndpoints. It cannot be modified once built.
type Endpoints struct {
	base string
	urls map[Endpoint]string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	PresetSpecies  Endpoint = "preset-species"
	Diagnose       Endpoint = "diagnose"
	DiagnoseStream Endpoint = "diagnose-stream"
)

// Path suffixes, appended verbatim to the base URL
var paths = []struct {
	name Endpoint
	path string
}{
	{PresetSpecies, "/api/preset-species"},
	{Diagnose, "/api/diagnose"},
	{DiagnoseStream, "/api/diagnose/stream"},
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewEndpoints builds the endpoint map by concatenating base with each
// endpoint path
func NewEndpoints(base string) Endpoints {
	urls := make(map[Endpoint]string, len(paths))
	for _, p := range paths {
		urls[p.name] = base + p.path
	}
	return Endpoints{base: base, urls: urls}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Base returns the base URL the endpoints were built from
func (e Endpoints) Base() string {
	return e.base
}

// URL returns the absolute URL for an endpoint, or empty string if the
// endpoint is unknown
func (e Endpoints) URL(name Endpoint) string {
	return e.urls[name]
}

// Lookup returns the absolute URL for an endpoint and whether it exists
func (e Endpoints) Lookup(name Endpoint) (string, bool) {
	url, exists := e.urls[name]
	return url, exists
}

// Names returns the endpoint names in a fixed order
func (e Endpoints) Names() []Endpoint {
	result := make([]Endpoint, 0, len(paths))
	for _, p := range paths {
		if _, exists := e.urls[p.name]; exists {
			result = append(result, p.name)
		}
	}
	return result
}

// Map returns a copy of the endpoint map
func (e Endpoints) Map() map[Endpoint]string {
	return maps.Clone(e.urls)
}

func (e Endpoint) String() string {
	return string(e)
}
