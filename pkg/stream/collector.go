package stream

import (
	"slices"
	"strings"

	// Packages
	species "github.com/mutablelogic/go-species"
	schema "github.com/mutablelogic/go-species/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Collector assembles the events of one stream into a DiagnoseResponse
type Collector struct {
	response  schema.DiagnoseResponse
	diagnosis strings.Builder
	species   bool
	done      bool
	err       error
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Collect folds a single event into the response. Events after a done or
// error event are rejected with ErrProtocol.
func (c *Collector) Collect(event schema.Event) error {
	if c.done || c.err != nil {
		return species.ErrProtocol.Withf("%s event after end of stream", event.Type())
	}

	switch event := event.(type) {
	case schema.SpeciesEvent:
		c.species = true
		c.response.ObjectName = event.ObjectName
		c.response.DisplayName = event.DisplayName
		if c.response.DisplayName == "" {
			c.response.DisplayName = event.ObjectName
		}
		c.response.Keywords = slices.Clone(event.Keywords)
		if event.ImageURL != nil {
			c.response.ImageURL = *event.ImageURL
		}
	case schema.DiagnosisChunkEvent:
		c.diagnosis.WriteString(event.Chunk)
	case schema.ImageEvent:
		c.response.ImageURL = event.URL
	case schema.DoneEvent:
		c.response.SequenceNo = event.SequenceNo
		c.done = true
	case schema.ErrorEvent:
		c.err = species.ErrStream.With(event.Message)
	default:
		return species.ErrProtocol.Withf("unexpected event %T", event)
	}

	// Return success
	return nil
}

// Done returns true once a done event has been collected
func (c *Collector) Done() bool {
	return c.done
}

// HasSpecies returns true once a species event has been collected
func (c *Collector) HasSpecies() bool {
	return c.species
}

// Err returns the error reported by an error event, or nil
func (c *Collector) Err() error {
	return c.err
}

// Response returns the response assembled so far
func (c *Collector) Response() *schema.DiagnoseResponse {
	response := c.response
	response.Keywords = slices.Clone(c.response.Keywords)
	response.Diagnosis = c.diagnosis.String()
	return &response
}
