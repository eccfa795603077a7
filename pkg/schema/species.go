package schema

import (
	"strings"
	"unicode/utf8"

	// Packages
	species "github.com/mutablelogic/go-species"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// PresetSpecies is an entry of the preset species gallery
type PresetSpecies struct {
	ObjectName string `json:"object_name" jsonschema:"Species name"`
	ImageURL   string `json:"image_url" jsonschema:"Gallery image URL"`
}

// DiagnoseRequest is the body of a diagnose request
type DiagnoseRequest struct {
	Symptom string `json:"symptom" jsonschema:"Description of the current mood"`
}

// DiagnoseResponse is the complete result of a diagnosis, either returned
// in one response or assembled from the stream
type DiagnoseResponse struct {
	ObjectName  string   `json:"object_name" jsonschema:"Species name"`
	DisplayName string   `json:"display_name" jsonschema:"Personalised display name"`
	Keywords    []string `json:"keywords" jsonschema:"Keywords describing the species"`
	Diagnosis   string   `json:"diagnosis" jsonschema:"Diagnosis text"`
	ImageURL    string   `json:"image_url" jsonschema:"Species image URL"`
	SequenceNo  int      `json:"sequence_no" jsonschema:"Diagnosis sequence number"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	MinSymptomLength = 5
	MaxSymptomLength = 50
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// NewDiagnoseRequest returns a request for the symptom with surrounding
// whitespace removed, so the length checked is the length sent
func NewDiagnoseRequest(symptom string) DiagnoseRequest {
	return DiagnoseRequest{Symptom: strings.TrimSpace(symptom)}
}

// Validate checks the symptom length, counted in characters
func (r DiagnoseRequest) Validate() error {
	n := utf8.RuneCountInString(strings.TrimSpace(r.Symptom))
	if n < MinSymptomLength || n > MaxSymptomLength {
		return species.ErrBadParameter.Withf("symptom must be between %d and %d characters, got %d", MinSymptomLength, MaxSymptomLength, n)
	}
	return nil
}

// Name returns the display name, or the object name if there is no
// display name
func (r DiagnoseResponse) Name() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return r.ObjectName
}
