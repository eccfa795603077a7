// Package view implements the home and result pages of the species
// frontend as plain terminal output.
package view

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	// Packages
	lipgloss "github.com/charmbracelet/lipgloss"
	species "github.com/mutablelogic/go-species"
	router "github.com/mutablelogic/go-species/pkg/router"
	schema "github.com/mutablelogic/go-species/pkg/schema"
	stream "github.com/mutablelogic/go-species/pkg/stream"
	table "github.com/mutablelogic/go-species/pkg/ui/table"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// SpeciesLister returns the preset species gallery
type SpeciesLister interface {
	PresetSpecies(ctx context.Context) ([]schema.PresetSpecies, error)
}

// Diagnoser returns a diagnosis for a symptom, either at once or as a
// stream of events
type Diagnoser interface {
	Diagnose(ctx context.Context, symptom string) (*schema.DiagnoseResponse, error)
	DiagnoseStream(ctx context.Context, symptom string, fn stream.EventFn) (*schema.DiagnoseResponse, error)
}

// Home renders the preset species gallery
type Home struct {
	client SpeciesLister
}

// Result renders the diagnosis for the "symptom" query value
type Result struct {
	client Diagnoser
	stream bool
}

var _ router.View = (*Home)(nil)
var _ router.View = (*Result)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	QuerySymptom = "symptom"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func NewHome(client SpeciesLister) *Home {
	return &Home{client: client}
}

// NewResult returns the result view. When stream is true the diagnosis is
// written as it arrives.
func NewResult(client Diagnoser, stream bool) *Result {
	return &Result{client: client, stream: stream}
}

// NewRouter returns the application routes for a client
func NewRouter[C interface {
	SpeciesLister
	Diagnoser
}](client C, stream bool) (*router.Router, error) {
	return router.Default(NewHome(client), NewResult(client, stream))
}

// ResultTarget returns the navigation target for the result of a symptom
func ResultTarget(symptom string) string {
	return router.ResultPath + "?" + url.Values{QuerySymptom: []string{symptom}}.Encode()
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (h *Home) Render(ctx context.Context, w io.Writer, _ url.Values) error {
	presets, err := h.client.PresetSpecies(ctx)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, titleStyle.Render("Species")); err != nil {
		return err
	}
	if len(presets) == 0 {
		_, err := fmt.Fprintln(w, "No preset species")
		return err
	}
	return table.Write(w, table.SpeciesTable(presets))
}

func (r *Result) Render(ctx context.Context, w io.Writer, query url.Values) error {
	symptom := strings.TrimSpace(query.Get(QuerySymptom))
	if symptom == "" {
		return species.ErrBadParameter.With("missing ", QuerySymptom)
	}

	var response *schema.DiagnoseResponse
	var err error
	if r.stream {
		response, err = r.client.DiagnoseStream(ctx, symptom, func(event schema.Event) error {
			return writeEvent(w, event)
		})
	} else if response, err = r.client.Diagnose(ctx, symptom); err == nil {
		if err = writeTitle(w, response.Name()); err == nil {
			_, err = io.WriteString(w, response.Diagnosis)
		}
	}
	if err != nil {
		return err
	}

	// End the diagnosis text and write the summary
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return table.Write(w, table.DiagnosisTable{DiagnoseResponse: response})
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// writeEvent writes the species title and the diagnosis chunks as they
// arrive. Other events are kept for the summary.
func writeEvent(w io.Writer, event schema.Event) error {
	switch event := event.(type) {
	case schema.SpeciesEvent:
		name := event.DisplayName
		if name == "" {
			name = event.ObjectName
		}
		return writeTitle(w, name)
	case schema.DiagnosisChunkEvent:
		_, err := io.WriteString(w, event.Chunk)
		return err
	}
	return nil
}

func writeTitle(w io.Writer, name string) error {
	_, err := fmt.Fprintln(w, titleStyle.Render(name))
	return err
}
