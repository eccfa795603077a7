package table

import (
	// Packages
	config "github.com/mutablelogic/go-species/pkg/config"
	schema "github.com/mutablelogic/go-species/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// SpeciesTable lists the preset species gallery
type SpeciesTable []schema.PresetSpecies

// EndpointTable lists the resolved backend endpoints
type EndpointTable struct {
	config.Endpoints
}

// DiagnosisTable summarises a diagnosis as field and value rows
type DiagnosisTable struct {
	*schema.DiagnoseResponse
}

var _ TableData = SpeciesTable(nil)
var _ TableData = EndpointTable{}
var _ TableData = DiagnosisTable{}

///////////////////////////////////////////////////////////////////////////////
// SPECIES

func (t SpeciesTable) Header() []string {
	return []string{"#", "SPECIES", "IMAGE"}
}

func (t SpeciesTable) Len() int {
	return len(t)
}

func (t SpeciesTable) Row(i int) []any {
	return []any{i + 1, Bold{t[i].ObjectName}, t[i].ImageURL}
}

///////////////////////////////////////////////////////////////////////////////
// ENDPOINTS

func (t EndpointTable) Header() []string {
	return []string{"ENDPOINT", "URL"}
}

func (t EndpointTable) Len() int {
	return len(t.Names())
}

func (t EndpointTable) Row(i int) []any {
	name := t.Names()[i]
	return []any{Bold{name.String()}, t.URL(name)}
}

///////////////////////////////////////////////////////////////////////////////
// DIAGNOSIS

func (t DiagnosisTable) Header() []string {
	return []string{"FIELD", "VALUE"}
}

func (t DiagnosisTable) Len() int {
	if t.DiagnoseResponse == nil {
		return 0
	}
	return 5
}

func (t DiagnosisTable) Row(i int) []any {
	switch i {
	case 0:
		return []any{Bold{"species"}, t.ObjectName}
	case 1:
		return []any{Bold{"name"}, t.Name()}
	case 2:
		return []any{Bold{"keywords"}, t.Keywords}
	case 3:
		return []any{Bold{"image"}, t.ImageURL}
	case 4:
		return []any{Bold{"sequence"}, t.SequenceNo}
	}
	return nil
}
