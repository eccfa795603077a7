package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	// Packages
	species "github.com/mutablelogic/go-species"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// EventType is the discriminator carried in the "type" field of every
// stream event
type EventType string

// Event is one message of the diagnosis stream. The set of implementations
// is closed: SpeciesEvent, DiagnosisChunkEvent, ImageEvent, DoneEvent and
// ErrorEvent.
type Event interface {
	Type() EventType
	event()
}

// SpeciesEvent identifies the diagnosed species
type SpeciesEvent struct {
	ObjectName  string   `json:"object_name"`
	DisplayName string   `json:"display_name"`
	Keywords    []string `json:"keywords"`
	ImageURL    *string  `json:"image_url,omitempty"`
}

// DiagnosisChunkEvent carries the next fragment of the diagnosis text
type DiagnosisChunkEvent struct {
	Chunk string `json:"chunk"`
}

// ImageEvent carries the URL of a generated species image
type ImageEvent struct {
	URL string `json:"url"`
}

// DoneEvent completes the stream
type DoneEvent struct {
	SequenceNo int `json:"sequence_no"`
}

// ErrorEvent reports a failure in the backend
type ErrorEvent struct {
	Message string `json:"message"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	EventSpecies        EventType = "species"
	EventDiagnosisChunk EventType = "diagnosis_chunk"
	EventImage          EventType = "image"
	EventDone           EventType = "done"
	EventError          EventType = "error"
)

// Fields which must be present for each event type
var requiredFields = map[EventType][]string{
	EventSpecies:        {"object_name", "display_name", "keywords"},
	EventDiagnosisChunk: {"chunk"},
	EventImage:          {"url"},
	EventDone:           {"sequence_no"},
	EventError:          {"message"},
}

var (
	_ Event = SpeciesEvent{}
	_ Event = DiagnosisChunkEvent{}
	_ Event = ImageEvent{}
	_ Event = DoneEvent{}
	_ Event = ErrorEvent{}
)

///////////////////////////////////////////////////////////////////////////////
// DECODE

// DecodeEvent decodes a single stream payload. The "type" field is read
// first and the payload is then decoded into that variant only: a missing
// or unknown type, a missing required field or a field belonging to
// another variant returns ErrProtocol.
func DecodeEvent(data []byte) (Event, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, species.ErrProtocol.Withf("invalid event: %v", err)
	} else if fields == nil {
		return nil, species.ErrProtocol.With("invalid event: null")
	}

	// Read the discriminator
	raw, exists := fields["type"]
	if !exists {
		return nil, species.ErrProtocol.With("event has no type")
	}
	var typ EventType
	if err := json.Unmarshal(raw, &typ); err != nil {
		return nil, species.ErrProtocol.Withf("event type: %v", err)
	}
	delete(fields, "type")

	// Check required fields
	required, exists := requiredFields[typ]
	if !exists {
		return nil, species.ErrProtocol.Withf("unknown event type %q", typ)
	}
	for _, key := range required {
		if _, exists := fields[key]; !exists {
			return nil, species.ErrProtocol.Withf("%s event: missing %q", typ, key)
		}
	}

	switch typ {
	case EventSpecies:
		return decodeVariant[SpeciesEvent](typ, fields)
	case EventDiagnosisChunk:
		return decodeVariant[DiagnosisChunkEvent](typ, fields)
	case EventImage:
		return decodeVariant[ImageEvent](typ, fields)
	case EventDone:
		return decodeVariant[DoneEvent](typ, fields)
	case EventError:
		return decodeVariant[ErrorEvent](typ, fields)
	default:
		return nil, species.ErrProtocol.Withf("unknown event type %q", typ)
	}
}

// Terminal returns true if no further events belong to the same request
// after this one
func Terminal(e Event) bool {
	switch e.(type) {
	case DoneEvent, *DoneEvent, ErrorEvent, *ErrorEvent:
		return true
	default:
		return false
	}
}

func decodeVariant[T Event](typ EventType, fields map[string]json.RawMessage) (Event, error) {
	var result T

	// Re-encode without the discriminator, then decode strictly
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&result); err != nil {
		return nil, species.ErrProtocol.Withf("%s event: %v", typ, err)
	}

	// Return success
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// TYPE

func (SpeciesEvent) Type() EventType        { return EventSpecies }
func (DiagnosisChunkEvent) Type() EventType { return EventDiagnosisChunk }
func (ImageEvent) Type() EventType          { return EventImage }
func (DoneEvent) Type() EventType           { return EventDone }
func (ErrorEvent) Type() EventType          { return EventError }

func (SpeciesEvent) event()        {}
func (DiagnosisChunkEvent) event() {}
func (ImageEvent) event()          {}
func (DoneEvent) event()           {}
func (ErrorEvent) event()          {}

///////////////////////////////////////////////////////////////////////////////
// MARSHAL

func (e SpeciesEvent) MarshalJSON() ([]byte, error) {
	type j SpeciesEvent
	return marshalEvent(EventSpecies, j(e))
}

func (e DiagnosisChunkEvent) MarshalJSON() ([]byte, error) {
	type j DiagnosisChunkEvent
	return marshalEvent(EventDiagnosisChunk, j(e))
}

func (e ImageEvent) MarshalJSON() ([]byte, error) {
	type j ImageEvent
	return marshalEvent(EventImage, j(e))
}

func (e DoneEvent) MarshalJSON() ([]byte, error) {
	type j DoneEvent
	return marshalEvent(EventDone, j(e))
}

func (e ErrorEvent) MarshalJSON() ([]byte, error) {
	type j ErrorEvent
	return marshalEvent(EventError, j(e))
}

// marshalEvent prepends the type discriminator to the encoded payload
func marshalEvent(typ EventType, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	prefix := fmt.Sprintf(`{"type":%q`, typ)
	if bytes.Equal(data, []byte("{}")) {
		return []byte(prefix + "}"), nil
	}
	return append([]byte(prefix+","), data[1:]...), nil
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (e ErrorEvent) Error() string {
	return e.Message
}

func (e EventType) String() string {
	return string(e)
}
