/*
stream consumes the diagnosis event stream.

Each frame of the stream is a server-sent event whose data is a JSON
object tagged with a "type" field. Frames are decoded in order into
schema.Event values; a "done" or "error" event ends the request and
decoding stops without reading further frames.
*/
package stream

import (
	"context"
	"errors"
	"io"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	species "github.com/mutablelogic/go-species"
	schema "github.com/mutablelogic/go-species/pkg/schema"
	log "github.com/rs/zerolog/log"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// EventFn is called for each event in arrival order. Returning an error
// stops decoding.
type EventFn func(schema.Event) error

// decoder holds the state of one stream
type decoder struct {
	ctx      context.Context
	fn       EventFn
	count    int
	terminal bool
	result   error
	err      error
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Decode reads events from r until a terminal event, the end of input, a
// decode error, a callback error or context cancellation. It returns nil
// once a done event has been delivered, ErrStream with the message once
// an error event has been delivered, and ErrProtocol if the input ends
// before any terminal event.
func Decode(ctx context.Context, r io.Reader, fn EventFn) error {
	d := &decoder{ctx: ctx, fn: fn}
	err := client.NewTextStream().Decode(r, d.decode)

	switch {
	case d.err != nil:
		return d.err
	case d.terminal:
		return d.result
	case ctx.Err() != nil:
		return ctx.Err()
	case err != nil && !errors.Is(err, io.EOF):
		return err
	default:
		return species.ErrProtocol.Withf("stream ended after %d events without a done event", d.count)
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (d *decoder) decode(evt client.TextStreamEvent) error {
	if err := d.ctx.Err(); err != nil {
		d.err = err
		return err
	}

	// Skip keep-alives and frames without data
	data := strings.TrimSpace(evt.Data)
	if data == "" {
		return nil
	}

	// Decode the event
	event, err := schema.DecodeEvent([]byte(data))
	if err != nil {
		d.err = err
		return err
	}
	d.count++
	log.Debug().Int("n", d.count).Stringer("type", event.Type()).Msg("stream event")

	// Deliver the event
	if d.fn != nil {
		if err := d.fn(event); err != nil {
			d.err = err
			return err
		}
	}

	// Stop on terminal events
	switch event := event.(type) {
	case schema.DoneEvent:
		log.Debug().Int("sequence_no", event.SequenceNo).Msg("end of stream")
		d.terminal = true
		return io.EOF
	case schema.ErrorEvent:
		d.terminal = true
		d.result = species.ErrStream.With(event.Message)
		return io.EOF
	}

	// Continue reading
	return nil
}
