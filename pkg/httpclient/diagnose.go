package httpclient

import (
	"context"
	"net/http"
	"net/url"

	// Packages
	client "github.com/mutablelogic/go-client"
	config "github.com/mutablelogic/go-species/pkg/config"
	schema "github.com/mutablelogic/go-species/pkg/schema"
	stream "github.com/mutablelogic/go-species/pkg/stream"
	log "github.com/rs/zerolog/log"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// PresetSpecies returns the preset species gallery
func (c *Client) PresetSpecies(ctx context.Context) ([]schema.PresetSpecies, error) {
	response, err := Fetch[[]schema.PresetSpecies](ctx, c, c.endpoints.URL(config.PresetSpecies))
	if err != nil {
		return nil, err
	}
	return *response, nil
}

// Diagnose sends a symptom and returns the complete diagnosis in one response
func (c *Client) Diagnose(ctx context.Context, symptom string) (*schema.DiagnoseResponse, error) {
	req := schema.NewDiagnoseRequest(symptom)
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return Fetch[schema.DiagnoseResponse](ctx, c, c.endpoints.URL(config.Diagnose),
		WithMethod(http.MethodPost),
		WithJSON(req),
	)
}

// DiagnoseStream sends a symptom and reads the diagnosis as a stream of
// events. Each event is passed to fn (which may be nil) in arrival order,
// and the diagnosis assembled from the events is returned once the done
// event arrives. An error event is returned as ErrStream. The client
// timeout does not apply; use the context to cancel the stream.
func (c *Client) DiagnoseStream(ctx context.Context, symptom string, fn stream.EventFn) (*schema.DiagnoseResponse, error) {
	req := schema.NewDiagnoseRequest(symptom)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Create the request
	httpReq, err := c.newRequest(ctx, c.endpoints.URL(config.DiagnoseStream), client.ContentTypeTextStream,
		WithQuery(url.Values{"symptom": []string{req.Symptom}}),
	)
	if err != nil {
		return nil, err
	}

	// The stream stays open for as long as the backend is generating
	hc := *c.Client.Client
	hc.Timeout = 0
	resp, err := hc.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := checkResponse(httpReq, resp); err != nil {
		return nil, err
	}

	// Read events until done
	var collector stream.Collector
	if err := stream.Decode(ctx, resp.Body, func(event schema.Event) error {
		if err := collector.Collect(event); err != nil {
			return err
		}
		if fn != nil {
			return fn(event)
		}
		return nil
	}); err != nil {
		log.Debug().Err(err).Str("id", httpReq.Header.Get(headerRequestId)).Msg("stream failed")
		return nil, err
	}

	// Return the assembled diagnosis
	return collector.Response(), nil
}
