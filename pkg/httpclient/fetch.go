package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"sync"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	uuid "github.com/google/uuid"
	client "github.com/mutablelogic/go-client"
	species "github.com/mutablelogic/go-species"
	log "github.com/rs/zerolog/log"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// RequestOpt is a functional option for Fetch
type RequestOpt func(*request) error

type request struct {
	method string
	body   []byte
	header http.Header
	query  url.Values
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	headerRequestId = "X-Request-Id"
)

// Resolved response schemas, keyed by reflect.Type
var schemas sync.Map

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithMethod sets the request method. The default is GET.
func WithMethod(method string) RequestOpt {
	return func(r *request) error {
		if method == "" {
			return species.ErrBadParameter.With("empty method")
		}
		r.method = method
		return nil
	}
}

// WithJSON encodes v as the JSON request body
func WithJSON(v any) RequestOpt {
	return func(r *request) error {
		data, err := json.Marshal(v)
		if err != nil {
			return species.ErrBadParameter.Withf("request body: %v", err)
		}
		r.body = data
		return nil
	}
}

// WithHeader sets a request header, replacing any default value
// for the same header
func WithHeader(key, value string) RequestOpt {
	return func(r *request) error {
		r.header.Set(key, value)
		return nil
	}
}

// WithQuery adds query parameters to the request URL
func WithQuery(values url.Values) RequestOpt {
	return func(r *request) error {
		for key, value := range values {
			r.query[key] = append(r.query[key], value...)
		}
		return nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Fetch performs one request to endpoint and decodes the JSON response as T.
// The request carries a JSON content type unless a header option replaces
// it. A non-2xx response returns a *species.ResponseError with the status
// code. A 2xx response which is not valid JSON, or which does not conform
// to the schema of T, returns ErrInvalidResponse.
func Fetch[T any](ctx context.Context, c *Client, endpoint string, opts ...RequestOpt) (*T, error) {
	req, err := c.newRequest(ctx, endpoint, client.ContentTypeJson, opts...)
	if err != nil {
		return nil, err
	}

	// Perform the request
	resp, err := c.Client.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Check the status
	if err := checkResponse(req, resp); err != nil {
		return nil, err
	}

	// Read and decode the body
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return decodeResponse[T](data)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// newRequest creates a request with the default headers, then applies
// the options
func (c *Client) newRequest(ctx context.Context, endpoint, accept string, opts ...RequestOpt) (*http.Request, error) {
	r := request{
		method: http.MethodGet,
		header: make(http.Header),
		query:  make(url.Values),
	}
	r.header.Set("Content-Type", client.ContentTypeJson)
	r.header.Set("Accept", accept)
	r.header.Set(headerRequestId, uuid.NewString())
	for _, opt := range opts {
		if err := opt(&r); err != nil {
			return nil, err
		}
	}

	// Append query parameters
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, species.ErrBadParameter.Withf("endpoint: %v", err)
	}
	if len(r.query) > 0 {
		q := u.Query()
		for key, value := range r.query {
			q[key] = append(q[key], value...)
		}
		u.RawQuery = q.Encode()
	}

	// Create the request
	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header = r.header

	// Return success
	return req, nil
}

// checkResponse returns an error for any non-2xx response, after draining
// the body
func checkResponse(req *http.Request, resp *http.Response) error {
	event := log.Debug().
		Str("id", req.Header.Get(headerRequestId)).
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Int("status", resp.StatusCode)
	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		event.Msg("response")
		return nil
	}
	event.Msg("unexpected response")
	_, _ = io.Copy(io.Discard, resp.Body)
	return species.NewResponseError(resp.StatusCode)
}

// decodeResponse validates the payload against the schema for T and then
// decodes it
func decodeResponse[T any](data []byte) (*T, error) {
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return nil, fmt.Errorf("%w: %w", species.ErrInvalidResponse, err)
	}

	// Validate
	resolved, err := schemaFor[T]()
	if err != nil {
		return nil, err
	} else if resolved != nil {
		if err := resolved.Validate(instance); err != nil {
			return nil, species.ErrInvalidResponse.Withf("%T: %v", *new(T), err)
		}
	}

	// Decode
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", species.ErrInvalidResponse, err)
	}

	// Return success
	return &result, nil
}

// schemaFor returns the resolved JSON schema for T, or nil if T is an
// interface type and any payload is accepted
func schemaFor[T any]() (*jsonschema.Resolved, error) {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Interface {
		return nil, nil
	}
	if resolved, exists := schemas.Load(t); exists {
		return resolved.(*jsonschema.Resolved), nil
	}

	// Infer and resolve the schema
	s, err := jsonschema.For[T](nil)
	if err != nil {
		return nil, species.ErrBadParameter.Withf("schema for %v: %v", t, err)
	}
	resolved, err := s.Resolve(nil)
	if err != nil {
		return nil, species.ErrBadParameter.Withf("schema for %v: %v", t, err)
	}

	// Cache and return
	actual, _ := schemas.LoadOrStore(t, resolved)
	return actual.(*jsonschema.Resolved), nil
}
