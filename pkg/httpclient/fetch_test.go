package httpclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	// Packages
	species "github.com/mutablelogic/go-species"
	config "github.com/mutablelogic/go-species/pkg/config"
	httpclient "github.com/mutablelogic/go-species/pkg/httpclient"
	schema "github.com/mutablelogic/go-species/pkg/schema"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// HELPERS

// captured is the last request received by a test server
type captured struct {
	method string
	header http.Header
	query  url.Values
	body   []byte
}

// newFetchServer responds to every request with the given status and body,
// recording the request
func newFetchServer(t *testing.T, status int, body string) (*httptest.Server, *captured) {
	t.Helper()
	var c captured
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.method = r.Method
		c.header = r.Header.Clone()
		c.query = r.URL.Query()
		c.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &c
}

func newClient(t *testing.T, serverURL string) *httpclient.Client {
	t.Helper()
	c, err := httpclient.New(config.New(serverURL))
	require.NoError(t, err)
	return c
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_Fetch_001(t *testing.T) {
	assert := assert.New(t)
	srv, req := newFetchServer(t, http.StatusOK, `{"a":1}`)
	c := newClient(t, srv.URL)

	result, err := httpclient.Fetch[map[string]any](context.Background(), c, srv.URL+"/api/anything")
	if assert.NoError(err) {
		assert.Equal(map[string]any{"a": float64(1)}, *result)
	}

	// Default method and headers
	assert.Equal(http.MethodGet, req.method)
	assert.Equal("application/json", req.header.Get("Content-Type"))
	assert.NotEmpty(req.header.Get("X-Request-Id"))
}

func Test_Fetch_002(t *testing.T) {
	assert := assert.New(t)
	srv, _ := newFetchServer(t, http.StatusNotFound, `{"detail":"not here"}`)
	c := newClient(t, srv.URL)

	result, err := httpclient.Fetch[map[string]any](context.Background(), c, srv.URL+"/api/missing")
	assert.Nil(result)
	assert.ErrorIs(err, species.ErrUnexpectedResponse)
	assert.ErrorContains(err, "404")

	var respErr *species.ResponseError
	if assert.True(errors.As(err, &respErr)) {
		assert.Equal(http.StatusNotFound, respErr.StatusCode)
	}
}

func Test_Fetch_003(t *testing.T) {
	assert := assert.New(t)
	srv, _ := newFetchServer(t, http.StatusInternalServerError, `{"detail":"boom"}`)
	c := newClient(t, srv.URL)

	_, err := httpclient.Fetch[map[string]any](context.Background(), c, srv.URL)
	var respErr *species.ResponseError
	if assert.True(errors.As(err, &respErr)) {
		assert.Equal(http.StatusInternalServerError, respErr.StatusCode)
	}
}

func Test_Fetch_004(t *testing.T) {
	assert := assert.New(t)
	srv, req := newFetchServer(t, http.StatusOK, `{}`)
	c := newClient(t, srv.URL)

	// Caller headers win over the default content type
	_, err := httpclient.Fetch[map[string]any](context.Background(), c, srv.URL,
		httpclient.WithHeader("Content-Type", "text/plain"),
		httpclient.WithHeader("X-Extra", "1"),
	)
	assert.NoError(err)
	assert.Equal("text/plain", req.header.Get("Content-Type"))
	assert.Equal([]string{"text/plain"}, req.header.Values("Content-Type"))
	assert.Equal("1", req.header.Get("X-Extra"))
}

func Test_Fetch_005(t *testing.T) {
	assert := assert.New(t)
	srv, req := newFetchServer(t, http.StatusOK, `{"ok":true}`)
	c := newClient(t, srv.URL)

	// Method, body and query
	_, err := httpclient.Fetch[map[string]any](context.Background(), c, srv.URL+"/api/diagnose?x=1",
		httpclient.WithMethod(http.MethodPost),
		httpclient.WithJSON(schema.DiagnoseRequest{Symptom: "tired of it all"}),
		httpclient.WithQuery(url.Values{"y": []string{"2"}}),
	)
	assert.NoError(err)
	assert.Equal(http.MethodPost, req.method)
	assert.JSONEq(`{"symptom":"tired of it all"}`, string(req.body))
	assert.Equal("1", req.query.Get("x"))
	assert.Equal("2", req.query.Get("y"))
}

func Test_Fetch_006(t *testing.T) {
	assert := assert.New(t)
	srv, _ := newFetchServer(t, http.StatusOK, `{"a":`)
	c := newClient(t, srv.URL)

	// Malformed JSON is a parse error
	_, err := httpclient.Fetch[map[string]any](context.Background(), c, srv.URL)
	assert.ErrorIs(err, species.ErrInvalidResponse)
	var syntaxErr *json.SyntaxError
	assert.True(errors.As(err, &syntaxErr))
}

func Test_Fetch_007(t *testing.T) {
	assert := assert.New(t)
	srv, _ := newFetchServer(t, http.StatusOK, `{"object_name":42}`)
	c := newClient(t, srv.URL)

	// Payload does not match the declared type
	result, err := httpclient.Fetch[schema.DiagnoseResponse](context.Background(), c, srv.URL)
	assert.Nil(result)
	assert.ErrorIs(err, species.ErrInvalidResponse)
}

func Test_Fetch_008(t *testing.T) {
	assert := assert.New(t)
	srv, _ := newFetchServer(t, http.StatusOK, `[{"object_name":"owl","image_url":"https://cdn/owl.png"}]`)
	c := newClient(t, srv.URL)

	// Payload matches the declared type
	result, err := httpclient.Fetch[[]schema.PresetSpecies](context.Background(), c, srv.URL)
	if assert.NoError(err) {
		assert.Equal([]schema.PresetSpecies{{ObjectName: "owl", ImageURL: "https://cdn/owl.png"}}, *result)
	}

	// Interface types are not validated
	value, err := httpclient.Fetch[any](context.Background(), c, srv.URL)
	if assert.NoError(err) {
		assert.Len(*value, 1)
	}
}

func Test_Fetch_009(t *testing.T) {
	assert := assert.New(t)
	srv, _ := newFetchServer(t, http.StatusOK, `{}`)
	c := newClient(t, srv.URL)

	// A cancelled context aborts the request
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := httpclient.Fetch[map[string]any](ctx, c, srv.URL)
	assert.ErrorIs(err, context.Canceled)

	// Bad options
	_, err = httpclient.Fetch[map[string]any](context.Background(), c, srv.URL, httpclient.WithMethod(""))
	assert.ErrorIs(err, species.ErrBadParameter)
	_, err = httpclient.Fetch[map[string]any](context.Background(), c, srv.URL, httpclient.WithJSON(func() {}))
	assert.ErrorIs(err, species.ErrBadParameter)
}

func Test_Fetch_010(t *testing.T) {
	assert := assert.New(t)

	// Transport failures propagate
	srv, _ := newFetchServer(t, http.StatusOK, `{}`)
	c := newClient(t, srv.URL)
	srv.Close()
	_, err := httpclient.Fetch[map[string]any](context.Background(), c, srv.URL)
	assert.Error(err)
	assert.NotErrorIs(err, species.ErrUnexpectedResponse)
}

func Test_New_001(t *testing.T) {
	assert := assert.New(t)

	c, err := httpclient.New(nil)
	if assert.NoError(err) {
		assert.Equal("http://localhost:8000/api/diagnose", c.Endpoints().URL(config.Diagnose))
	}

	_, err = httpclient.New(config.New("localhost:8000/api"))
	assert.ErrorIs(err, species.ErrBadParameter)
	_, err = httpclient.New(&config.Config{BaseURL: "http://[::1"})
	assert.ErrorIs(err, species.ErrBadParameter)
}
