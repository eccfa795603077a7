package httpclient

import (
	"net/url"

	// Packages
	client "github.com/mutablelogic/go-client"
	species "github.com/mutablelogic/go-species"
	config "github.com/mutablelogic/go-species/pkg/config"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Client is a species API client that wraps the base HTTP client
// and provides typed methods for each backend endpoint.
type Client struct {
	*client.Client
	endpoints config.Endpoints
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a new client for the backend described by cfg. If cfg is nil,
// the default base URL is used. The configured timeout applies to every
// request except the diagnosis stream.
func New(cfg *config.Config, opts ...client.ClientOpt) (*Client, error) {
	if cfg == nil {
		cfg = config.New("")
	}

	// Check the base URL
	if base, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, species.ErrBadParameter.Withf("base url: %v", err)
	} else if base.Scheme == "" || base.Host == "" {
		return nil, species.ErrBadParameter.Withf("base url: %q is not absolute", cfg.BaseURL)
	}

	// Create the client
	if cfg.Timeout > 0 {
		opts = append(opts, client.OptTimeout(cfg.Timeout))
	}
	c := new(Client)
	if client, err := client.New(append(opts, client.OptEndpoint(cfg.BaseURL))...); err != nil {
		return nil, err
	} else {
		c.Client = client
	}

	// Endpoints are fixed for the lifetime of the client
	c.endpoints = cfg.Endpoints()

	// Return success
	return c, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Endpoints returns the endpoint map the client was created with
func (c *Client) Endpoints() config.Endpoints {
	return c.endpoints
}
