// Package api provides an interface to interact with the Discord REST API.
// It handles rate limiting, authorization and retries.
package api

import (
	"context"
	"net/http"

	"github.com/quaverlib/quaver/api/rate"
	"github.com/quaverlib/quaver/utils/httputil"
	"github.com/quaverlib/quaver/utils/httputil/httpdriver"
)

var (
	BaseEndpoint = "https://discord.com"
	APIVersion   = "10"
	APIPath      = "/api/v" + APIVersion

	Endpoint           = BaseEndpoint + APIPath + "/"
	EndpointGateway    = Endpoint + "gateway"
	EndpointGatewayBot = EndpointGateway + "/bot"
)

var UserAgent = "DiscordBot (https://github.com/quaverlib/quaver, v0.1.0)"

// Client is the client to interact with the Discord REST API. Every request
// goes through the per-route rate limiter before it is sent.
type Client struct {
	*httputil.Client
	Limiter *rate.Limiter

	// AcquireOptions configures how rate limits are waited on. The zero
	// value waits until the limit expires.
	AcquireOptions rate.AcquireOptions

	Token string
}

// NewClient creates a new API client with the given token. For bot users, the
// token must be prefixed with "Bot ".
func NewClient(token string) *Client {
	return NewCustomClient(token, httputil.NewClient())
}

// NewCustomClient creates a new API client from the given httputil.Client.
// The client is copied, so the passed-in client is never mutated.
func NewCustomClient(token string, httpClient *httputil.Client) *Client {
	c := &Client{
		Client:  httpClient.Copy(),
		Limiter: rate.NewLimiter(APIPath),
		Token:   token,
	}

	c.Client.OnRequest = append(c.Client.OnRequest, c.InjectRequest)
	c.Client.OnResponse = append(c.Client.OnResponse, c.OnResponse)

	return c
}

// WithContext returns a shallow copy of the client that uses the given
// context for all future requests.
func (c *Client) WithContext(ctx context.Context) *Client {
	c = c.Copy()
	c.Client = c.Client.WithContext(ctx)
	return c
}

// Copy returns a shallow copy of the client.
func (c *Client) Copy() *Client {
	cl := new(Client)
	*cl = *c
	return cl
}

// InjectRequest sets the authorization headers and acquires the rate limit
// bucket of the request's route. It is automatically hooked into OnRequest by
// NewCustomClient.
func (c *Client) InjectRequest(r httpdriver.Request) error {
	header := http.Header{
		"User-Agent":            {UserAgent},
		"X-RateLimit-Precision": {"millisecond"},
	}
	if c.Token != "" {
		header.Set("Authorization", c.Token)
	}

	r.AddHeader(header)

	ctx := c.AcquireOptions.Context(r.GetContext())
	return c.Limiter.Acquire(ctx, r.GetPath())
}

// OnResponse updates and releases the rate limit bucket from the response
// headers. It is automatically hooked into OnResponse by NewCustomClient.
func (c *Client) OnResponse(r httpdriver.Request, resp httpdriver.Response) error {
	return c.Limiter.Release(r.GetPath(), httpdriver.OptHeader(resp))
}
