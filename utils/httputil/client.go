// Package httputil layers retries, request options and typed errors on top of
// a swappable HTTP driver.
package httputil

import (
	"context"
	"io"
	"mime/multipart"

	"github.com/pkg/errors"

	"github.com/quaverlib/quaver/utils/httputil/httpdriver"
	"github.com/quaverlib/quaver/utils/json"
)

// StatusTooManyRequests is the status code the API answers with when a rate
// limit is hit.
const StatusTooManyRequests = 429

// Retries is how many attempts a request gets by default before its last
// error is returned. Values below 1 retry forever.
var Retries uint = 5

// ResponseFunc runs after every attempt, successful or not; resp is nil when
// the attempt never reached the server. A non-nil return aborts the request
// with that error.
type ResponseFunc func(req httpdriver.Request, resp httpdriver.Response) error

// Client is a retrying HTTP client. Its zero value is not usable; construct
// it with NewClient.
type Client struct {
	httpdriver.Client
	SchemaEncoder

	// OnRequest options run before each request, ahead of per-call options.
	OnRequest []RequestOption

	// OnResponse hooks run after each attempt.
	OnResponse []ResponseFunc

	// Retries overrides the package-level Retries for this client.
	Retries uint

	context context.Context
}

// NewClient creates a Client over the default net/http driver.
func NewClient() *Client {
	return &Client{
		Client:        httpdriver.NewClient(),
		SchemaEncoder: &DefaultSchema{},
		Retries:       Retries,
		context:       context.Background(),
	}
}

// Copy returns a shallow copy of the client.
func (c *Client) Copy() *Client {
	cpy := *c
	return &cpy
}

// WithContext returns a copy of the client whose requests use ctx.
func (c *Client) WithContext(ctx context.Context) *Client {
	cpy := c.Copy()
	cpy.context = ctx
	return cpy
}

// Context returns the context that requests run under. Background by default.
func (c *Client) Context() context.Context {
	return c.context
}

// Request performs a request, retrying on transport errors, 429s and 5xxs.
// Non-2xx responses come back as *HTTPError.
func (c *Client) Request(method, url string, opts ...RequestOption) (httpdriver.Response, error) {
	var resp httpdriver.Response
	var lastErr error

	for i := uint(0); c.Retries < 1 || i < c.Retries; i++ {
		req, err := c.Client.NewRequest(c.context, method, url)
		if err != nil {
			return nil, RequestError{err}
		}

		if err := c.applyOptions(req, opts); err != nil {
			return nil, errors.Wrap(err, "failed to apply options")
		}

		resp, lastErr = c.Client.Do(req)

		// Hooks see failed attempts too; the rate limiter depends on that.
		for _, fn := range c.OnResponse {
			if err := fn(req, resp); err != nil {
				return nil, err
			}
		}

		if lastErr == nil && !retriable(resp.GetStatus()) {
			break
		}
	}

	if lastErr != nil {
		return nil, RequestError{lastErr}
	}

	if status := resp.GetStatus(); status < 200 || status > 299 {
		return nil, decodeHTTPError(resp)
	}

	return resp, nil
}

// RequestJSON performs a request and decodes the response body into to. A
// 204 leaves to untouched.
func (c *Client) RequestJSON(to interface{}, method, url string, opts ...RequestOption) error {
	opts = PrependOptions(opts, JSONRequest)

	resp, err := c.Request(method, url, opts...)
	if err != nil {
		return err
	}

	body := resp.GetBody()
	defer body.Close()

	if resp.GetStatus() == httpdriver.NoContent {
		return nil
	}

	if err := json.DecodeStream(body, to); err != nil {
		return JSONError{err}
	}

	return nil
}

// FastRequest performs a request and discards the response body.
func (c *Client) FastRequest(method, url string, opts ...RequestOption) error {
	resp, err := c.Request(method, url, opts...)
	if err != nil {
		return err
	}

	return resp.GetBody().Close()
}

// MeanwhileMultipart streams a multipart body produced by writer while the
// request is in flight. writer runs in its own goroutine; if it fails, the
// request is cancelled and its error is returned instead.
func (c *Client) MeanwhileMultipart(
	writer func(*multipart.Writer) error,
	method, url string, opts ...RequestOption) (httpdriver.Response, error) {

	ctx, cancel := context.WithCancel(c.context)
	defer cancel()

	pipeR, pipeW := io.Pipe()
	form := multipart.NewWriter(pipeW)

	var writeErr error

	go func() {
		if err := writer(form); err != nil {
			writeErr = err
			cancel()
		}
		pipeW.Close()
	}()

	opts = PrependOptions(
		opts,
		WithBody(pipeR),
		WithContentType(form.FormDataContentType()),
	)

	resp, err := c.WithContext(ctx).Request(method, url, opts...)
	if err != nil && writeErr != nil {
		return nil, writeErr
	}
	return resp, err
}

func (c *Client) applyOptions(req httpdriver.Request, extra []RequestOption) error {
	for _, opt := range c.OnRequest {
		if err := opt(req); err != nil {
			return err
		}
	}
	for _, opt := range extra {
		if err := opt(req); err != nil {
			return err
		}
	}
	return nil
}

// retriable reports whether the status warrants another attempt.
func retriable(status int) bool {
	return status == StatusTooManyRequests || status >= 500
}

// decodeHTTPError drains resp into an HTTPError, picking out the API's error
// fields when the body is JSON.
func decodeHTTPError(resp httpdriver.Response) *HTTPError {
	body := resp.GetBody()
	defer body.Close()

	httpErr := &HTTPError{
		Status: resp.GetStatus(),
	}
	httpErr.Body, _ = io.ReadAll(body)

	// Best effort; a non-JSON body just leaves the fields empty.
	json.Unmarshal(httpErr.Body, httpErr)

	return httpErr
}
