// Package httpdriver defines a minimal HTTP client interface so the transport
// underneath the API client can be swapped, most usefully for tests.
package httpdriver

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// NoContent is HTTP 204.
const NoContent = 204

// Client creates and executes requests.
type Client interface {
	NewRequest(ctx context.Context, method, url string) (Request, error)
	Do(req Request) (Response, error)
}

// Request is a request under construction. Values come from NewRequest and
// are mutated by the option callbacks before Do.
type Request interface {
	// GetPath returns the URL path component, like "/endpoint/thing".
	GetPath() string
	// GetContext returns the context given to NewRequest, or Background if
	// the implementation doesn't carry one.
	GetContext() context.Context
	// AddHeader appends header values.
	AddHeader(http.Header)
	// AddQuery appends URL query values.
	AddQuery(url.Values)
	// WithBody sets the body. The implementation owns closing it, as the
	// stdlib does.
	WithBody(io.ReadCloser)
}

// Response is what Do returns.
type Response interface {
	GetStatus() int
	GetHeader() http.Header
	// GetBody returns the response body. The caller must close it.
	GetBody() io.ReadCloser
}

// OptHeader returns from's header, tolerating a nil response.
func OptHeader(from Response) http.Header {
	if from == nil {
		return nil
	}
	return from.GetHeader()
}
