package httpdriver

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"
)

// stdClient adapts net/http to the driver interfaces.
type stdClient struct {
	hc *http.Client
}

var _ Client = stdClient{}

// NewClient returns the default net/http-backed driver with a 10-second
// timeout.
func NewClient() Client {
	return stdClient{
		hc: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c stdClient) NewRequest(ctx context.Context, method, url string) (Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	return (*stdRequest)(req), nil
}

func (c stdClient) Do(req Request) (Response, error) {
	resp, err := c.hc.Do((*http.Request)(req.(*stdRequest)))
	if err != nil {
		return nil, err
	}
	return (*stdResponse)(resp), nil
}

type stdRequest http.Request

var _ Request = (*stdRequest)(nil)

func (r *stdRequest) GetPath() string { return r.URL.Path }

func (r *stdRequest) GetContext() context.Context {
	return (*http.Request)(r).Context()
}

func (r *stdRequest) AddQuery(values url.Values) {
	query := r.URL.Query()
	for k, vs := range values {
		query[k] = append(query[k], vs...)
	}
	r.URL.RawQuery = query.Encode()
}

func (r *stdRequest) AddHeader(header http.Header) {
	for k, vs := range header {
		r.Header[k] = append(r.Header[k], vs...)
	}
}

func (r *stdRequest) WithBody(body io.ReadCloser) {
	r.Body = body
}

type stdResponse http.Response

var _ Response = (*stdResponse)(nil)

func (r *stdResponse) GetStatus() int { return r.StatusCode }

func (r *stdResponse) GetHeader() http.Header { return r.Header }

func (r *stdResponse) GetBody() io.ReadCloser { return r.Body }
