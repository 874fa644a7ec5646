package httpdriver

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
)

// MockClient routes every request through DoFunc, for tests.
type MockClient struct {
	DoFunc func(req *MockRequest) (Response, error)
}

var _ Client = (*MockClient)(nil)

func (c *MockClient) NewRequest(ctx context.Context, method, urlstr string) (Request, error) {
	u, err := url.Parse(urlstr)
	if err != nil {
		return nil, err
	}

	return &MockRequest{
		Method: method,
		URL:    *u,
		Header: http.Header{},
		ctx:    ctx,
	}, nil
}

func (c *MockClient) Do(req Request) (Response, error) {
	return c.DoFunc(req.(*MockRequest))
}

// MockRequest records everything the client sets on it, for tests to assert
// against.
type MockRequest struct {
	Method string
	URL    url.URL
	Header http.Header
	Body   []byte

	ctx context.Context
}

var _ Request = (*MockRequest)(nil)

func (r *MockRequest) GetPath() string { return r.URL.Path }

func (r *MockRequest) GetContext() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

func (r *MockRequest) AddQuery(values url.Values) {
	query := r.URL.Query()
	for k, vs := range values {
		query[k] = append(query[k], vs...)
	}
	r.URL.RawQuery = query.Encode()
}

func (r *MockRequest) AddHeader(header http.Header) {
	for k, vs := range header {
		r.Header[k] = append(r.Header[k], vs...)
	}
}

// WithBody reads the body eagerly so tests can inspect it as bytes.
func (r *MockRequest) WithBody(body io.ReadCloser) {
	b, err := io.ReadAll(body)
	if err != nil {
		panic(err)
	}
	body.Close()
	r.Body = b
}

// MockResponse is a canned response for MockClient.DoFunc to return.
type MockResponse struct {
	Status int
	Header http.Header
	Body   []byte
}

var _ Response = (*MockResponse)(nil)

func (r *MockResponse) GetStatus() int { return r.Status }

func (r *MockResponse) GetHeader() http.Header {
	if r.Header == nil {
		return http.Header{}
	}
	return r.Header
}

func (r *MockResponse) GetBody() io.ReadCloser {
	return io.NopCloser(bytes.NewReader(r.Body))
}
