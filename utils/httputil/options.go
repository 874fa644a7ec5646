package httputil

import (
	"io"
	"net/http"

	"github.com/quaverlib/quaver/utils/httputil/httpdriver"
	"github.com/quaverlib/quaver/utils/json"
)

// RequestOption mutates a request before it is sent.
type RequestOption func(httpdriver.Request) error

// PrependOptions returns a new slice with prepend running ahead of opts.
func PrependOptions(opts []RequestOption, prepend ...RequestOption) []RequestOption {
	if len(prepend) == 0 {
		return opts
	}

	dst := make([]RequestOption, 0, len(prepend)+len(opts))
	dst = append(dst, prepend...)
	return append(dst, opts...)
}

// JSONRequest marks the request body as JSON.
func JSONRequest(r httpdriver.Request) error {
	r.AddHeader(http.Header{
		"Content-Type": {"application/json"},
	})
	return nil
}

// WithHeaders adds the given headers.
func WithHeaders(headers http.Header) RequestOption {
	return func(r httpdriver.Request) error {
		r.AddHeader(headers)
		return nil
	}
}

// WithContentType sets the Content-Type header.
func WithContentType(ctype string) RequestOption {
	return func(r httpdriver.Request) error {
		r.AddHeader(http.Header{
			"Content-Type": {ctype},
		})
		return nil
	}
}

// WithSchema encodes v with the given encoder and merges the values into the
// URL query.
func WithSchema(schema SchemaEncoder, v interface{}) RequestOption {
	return func(r httpdriver.Request) error {
		params, err := schema.Encode(v)
		if err != nil {
			return err
		}

		r.AddQuery(params)
		return nil
	}
}

// WithBody sets the request body. The driver owns closing it.
func WithBody(body io.ReadCloser) RequestOption {
	return func(r httpdriver.Request) error {
		r.WithBody(body)
		return nil
	}
}

// WithJSONBody streams v's JSON encoding as the request body. A nil v is a
// no-op.
func WithJSONBody(v interface{}) RequestOption {
	if v == nil {
		return func(httpdriver.Request) error {
			return nil
		}
	}

	var encodeErr error
	pipeR, pipeW := io.Pipe()

	go func() {
		encodeErr = json.EncodeStream(pipeW, v)
		pipeW.Close()
	}()

	return func(r httpdriver.Request) error {
		if encodeErr != nil {
			return encodeErr
		}

		r.AddHeader(http.Header{
			"Content-Type": {"application/json"},
		})
		r.WithBody(pipeR)
		return nil
	}
}
