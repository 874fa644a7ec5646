package httputil

import (
	"fmt"
	"strconv"

	"github.com/quaverlib/quaver/utils/json"
)

// JSONError wraps a failure to decode a response body.
type JSONError struct {
	err error
}

func (j JSONError) Error() string {
	return "JSON decoding failed: " + j.err.Error()
}

func (j JSONError) Unwrap() error {
	return j.err
}

// RequestError wraps a transport-level failure, meaning no usable response
// ever came back.
type RequestError struct {
	err error
}

func (r RequestError) Error() string {
	return "request failed: " + r.err.Error()
}

func (r RequestError) Unwrap() error {
	return r.err
}

// ErrorCode is the API's numeric error code in an error response body.
type ErrorCode uint

// HTTPError is a response with a non-2xx status. The JSON fields are filled
// in when the body parses as an API error object.
type HTTPError struct {
	Status int    `json:"-"`
	Body   []byte `json:"-"`

	Code    ErrorCode `json:"code"`
	Errors  json.Raw  `json:"errors,omitempty"`
	Message string    `json:"message,omitempty"`
}

func (err HTTPError) Error() string {
	switch {
	case err.Errors != nil:
		return fmt.Sprintf("Discord %d error: %s: %s", err.Status, err.Message, err.Errors)
	case err.Message != "":
		return fmt.Sprintf("Discord %d error: %s", err.Status, err.Message)
	case err.Code > 0:
		return fmt.Sprintf("Discord returned status %d error code %d", err.Status, err.Code)
	case len(err.Body) > 0:
		return fmt.Sprintf("Discord returned status %d body %s", err.Status, err.Body)
	default:
		return "Discord returned status " + strconv.Itoa(err.Status)
	}
}
