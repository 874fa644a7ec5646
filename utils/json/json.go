// Package json routes all JSON work through a swappable driver, and carries
// the extra JSON types the library needs.
package json

import (
	"encoding/json"
	"io"
)

// Driver is a JSON codec. Replace Default to swap encoding/json out for a
// faster implementation.
type Driver interface {
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error

	DecodeStream(r io.Reader, v interface{}) error
	EncodeStream(w io.Writer, v interface{}) error
}

// Default is the driver the package-level functions use.
var Default Driver = stdDriver{}

type stdDriver struct{}

func (stdDriver) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (stdDriver) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (stdDriver) DecodeStream(r io.Reader, v interface{}) error {
	return json.NewDecoder(r).Decode(v)
}

func (stdDriver) EncodeStream(w io.Writer, v interface{}) error {
	return json.NewEncoder(w).Encode(v)
}

// Marshal encodes v with the default driver.
func Marshal(v interface{}) ([]byte, error) {
	return Default.Marshal(v)
}

// Unmarshal decodes data into v with the default driver.
func Unmarshal(data []byte, v interface{}) error {
	return Default.Unmarshal(data, v)
}

// DecodeStream decodes one value from r with the default driver.
func DecodeStream(r io.Reader, v interface{}) error {
	return Default.DecodeStream(r, v)
}

// EncodeStream encodes v into w with the default driver.
func EncodeStream(w io.Writer, v interface{}) error {
	return Default.EncodeStream(w, v)
}
