package httputil

import (
	"net/url"
	"sync"

	"github.com/gorilla/schema"
)

// SchemaEncoder expects the encoder to read the "schema" tags.
type SchemaEncoder interface {
	Encode(src interface{}) (url.Values, error)
}

// DefaultSchema is the default SchemaEncoder, which uses gorilla/schema.
type DefaultSchema struct {
	once sync.Once
	*schema.Encoder
}

var _ SchemaEncoder = (*DefaultSchema)(nil)

func (d *DefaultSchema) Encode(src interface{}) (url.Values, error) {
	if d.Encoder == nil {
		d.once.Do(func() {
			d.Encoder = schema.NewEncoder()
			d.Encoder.SetAliasTag("schema")
		})
	}

	var v = url.Values{}
	return v, d.Encoder.Encode(src, v)
}
