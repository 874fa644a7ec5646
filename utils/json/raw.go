package json

// Raw holds an encoded JSON value verbatim, either to postpone decoding it or
// to splice a precomputed encoding into a larger document.
type Raw []byte

// MarshalJSON returns the bytes as-is; nil encodes as JSON null.
func (r Raw) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON keeps a copy of data, reusing r's backing array when it fits.
func (r *Raw) UnmarshalJSON(data []byte) error {
	*r = append((*r)[:0], data...)
	return nil
}

// UnmarshalTo decodes the held value into v. An empty Raw is a no-op.
func (r Raw) UnmarshalTo(v interface{}) error {
	if len(r) == 0 {
		return nil
	}
	return Unmarshal(r, v)
}

func (r Raw) String() string {
	return string(r)
}
