package option

import "github.com/quaverlib/quaver/utils/json"

type (
	// NullableString is a nullable version of a string.
	NullableString = *NullableStringData
	// NullableStringData is the underlying struct of NullableString. Use
	// NewNullableString instead.
	NullableStringData struct {
		Val  string
		Init bool
	}

	// NullableInt is a nullable version of an int.
	NullableInt = *NullableIntData
	// NullableIntData is the underlying struct of NullableInt. Use
	// NewNullableInt instead.
	NullableIntData struct {
		Val  int
		Init bool
	}
)

var (
	// NullString serializes to JSON null.
	NullString NullableString = &NullableStringData{}
	// NullInt serializes to JSON null.
	NullInt NullableInt = &NullableIntData{}
)

// NewNullableString creates a new non-null NullableString with the given
// value.
func NewNullableString(v string) NullableString {
	return &NullableStringData{
		Val:  v,
		Init: true,
	}
}

// NewNullableInt creates a new non-null NullableInt with the given value.
func NewNullableInt(v int) NullableInt {
	return &NullableIntData{
		Val:  v,
		Init: true,
	}
}

func (s NullableStringData) MarshalJSON() ([]byte, error) {
	if !s.Init {
		return []byte("null"), nil
	}
	return json.Marshal(s.Val)
}

func (s *NullableStringData) UnmarshalJSON(v []byte) error {
	if string(v) == "null" {
		*s = NullableStringData{}
		return nil
	}

	s.Init = true
	return json.Unmarshal(v, &s.Val)
}

func (i NullableIntData) MarshalJSON() ([]byte, error) {
	if !i.Init {
		return []byte("null"), nil
	}
	return json.Marshal(i.Val)
}

func (i *NullableIntData) UnmarshalJSON(v []byte) error {
	if string(v) == "null" {
		*i = NullableIntData{}
		return nil
	}

	i.Init = true
	return json.Unmarshal(v, &i.Val)
}
