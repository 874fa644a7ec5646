// Package option provides the ability to create omittable primitives. This is
// accomplished by pointerrizing common primitive types so that they may assume
// a nil value, which is considered as omitted by encoding/json. To generate
// pointerrized primitives, there are helper functions NewT() for each option
// type.
package option

type (
	// String is the option type for strings.
	String *string
	// Uint is the option type for unsigned integers (uint).
	Uint *uint
	// Int is the option type for integers (int).
	Int *int
	// Bool is the option type for bool.
	Bool *bool
)

var (
	// EmptyString is a zero-length string.
	EmptyString = NewString("")
	// ZeroUint is a Uint with 0 as value.
	ZeroUint = NewUint(0)
	// ZeroInt is an Int with 0 as value.
	ZeroInt = NewInt(0)

	True  = newBool(true)
	False = newBool(false)
)

// NewString creates a new String with the value of the passed string.
func NewString(s string) String { return &s }

// NewUint creates a new Uint using the value of the passed uint.
func NewUint(u uint) Uint { return &u }

// NewInt creates a new Int using the value of the passed int.
func NewInt(i int) Int { return &i }

func newBool(b bool) Bool { return &b }
