// Package numfmt renders scalar values in one of two numeric domains.
//
// Geometry values carry their fields in a single numeric domain, declared
// up front by the inspected field's type: floating-point fields render
// with two decimal places, integer fields render as plain integers. The
// domain is resolved once per value and applied to every primary field of
// that value, so sibling fields never mix renderings.
//
// Derived quantities (magnitudes, angles, areas) always render in the
// floating domain via [Fixed], regardless of the value's own domain.
package numfmt

import "strconv"

// Kind tags the numeric domain of a geometry value's primary fields.
type Kind uint8

const (
	Unknown Kind = iota
	Integer
	Float
)

// Valid reports whether k names a renderable domain.
func (k Kind) Valid() bool {
	return k == Integer || k == Float
}

// String returns the native scalar spelling for the domain.
func (k Kind) String() string {
	switch k {
	case Integer:
		return "int"
	case Float:
		return "float"
	default:
		return "unknown"
	}
}

// Text renders a primary field value in the domain k. Integer fields are
// truncated toward zero; floating fields keep two decimal places.
func Text(k Kind, v float64) string {
	if k == Integer {
		return strconv.FormatInt(int64(v), 10)
	}
	return Fixed(v)
}

// Fixed renders v with two decimal places. Derived quantities always use
// this form.
func Fixed(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Pair renders a coordinate pair as "(x, y)" in the floating domain.
func Pair(x, y float64) string {
	return "(" + Fixed(x) + ", " + Fixed(y) + ")"
}
