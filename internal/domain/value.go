package domain

import (
	"math"
	"strconv"
)

// Value is a single element value. The carrier kind records how the bits
// are interpreted: two's complement for signed, plain for unsigned and
// IEEE 754 binary64 for floats.
type Value struct {
	kind Kind
	bits uint64
}

// Values is an ordered sequence of element values.
type Values []Value

func Int(v int64) Value     { return Value{kind: KindSigned, bits: uint64(v)} }
func Uint(v uint64) Value   { return Value{kind: KindUnsigned, bits: v} }
func Float(v float64) Value { return Value{kind: KindFloat, bits: math.Float64bits(v)} }

// Kind returns the carrier kind of v.
func (v Value) Kind() Kind { return v.kind }

// Int64 returns v as an int64. Floats are truncated.
func (v Value) Int64() int64 {
	if v.kind == KindFloat {
		return int64(v.Float64())
	}
	return int64(v.bits)
}

// Uint64 returns v as a uint64. Floats are truncated.
func (v Value) Uint64() uint64 {
	if v.kind == KindFloat {
		return uint64(v.Float64())
	}
	return v.bits
}

// Float64 returns v converted to float64.
func (v Value) Float64() float64 {
	switch v.kind {
	case KindSigned:
		return float64(int64(v.bits))
	case KindFloat:
		return math.Float64frombits(v.bits)
	default:
		return float64(v.bits)
	}
}

// IsNaN reports whether v is a float NaN.
func (v Value) IsNaN() bool {
	return v.kind == KindFloat && math.IsNaN(v.Float64())
}

// Equal reports whether v and o denote the same number. NaN equals NaN,
// which is what fixture comparisons need.
func (v Value) Equal(o Value) bool {
	if v.kind == o.kind {
		if v.kind == KindFloat {
			a, b := v.Float64(), o.Float64()
			return a == b || (math.IsNaN(a) && math.IsNaN(b))
		}
		return v.bits == o.bits
	}
	if v.kind == KindFloat || o.kind == KindFloat {
		return v.Float64() == o.Float64()
	}
	// signed vs unsigned
	s, u := v, o
	if s.kind == KindUnsigned {
		s, u = o, v
	}
	return int64(s.bits) >= 0 && s.bits == u.bits
}

func (v Value) String() string {
	switch v.kind {
	case KindSigned:
		return strconv.FormatInt(int64(v.bits), 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	default:
		return strconv.FormatUint(v.bits, 10)
	}
}

// Equal reports whether both sequences hold the same numbers in the same
// order.
func (vs Values) Equal(o Values) bool {
	if len(vs) != len(o) {
		return false
	}
	for i := range vs {
		if !vs[i].Equal(o[i]) {
			return false
		}
	}
	return true
}
