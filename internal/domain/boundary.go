package domain

import "math"

// Probe produces the element values of a fixture array for a domain.
type Probe func(Domain) (Values, error)

// Boundaries returns the canonical edge-case values of d.
//
// Integer domains yield [min, -1 or min, 0, 1, max]; for unsigned domains
// the second slot collapses onto min. Float domains yield
// [min, -1, -tiny, 0, tiny, 1, max, NaN, +Inf, -Inf] where tiny is the
// smallest positive normal value.
func Boundaries(d Domain) (Values, error) {
	if !d.Valid() {
		return nil, &UnsupportedDomainError{Kind: d.kind, Width: d.width}
	}

	switch d.kind {
	case KindSigned:
		return Values{d.Min(), Int(-1), Int(0), Int(1), d.Max()}, nil
	case KindUnsigned:
		return Values{d.Min(), d.Min(), Uint(0), Uint(1), d.Max()}, nil
	default:
		tiny := d.Tiny().Float64()
		return Values{
			d.Min(),
			Float(-1),
			Float(-tiny),
			Float(0),
			Float(tiny),
			Float(1),
			d.Max(),
			Float(math.NaN()),
			Float(math.Inf(1)),
			Float(math.Inf(-1)),
		}, nil
	}
}

// Ramp returns a probe yielding 0, 1, ..., n-1 in the kind of the domain.
// Values that do not fit the domain are rejected when encoded.
func Ramp(n int) Probe {
	return func(d Domain) (Values, error) {
		if !d.Valid() {
			return nil, &UnsupportedDomainError{Kind: d.kind, Width: d.width}
		}
		vs := make(Values, n)
		for i := range vs {
			vs[i] = d.FromInt(int64(i))
		}
		return vs, nil
	}
}

// FromInt expresses i in the carrier kind of d without range checking.
func (d Domain) FromInt(i int64) Value {
	switch d.kind {
	case KindUnsigned:
		return Uint(uint64(i))
	case KindFloat:
		return Float(float64(i))
	default:
		return Int(i)
	}
}

// FromUint expresses u in the carrier kind of d without range checking.
func (d Domain) FromUint(u uint64) Value {
	switch d.kind {
	case KindUnsigned:
		return Uint(u)
	case KindFloat:
		return Float(float64(u))
	default:
		return Int(int64(u))
	}
}
