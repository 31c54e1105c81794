package domain

import (
	"fmt"
	"math"
)

// Canonical quiet NaN bit patterns, used so that NaN encodes identically on
// every platform.
const (
	nan32 = 0x7fc00000
	nan64 = 0x7ff8000000000000
)

// Encode converts values to raw element bytes in the byte order of d.
// A value outside the representable range of d is an error; nothing is
// truncated or wrapped.
func Encode(d Domain, values Values) ([]byte, error) {
	if !d.Valid() {
		return nil, &UnsupportedDomainError{Kind: d.kind, Width: d.width}
	}

	order := d.order.Binary()
	size := d.Size()
	data := make([]byte, len(values)*size)

	for i, v := range values {
		if !d.Fits(v) {
			return nil, fmt.Errorf("%w: element %d (%s) in %s", ErrValueOutOfRange, i, v, d)
		}
		offset := i * size

		if d.kind == KindFloat {
			f := v.Float64()
			if size == 4 {
				bits := math.Float32bits(float32(f))
				if math.IsNaN(f) {
					bits = nan32
				}
				order.PutUint32(data[offset:], bits)
			} else {
				bits := math.Float64bits(f)
				if math.IsNaN(f) {
					bits = nan64
				}
				order.PutUint64(data[offset:], bits)
			}
			continue
		}

		u := v.bits
		if v.kind == KindFloat {
			if d.kind == KindSigned {
				u = uint64(v.Int64())
			} else {
				u = v.Uint64()
			}
		}
		switch size {
		case 1:
			data[offset] = byte(u)
		case 2:
			order.PutUint16(data[offset:], uint16(u))
		case 4:
			order.PutUint32(data[offset:], uint32(u))
		case 8:
			order.PutUint64(data[offset:], u)
		}
	}

	return data, nil
}

// Decode is the inverse of Encode. The returned values use the carrier kind
// of d.
func Decode(d Domain, data []byte) (Values, error) {
	if !d.Valid() {
		return nil, &UnsupportedDomainError{Kind: d.kind, Width: d.width}
	}
	size := d.Size()
	if len(data)%size != 0 {
		return nil, fmt.Errorf("data length %d is not a multiple of element size %d", len(data), size)
	}

	order := d.order.Binary()
	values := make(Values, len(data)/size)
	for i := range values {
		b := data[i*size:]
		var u uint64
		switch size {
		case 1:
			u = uint64(b[0])
		case 2:
			u = uint64(order.Uint16(b))
		case 4:
			u = uint64(order.Uint32(b))
		case 8:
			u = order.Uint64(b)
		}

		switch d.kind {
		case KindFloat:
			if size == 4 {
				values[i] = Float(float64(math.Float32frombits(uint32(u))))
			} else {
				values[i] = Float(math.Float64frombits(u))
			}
		case KindSigned:
			// sign-extend from the element width
			shift := 64 - d.width
			values[i] = Int(int64(u<<shift) >> shift)
		default:
			values[i] = Uint(u)
		}
	}
	return values, nil
}

// Fits reports whether v is representable in d without wrapping. Float
// domains accept every value; integer domains reject non-integral floats.
func (d Domain) Fits(v Value) bool {
	switch d.kind {
	case KindFloat:
		return true
	case KindSigned:
		switch v.kind {
		case KindSigned:
			i := int64(v.bits)
			return i >= d.Min().Int64() && i <= d.Max().Int64()
		case KindUnsigned:
			return v.bits <= uint64(d.Max().Int64())
		default:
			// the bounds are powers of two, exact in float64
			f, limit := v.Float64(), math.Ldexp(1, d.width-1)
			return f == math.Trunc(f) && f >= -limit && f < limit
		}
	case KindUnsigned:
		switch v.kind {
		case KindSigned:
			i := int64(v.bits)
			return i >= 0 && uint64(i) <= d.Max().Uint64()
		case KindUnsigned:
			return v.bits <= d.Max().Uint64()
		default:
			f := v.Float64()
			return f == math.Trunc(f) && f >= 0 && f < math.Ldexp(1, d.width)
		}
	}
	return false
}
