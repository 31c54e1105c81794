package domain

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the numeric class of a domain.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindSigned
	KindUnsigned
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindSigned:
		return "int"
	case KindUnsigned:
		return "uint"
	case KindFloat:
		return "float"
	default:
		return "invalid(" + strconv.Itoa(int(k)) + ")"
	}
}

// IsInteger reports whether k is one of the integer kinds.
func (k Kind) IsInteger() bool {
	return k == KindSigned || k == KindUnsigned
}

// ByteOrder is the storage byte order of a domain.
type ByteOrder uint8

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

// ByteOrders lists every supported byte order, little-endian first.
var ByteOrders = [...]ByteOrder{LittleEndian, BigEndian}

// String returns the ASDF spelling of the byte order.
func (o ByteOrder) String() string {
	if o == BigEndian {
		return "big"
	}
	return "little"
}

// Binary returns the encoding/binary implementation of o.
func (o ByteOrder) Binary() binary.ByteOrder {
	if o == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Domain is an immutable numeric domain descriptor.
type Domain struct {
	kind  Kind
	width int
	order ByteOrder
}

// New validates and returns a domain.
func New(kind Kind, width int, order ByteOrder) (Domain, error) {
	if !supported(kind, width) || order > BigEndian {
		return Domain{}, &UnsupportedDomainError{Kind: kind, Width: width}
	}
	return Domain{kind: kind, width: width, order: order}, nil
}

// MustNew is like New but panics on an unsupported domain. Intended for
// statically known domains.
func MustNew(kind Kind, width int, order ByteOrder) Domain {
	d, err := New(kind, width, order)
	if err != nil {
		panic(err)
	}
	return d
}

// Parse builds a domain from an ASDF datatype name such as "uint16".
func Parse(name string, order ByteOrder) (Domain, error) {
	var (
		kind Kind
		rest string
	)
	switch {
	case strings.HasPrefix(name, "uint"):
		kind, rest = KindUnsigned, name[4:]
	case strings.HasPrefix(name, "int"):
		kind, rest = KindSigned, name[3:]
	case strings.HasPrefix(name, "float"):
		kind, rest = KindFloat, name[5:]
	default:
		return Domain{}, &UnsupportedDomainError{Name: name}
	}
	width, err := strconv.Atoi(rest)
	if err != nil || !supported(kind, width) {
		return Domain{}, &UnsupportedDomainError{Name: name}
	}
	return New(kind, width, order)
}

func supported(kind Kind, width int) bool {
	switch kind {
	case KindSigned, KindUnsigned:
		return width == 8 || width == 16 || width == 32 || width == 64
	case KindFloat:
		return width == 32 || width == 64
	default:
		return false
	}
}

func (d Domain) Kind() Kind           { return d.kind }
func (d Domain) Width() int           { return d.width }
func (d Domain) ByteOrder() ByteOrder { return d.order }

// Size returns the size of a single element in bytes.
func (d Domain) Size() int { return d.width / 8 }

// Valid reports whether d was produced by New or Parse.
func (d Domain) Valid() bool { return supported(d.kind, d.width) }

// WithByteOrder returns a copy of d stored in the given byte order.
func (d Domain) WithByteOrder(order ByteOrder) Domain {
	d.order = order
	return d
}

// Name returns the ASDF datatype name, e.g. "int32" or "float64".
func (d Domain) Name() string {
	return d.kind.String() + strconv.Itoa(d.width)
}

func (d Domain) String() string {
	return fmt.Sprintf("%s/%s", d.Name(), d.order)
}

// Min returns the smallest value of the domain. For floats this is the
// negative of the largest finite value.
func (d Domain) Min() Value {
	switch d.kind {
	case KindSigned:
		return Int(-1 << (d.width - 1))
	case KindFloat:
		return Float(-d.maxFloat())
	default:
		return Uint(0)
	}
}

// Max returns the largest finite value of the domain.
func (d Domain) Max() Value {
	switch d.kind {
	case KindSigned:
		return Int(1<<(d.width-1) - 1)
	case KindFloat:
		return Float(d.maxFloat())
	default:
		if d.width == 64 {
			return Uint(math.MaxUint64)
		}
		return Uint(1<<d.width - 1)
	}
}

// Tiny returns the smallest positive normal value of a float domain.
func (d Domain) Tiny() Value {
	if d.width == 32 {
		return Float(float64(math.Float32frombits(0x00800000)))
	}
	return Float(math.Float64frombits(0x0010000000000000))
}

// MaxExactInt returns the largest integer n such that every integer in
// [0, n] is exactly representable in the domain.
func (d Domain) MaxExactInt() uint64 {
	switch d.kind {
	case KindFloat:
		if d.width == 32 {
			return 1 << 24
		}
		return 1 << 53
	case KindSigned:
		return uint64(d.Max().Int64())
	default:
		return d.Max().Uint64()
	}
}

func (d Domain) maxFloat() float64 {
	if d.width == 32 {
		return math.MaxFloat32
	}
	return math.MaxFloat64
}
