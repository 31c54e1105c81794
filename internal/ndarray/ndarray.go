// Package ndarray holds the in-memory fixture model: named n-dimensional
// arrays over a numeric domain, collected in an ordered tree.
package ndarray

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"slices"

	"github.com/robert-malhotra/asdf-fixtures/internal/domain"
)

// Common errors
var (
	ErrInvalidShape  = errors.New("invalid array shape")
	ErrDuplicateName = errors.New("duplicate array name")
	ErrEmptyName     = errors.New("empty array name")
)

// Array is an immutable named array. Values are stored in row-major order.
type Array struct {
	name   string
	shape  []int
	domain domain.Domain
	values domain.Values
}

// New validates the shape against the number of values and returns an array
// owning private copies of both.
func New(name string, shape []int, d domain.Domain, values domain.Values) (*Array, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if !d.Valid() {
		return nil, &domain.UnsupportedDomainError{Kind: d.Kind(), Width: d.Width()}
	}
	n, err := Size(shape)
	if err != nil {
		return nil, fmt.Errorf("array %q: %w", name, err)
	}
	if n != len(values) {
		return nil, fmt.Errorf("array %q: %w: shape %v holds %d elements, got %d values",
			name, ErrInvalidShape, shape, n, len(values))
	}

	return &Array{
		name:   name,
		shape:  slices.Clone(shape),
		domain: d,
		values: slices.Clone(values),
	}, nil
}

// Size returns the number of elements described by shape. An empty shape
// describes a scalar. A count that does not fit an int is ErrInvalidShape.
func Size(shape []int) (int, error) {
	for i, dim := range shape {
		if dim < 0 {
			return 0, fmt.Errorf("%w: dimension %d is negative (%d)", ErrInvalidShape, i, dim)
		}
	}
	n := uint64(1)
	for _, dim := range shape {
		hi, lo := bits.Mul64(n, uint64(dim))
		if hi != 0 || lo > math.MaxInt {
			return 0, fmt.Errorf("%w: shape %v holds more than %d elements", ErrInvalidShape, shape, math.MaxInt)
		}
		n = lo
	}
	return int(n), nil
}

func (a *Array) Name() string          { return a.name }
func (a *Array) Domain() domain.Domain { return a.domain }
func (a *Array) Shape() []int          { return slices.Clone(a.shape) }
func (a *Array) Values() domain.Values { return slices.Clone(a.values) }
func (a *Array) Len() int              { return len(a.values) }

// Bytes returns the raw element data in the array's storage byte order.
func (a *Array) Bytes() ([]byte, error) {
	data, err := domain.Encode(a.domain, a.values)
	if err != nil {
		return nil, fmt.Errorf("array %q: %w", a.name, err)
	}
	return data, nil
}

func (a *Array) String() string {
	return fmt.Sprintf("%s%v %s", a.name, a.shape, a.domain)
}
