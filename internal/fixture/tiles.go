package fixture

import (
	"fmt"
	"slices"

	"github.com/robert-malhotra/asdf-fixtures/internal/domain"
	"github.com/robert-malhotra/asdf-fixtures/internal/ndarray"
)

// maxTileRank is the deepest rank whose largest encoding, 10^r - 1, fits in
// a uint64.
const maxTileRank = 19

// EncodeTiles builds an array of the given shape in which the element at
// multi-index (i0, ..., i(r-1)) holds
//
//	sum over k of (i_k + 1) * 10^(r-1-k)
//
// so each decimal digit names the 1-based coordinate on one axis, the first
// axis being the most significant. A rank-0 shape yields an empty 1-D array.
//
// The encoding must be exact: a dimension wider than one decimal digit, or a
// largest value the domain cannot represent, fails with
// EncodingOverflowError before any value is produced.
func EncodeTiles(name string, shape []int, d domain.Domain) (*ndarray.Array, error) {
	if !d.Valid() {
		return nil, &domain.UnsupportedDomainError{Kind: d.Kind(), Width: d.Width()}
	}
	if len(shape) == 0 {
		return ndarray.New(name, []int{0}, d, nil)
	}
	if err := checkTiles(shape, d); err != nil {
		return nil, fmt.Errorf("tiles %q: %w", name, err)
	}
	n, err := ndarray.Size(shape)
	if err != nil {
		return nil, fmt.Errorf("tiles %q: %w", name, err)
	}

	rank := len(shape)
	factors := make([]uint64, rank)
	f := uint64(1)
	for k := rank - 1; k >= 0; k-- {
		factors[k] = f
		f *= 10
	}

	values := make(domain.Values, n)
	idx := make([]int, rank)
	for i := range values {
		var v uint64
		for k, ik := range idx {
			v += uint64(ik+1) * factors[k]
		}
		values[i] = d.FromUint(v)

		// row-major: the last axis varies fastest
		for k := rank - 1; k >= 0; k-- {
			idx[k]++
			if idx[k] < shape[k] {
				break
			}
			idx[k] = 0
		}
	}

	return ndarray.New(name, shape, d, values)
}

func checkTiles(shape []int, d domain.Domain) error {
	overflow := func(format string, args ...any) error {
		return &EncodingOverflowError{
			Shape:  append([]int(nil), shape...),
			Domain: d,
			Reason: fmt.Sprintf(format, args...),
		}
	}

	if len(shape) > maxTileRank {
		return overflow("rank %d exceeds %d", len(shape), maxTileRank)
	}

	var largest uint64
	for k, dim := range shape {
		if dim < 0 {
			return fmt.Errorf("%w: dimension %d is negative (%d)", ndarray.ErrInvalidShape, k, dim)
		}
		if dim > 9 {
			return overflow("axis %d has %d elements, at most 9 fit one decimal digit", k, dim)
		}
		largest = largest*10 + uint64(dim)
	}
	// an empty array holds no value to overflow
	if slices.Contains(shape, 0) {
		return nil
	}
	if limit := d.MaxExactInt(); largest > limit {
		return overflow("largest value %d exceeds %d", largest, limit)
	}
	return nil
}
