package fixture

import (
	"fmt"

	"github.com/robert-malhotra/asdf-fixtures/internal/domain"
	"github.com/robert-malhotra/asdf-fixtures/internal/ndarray"
)

// Marker turns a byte order into the suffix of a variant name.
type Marker func(domain.ByteOrder) string

// CharMarker spells byte orders the numpy way: "<" and ">".
func CharMarker(order domain.ByteOrder) string {
	if order == domain.BigEndian {
		return ">"
	}
	return "<"
}

// WordMarker spells byte orders as "-little" and "-big".
func WordMarker(order domain.ByteOrder) string {
	return "-" + order.String()
}

// Expand builds one 1-D array per byte order, little-endian first. The
// variants hold the same logical values and differ only in storage order.
func Expand(name string, d domain.Domain, probe domain.Probe, marker Marker) ([]*ndarray.Array, error) {
	if !d.Valid() {
		return nil, &domain.UnsupportedDomainError{Kind: d.Kind(), Width: d.Width()}
	}

	variants := make([]*ndarray.Array, 0, len(domain.ByteOrders))
	for _, order := range domain.ByteOrders {
		vd := d.WithByteOrder(order)
		values, err := probe(vd)
		if err != nil {
			return nil, fmt.Errorf("expanding %s: %w", name, err)
		}
		a, err := ndarray.New(name+marker(order), []int{len(values)}, vd, values)
		if err != nil {
			return nil, err
		}
		variants = append(variants, a)
	}
	return variants, nil
}
