package fixture

import (
	"fmt"
	"slices"

	"github.com/robert-malhotra/asdf-fixtures/internal/domain"
	"github.com/robert-malhotra/asdf-fixtures/internal/ndarray"
)

// ID enumerates the known fixtures. The set is closed: adding a fixture
// means adding an ID and its table entry.
type ID int

const (
	Ramp255 ID = iota
	ByteOrder
	Cube
	Numeric
	Tiles

	numFixtures
)

// Generator builds the arrays of a fixture.
type Generator func() (*ndarray.Tree, error)

// Registration binds a fixture ID to its file name, provenance text and
// generator.
type Registration struct {
	ID          ID
	Name        string
	Description string
	Build       Generator
}

var registry = [numFixtures]Registration{
	Ramp255: {
		ID:   Ramp255,
		Name: "255.asdf",
		Description: "test file containing integers from 0 to 255 in the block " +
			"data, for simple tests against known data",
		Build: make255,
	},
	ByteOrder: {
		ID:    ByteOrder,
		Name:  "byteorder.asdf",
		Build: makeByteOrder,
	},
	Cube: {
		ID:          Cube,
		Name:        "cube.asdf",
		Description: "A very small data cube for testing",
		Build:       makeCube,
	},
	Numeric: {
		ID:    Numeric,
		Name:  "numeric.asdf",
		Build: makeNumeric,
	},
	Tiles: {
		ID:    Tiles,
		Name:  "tiles.asdf",
		Build: makeTiles,
	},
}

func (id ID) Valid() bool {
	return id >= 0 && id < numFixtures
}

func (id ID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("ID(%d)", int(id))
	}
	return registry[id].Name
}

// All returns every registration in registry order.
func All() []Registration {
	return slices.Clone(registry[:])
}

// Names returns the file names of every registered fixture in registry
// order.
func Names() []string {
	names := make([]string, len(registry))
	for i, r := range registry {
		names[i] = r.Name
	}
	return names
}

// Lookup resolves a fixture file name.
func Lookup(name string) (Registration, error) {
	for _, r := range registry {
		if r.Name == name {
			return r, nil
		}
	}
	return Registration{}, &UnknownFixtureError{Name: name}
}

// Tree builds the fixture and attaches its provenance text, if any.
func (r Registration) Tree() (*ndarray.Tree, error) {
	tree, err := r.Build()
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", r.Name, err)
	}
	tree.AddHistory(r.Description)
	return tree, nil
}

// numericTypes lists the ASDF datatypes of numeric.asdf in file order.
var numericTypes = []string{
	"int8", "uint8",
	"int16", "uint16",
	"int32", "uint32",
	"int64", "uint64",
	"float32", "float64",
}

// byteOrderTypes lists the ASDF datatypes of byteorder.asdf.
var byteOrderTypes = []string{"uint16", "uint32", "uint64"}

func newTree(arrays ...*ndarray.Array) (*ndarray.Tree, error) {
	tree := ndarray.NewTree()
	if err := tree.Add(arrays...); err != nil {
		return nil, err
	}
	return tree, nil
}

func make255() (*ndarray.Tree, error) {
	d := domain.MustNew(domain.KindUnsigned, 8, domain.BigEndian)
	values, err := domain.Ramp(256)(d)
	if err != nil {
		return nil, err
	}
	a, err := ndarray.New("data", []int{256}, d, values)
	if err != nil {
		return nil, err
	}
	return newTree(a)
}

func makeByteOrder() (*ndarray.Tree, error) {
	var arrays []*ndarray.Array
	for _, name := range byteOrderTypes {
		d, err := domain.Parse(name, domain.LittleEndian)
		if err != nil {
			return nil, err
		}
		variants, err := Expand(name, d, domain.Ramp(8), WordMarker)
		if err != nil {
			return nil, err
		}
		arrays = append(arrays, variants...)
	}
	return newTree(arrays...)
}

// makeCube fills a 10x10x10 uint8 cube with the running element index,
// wrapping modulo 256 on purpose.
func makeCube() (*ndarray.Tree, error) {
	d := domain.MustNew(domain.KindUnsigned, 8, domain.BigEndian)
	shape := []int{10, 10, 10}
	n, _ := ndarray.Size(shape)
	values := make(domain.Values, n)
	for i := range values {
		values[i] = domain.Uint(uint64(i % 256))
	}
	a, err := ndarray.New("cube", shape, d, values)
	if err != nil {
		return nil, err
	}
	return newTree(a)
}

func makeNumeric() (*ndarray.Tree, error) {
	var arrays []*ndarray.Array
	for _, name := range numericTypes {
		d, err := domain.Parse(name, domain.LittleEndian)
		if err != nil {
			return nil, err
		}
		variants, err := Expand(name, d, domain.Boundaries, CharMarker)
		if err != nil {
			return nil, err
		}
		arrays = append(arrays, variants...)
	}
	return newTree(arrays...)
}

// tileDomains mixes datatypes across ranks: index r holds the domain of the
// rank-r array.
var tileDomains = [...]domain.Domain{
	domain.MustNew(domain.KindFloat, 64, domain.LittleEndian),
	domain.MustNew(domain.KindUnsigned, 8, domain.BigEndian),
	domain.MustNew(domain.KindUnsigned, 16, domain.LittleEndian),
	domain.MustNew(domain.KindSigned, 32, domain.LittleEndian),
}

const tileSide = 4

func makeTiles() (*ndarray.Tree, error) {
	arrays := make([]*ndarray.Array, 0, len(tileDomains))
	for rank, d := range tileDomains {
		shape := slices.Repeat([]int{tileSide}, rank)
		a, err := EncodeTiles(fmt.Sprintf("%dd", rank), shape, d)
		if err != nil {
			return nil, err
		}
		arrays = append(arrays, a)
	}
	return newTree(arrays...)
}
