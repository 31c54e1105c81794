package ndarray

import (
	"fmt"
	"slices"
)

// Tree is an ordered collection of named arrays plus provenance strings.
// Insertion order is serialisation order.
type Tree struct {
	arrays  []*Array
	index   map[string]int
	history []string
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{index: make(map[string]int)}
}

// Add appends arrays to the tree. Names must be unique within the tree.
func (t *Tree) Add(arrays ...*Array) error {
	for _, a := range arrays {
		if _, ok := t.index[a.name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateName, a.name)
		}
		t.index[a.name] = len(t.arrays)
		t.arrays = append(t.arrays, a)
	}
	return nil
}

// AddHistory records a provenance entry describing the tree.
func (t *Tree) AddHistory(description string) {
	if description == "" {
		return
	}
	t.history = append(t.history, description)
}

// Arrays returns the arrays in insertion order.
func (t *Tree) Arrays() []*Array {
	return slices.Clone(t.arrays)
}

// Lookup returns the array with the given name.
func (t *Tree) Lookup(name string) (*Array, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.arrays[i], true
}

// Names returns array names in insertion order.
func (t *Tree) Names() []string {
	names := make([]string, len(t.arrays))
	for i, a := range t.arrays {
		names[i] = a.name
	}
	return names
}

// History returns the provenance entries in insertion order.
func (t *Tree) History() []string {
	return slices.Clone(t.history)
}

// Len returns the number of arrays.
func (t *Tree) Len() int {
	return len(t.arrays)
}
