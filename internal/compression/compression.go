package compression

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Common errors
var (
	ErrUnsupported     = errors.New("unsupported compression")
	ErrInvalidLabel    = errors.New("invalid compression label")
	ErrSizeMismatch    = errors.New("decompressed size mismatch")
	ErrCorruptedStream = errors.New("corrupted compressed stream")
)

// Label is the compression field of a block header.
type Label [4]byte

// None labels uncompressed blocks.
var None Label

// ParseLabel converts a name of at most four bytes into a label.
func ParseLabel(name string) (Label, error) {
	var l Label
	if len(name) > len(l) || strings.IndexByte(name, 0) >= 0 {
		return l, fmt.Errorf("%w: %q", ErrInvalidLabel, name)
	}
	copy(l[:], name)
	return l, nil
}

// String returns the label without padding.
func (l Label) String() string {
	return string(bytes.TrimRight(l[:], "\x00"))
}

// IsNone reports whether l marks an uncompressed block.
func (l Label) IsNone() bool {
	return l == None
}

// Codec compresses and decompresses block data.
type Codec interface {
	// Label returns the block header label.
	Label() Label

	// Compress returns the stored form of data.
	Compress(data []byte) ([]byte, error)

	// Decompress restores size bytes of data from its stored form.
	Decompress(stored []byte, size uint64) ([]byte, error)
}

// Registry maps labels to codecs.
var Registry = map[Label]Codec{
	zlibLabel: NewZlib(DefaultZlibLevel),
	lz4Label:  NewLZ4(DefaultLZ4ChunkSize),
}

// Lookup returns the codec for label, nil for None.
func Lookup(l Label) (Codec, error) {
	if l.IsNone() {
		return nil, nil
	}
	c, ok := Registry[l]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, l.String())
	}
	return c, nil
}

// LookupName is Lookup for a label given by name. The empty name selects no
// compression.
func LookupName(name string) (Codec, error) {
	l, err := ParseLabel(name)
	if err != nil {
		return nil, err
	}
	return Lookup(l)
}

// Names lists the registered labels in sorted order.
func Names() []string {
	names := make([]string, 0, len(Registry))
	for l := range Registry {
		names = append(names, l.String())
	}
	slices.Sort(names)
	return names
}

// Decompress restores stored data labelled l and checks its size.
func Decompress(l Label, stored []byte, size uint64) ([]byte, error) {
	c, err := Lookup(l)
	if err != nil {
		return nil, err
	}
	if c == nil {
		if uint64(len(stored)) != size {
			return nil, fmt.Errorf("%w: stored %d bytes, expected %d", ErrSizeMismatch, len(stored), size)
		}
		return stored, nil
	}
	data, err := c.Decompress(stored, size)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l, err)
	}
	if uint64(len(data)) != size {
		return nil, fmt.Errorf("%s: %w: got %d bytes, expected %d", l, ErrSizeMismatch, len(data), size)
	}
	return data, nil
}
