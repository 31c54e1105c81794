package domain

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrUnsupportedDomain = errors.New("unsupported numeric domain")
	ErrValueOutOfRange   = errors.New("value out of domain range")
)

// UnsupportedDomainError reports a kind/width combination (or a datatype
// name) outside the supported set.
type UnsupportedDomainError struct {
	Kind  Kind
	Width int
	Name  string // set when the domain was requested by name
}

func (e *UnsupportedDomainError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%v: %q", ErrUnsupportedDomain, e.Name)
	}
	return fmt.Sprintf("%v: kind=%s width=%d", ErrUnsupportedDomain, e.Kind, e.Width)
}

func (e *UnsupportedDomainError) Unwrap() error {
	return ErrUnsupportedDomain
}
