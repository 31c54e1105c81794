package fixture

import (
	"errors"
	"fmt"

	"github.com/robert-malhotra/asdf-fixtures/internal/domain"
)

// Common errors
var (
	ErrUnknownFixture   = errors.New("unknown fixture")
	ErrEncodingOverflow = errors.New("tile encoding overflow")
)

// UnknownFixtureError reports a fixture name absent from the registry.
type UnknownFixtureError struct {
	Name string
}

func (e *UnknownFixtureError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnknownFixture, e.Name)
}

func (e *UnknownFixtureError) Unwrap() error {
	return ErrUnknownFixture
}

// EncodingOverflowError reports a shape whose positional index encoding
// cannot be represented exactly in the target domain.
type EncodingOverflowError struct {
	Shape  []int
	Domain domain.Domain
	Reason string
}

func (e *EncodingOverflowError) Error() string {
	return fmt.Sprintf("%v: shape %v in %s: %s", ErrEncodingOverflow, e.Shape, e.Domain, e.Reason)
}

func (e *EncodingOverflowError) Unwrap() error {
	return ErrEncodingOverflow
}
