// Package domain describes the numeric element domains of fixture arrays.
//
// A [Domain] combines a kind (signed integer, unsigned integer or float), a
// bit width and a storage byte order. Domains are plain comparable values,
// validated once at construction by [New] or [Parse]:
//
//	d, err := domain.Parse("uint16", domain.BigEndian)
//
// Element values travel as [Value], a carrier wide enough to hold every
// int64, uint64 and float64 exactly, including NaN and the infinities. The
// package provides:
//
//   - [Boundaries]: the canonical edge-case values of a domain
//   - [Ramp]: the sequence 0..n-1 expressed in a domain
//   - [Encode]: raw element bytes in the domain's byte order
//
// # Supported domains
//
//	Kind     | Widths        | ASDF datatype names
//	---------|---------------|------------------------------
//	signed   | 8, 16, 32, 64 | int8, int16, int32, int64
//	unsigned | 8, 16, 32, 64 | uint8, uint16, uint32, uint64
//	float    | 32, 64        | float32, float64
//
// Anything else fails with [UnsupportedDomainError].
package domain
