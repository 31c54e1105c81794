// Package fixture builds the deterministic ASDF test fixtures.
//
// Every fixture is registered in a closed, statically initialised table
// indexed by [ID]. A registration's generator composes arrays from three
// building blocks:
//
//   - [domain.Boundaries] for the edge-case values of a numeric domain
//   - [Expand] for little- and big-endian variants of the same values
//   - [EncodeTiles] for arrays whose values spell out their own indices
//
// A [Dispatcher] resolves a fixture name, builds its tree and hands it to an
// injected [Writer]. Everything before the write is pure: the same fixture
// always yields bit-identical array content.
package fixture
