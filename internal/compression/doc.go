// Package compression implements ASDF block compression.
//
// A block header names its compression with a four byte label, padded with
// NUL bytes. Known labels are "zlib" and "lz4".
//
// lz4 data is a sequence of chunks, each prefixed with its big-endian length.
// A chunk holds the little-endian uncompressed size followed by one raw LZ4
// block, which is how the Python asdf package writes it.
//
// An all-zero label means the block is stored uncompressed; Lookup returns a
// nil Codec for it.
package compression
