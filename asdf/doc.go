// Package asdf writes fixture trees as ASDF files.
//
// An ASDF file is a YAML document followed by binary blocks:
//
//	#ASDF 1.0.0
//	#ASDF_STANDARD 1.5.0
//	%YAML 1.1
//	%TAG ! tag:stsci.edu:asdf/
//	--- !core/asdf-1.1.0
//	asdf_library: !core/software-1.0.0 {name: asdf-fixtures, version: 0.1.0}
//	data: !core/ndarray-1.0.0
//	  source: 0
//	  datatype: uint8
//	  byteorder: big
//	  shape: [256]
//	...
//	<block 0>
//	#ASDF BLOCK INDEX
//	%YAML 1.1
//	---
//	- 412
//	...
//
// Each array of the tree becomes one block, in tree order, referenced from
// its core/ndarray node by block number. Block headers are big-endian:
//
//	Field          | Size | Value
//	---------------|------|---------------------------
//	magic          | 4    | 0xD3 'B' 'L' 'K'
//	header_size    | 2    | 48
//	flags          | 4    | 0
//	compression    | 4    | zero, or a label such as "zlib"
//	allocated_size | 8    | stored length
//	used_size      | 8    | stored length
//	data_size      | 8    | uncompressed length
//	checksum       | 16   | MD5 of the uncompressed data, or zero
//
// Output is fully determined by the tree and the options: no timestamps or
// host information are written.
package asdf
