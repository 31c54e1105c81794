package asdf

import (
	"bytes"
	"crypto/md5"
	encbin "encoding/binary"

	"github.com/robert-malhotra/asdf-fixtures/internal/binary"
	"github.com/robert-malhotra/asdf-fixtures/internal/compression"
)

// Block layout constants.
const (
	BlockMagic      = "\xd3BLK"
	BlockHeaderSize = 48 // bytes following the header_size field

	blockIndexHeader = "#ASDF BLOCK INDEX\n"
)

// newBlockWriter appends big-endian block data to buf, counting positions
// from the start of the file.
func newBlockWriter(buf *bytes.Buffer) *binary.Writer {
	return binary.NewWriterAt(buf, encbin.BigEndian, int64(buf.Len()))
}

// writeBlock writes one block and returns the offset of its magic token. A
// nil codec stores data as is. The checksum covers the uncompressed data.
func writeBlock(w *binary.Writer, data []byte, checksum bool, codec compression.Codec) (int64, error) {
	offset := w.Pos()

	var sum [md5.Size]byte
	if checksum {
		sum = md5.Sum(data)
	}
	stored, label := data, compression.None
	if codec != nil {
		var err error
		if stored, err = codec.Compress(data); err != nil {
			return 0, err
		}
		label = codec.Label()
	}
	size, used := uint64(len(data)), uint64(len(stored))

	if err := w.WriteString(BlockMagic); err != nil {
		return 0, err
	}
	if err := w.WriteUint16(BlockHeaderSize); err != nil {
		return 0, err
	}
	if err := w.WriteUint32(0); err != nil { // flags
		return 0, err
	}
	if err := w.WriteBytes(label[:]); err != nil {
		return 0, err
	}
	for _, v := range []uint64{used, used, size} { // allocated, used, data
		if err := w.WriteUint64(v); err != nil {
			return 0, err
		}
	}
	if err := w.WriteBytes(sum[:]); err != nil {
		return 0, err
	}
	if err := w.WriteBytes(stored); err != nil {
		return 0, err
	}
	return offset, nil
}
