package compression

import (
	"encoding/binary"
	"fmt"

	"github.com/pierrec/lz4/v4"
)

// DefaultLZ4ChunkSize matches the chunk size of the Python asdf package.
const DefaultLZ4ChunkSize = 1 << 22

var lz4Label = Label{'l', 'z', '4', 0}

// LZ4 implements the "lz4" label.
type LZ4 struct {
	chunk int
}

// NewLZ4 returns an lz4 codec splitting data into chunks of chunk bytes.
func NewLZ4(chunk int) *LZ4 {
	if chunk <= 0 {
		chunk = DefaultLZ4ChunkSize
	}
	return &LZ4{chunk: chunk}
}

func (c *LZ4) Label() Label {
	return lz4Label
}

func (c *LZ4) Compress(data []byte) ([]byte, error) {
	var out []byte
	for start := 0; start < len(data); start += c.chunk {
		src := data[start:min(start+c.chunk, len(data))]

		// a destination of CompressBlockBound bytes never reports
		// incompressible input
		dst := make([]byte, 4+lz4.CompressBlockBound(len(src)))
		binary.LittleEndian.PutUint32(dst, uint32(len(src)))
		n, err := lz4.CompressBlock(src, dst[4:], nil)
		if err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		out = binary.BigEndian.AppendUint32(out, uint32(4+n))
		out = append(out, dst[:4+n]...)
	}
	return out, nil
}

func (c *LZ4) Decompress(stored []byte, size uint64) ([]byte, error) {
	var out []byte
	for len(stored) > 0 {
		if len(stored) < 8 {
			return nil, fmt.Errorf("lz4: %w: truncated chunk header", ErrCorruptedStream)
		}
		n := binary.BigEndian.Uint32(stored)
		if n < 4 || uint64(n) > uint64(len(stored)-4) {
			return nil, fmt.Errorf("lz4: %w: chunk of %d bytes, %d left", ErrCorruptedStream, n, len(stored)-4)
		}
		chunk := stored[4 : 4+n]
		stored = stored[4+n:]

		want := binary.LittleEndian.Uint32(chunk)
		if uint64(len(out))+uint64(want) > size {
			return nil, fmt.Errorf("lz4: %w: chunks exceed %d bytes", ErrSizeMismatch, size)
		}
		dst := make([]byte, want)
		got, err := lz4.UncompressBlock(chunk[4:], dst)
		if err != nil {
			return nil, fmt.Errorf("lz4: %w: %w", ErrCorruptedStream, err)
		}
		if uint32(got) != want {
			return nil, fmt.Errorf("lz4: %w: chunk holds %d bytes, header says %d", ErrSizeMismatch, got, want)
		}
		out = append(out, dst...)
	}
	return out, nil
}
