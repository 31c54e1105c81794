package compression

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// DefaultZlibLevel is the level used by the registered zlib codec.
const DefaultZlibLevel = zlib.DefaultCompression

var zlibLabel = Label{'z', 'l', 'i', 'b'}

// Zlib implements the "zlib" label.
type Zlib struct {
	level int
}

// NewZlib returns a zlib codec compressing at level (see compress/flate).
func NewZlib(level int) *Zlib {
	return &Zlib{level: level}
}

func (z *Zlib) Label() Label {
	return zlibLabel
}

func (z *Zlib) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, z.level)
	if err != nil {
		return nil, fmt.Errorf("zlib writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("zlib compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("zlib compress: %w", err)
	}
	return buf.Bytes(), nil
}

func (z *Zlib) Decompress(stored []byte, size uint64) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(stored))
	if err != nil {
		return nil, fmt.Errorf("zlib reader: %w", err)
	}
	defer r.Close()

	var out bytes.Buffer
	// one byte more than expected exposes oversized streams
	if _, err := io.Copy(&out, io.LimitReader(r, int64(size)+1)); err != nil {
		return nil, fmt.Errorf("zlib decompress: %w", err)
	}
	return out.Bytes(), nil
}
