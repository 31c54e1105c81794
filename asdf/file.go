package asdf

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"
	"go.uber.org/multierr"

	"github.com/robert-malhotra/asdf-fixtures/internal/compression"
	"github.com/robert-malhotra/asdf-fixtures/internal/ndarray"
)

// Header versions.
const (
	FileFormatVersion = "1.0.0"
	StandardVersion   = "1.5.0"
)

// Encode writes tree to w as a complete ASDF file. The file is assembled in
// memory first, so an error leaves w untouched.
func Encode(w io.Writer, tree *ndarray.Tree, opts ...Option) error {
	data, err := Marshal(tree, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Marshal returns the ASDF encoding of tree.
func Marshal(tree *ndarray.Tree, opts ...Option) ([]byte, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	codec, err := compression.LookupName(o.compression)
	if err != nil {
		return nil, err
	}

	arrays := tree.Arrays()
	blocks := make([][]byte, len(arrays))
	for i, a := range arrays {
		data, err := a.Bytes()
		if err != nil {
			return nil, err
		}
		blocks[i] = data
	}

	body, err := marshalNode(treeNode(tree, o))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "#ASDF %s\n#ASDF_STANDARD %s\n", FileFormatVersion, StandardVersion)
	buf.WriteString("%YAML 1.1\n%TAG ! tag:stsci.edu:asdf/\n")
	buf.WriteString("--- " + tagASDF + "\n")
	buf.Write(body)
	buf.WriteString("...\n")

	bw := newBlockWriter(&buf)
	offsets := make([]int64, len(blocks))
	for i, data := range blocks {
		if offsets[i], err = writeBlock(bw, data, o.checksums, codec); err != nil {
			return nil, fmt.Errorf("writing block %d: %w", i, err)
		}
	}

	if o.blockIndex && len(offsets) > 0 {
		if err := writeBlockIndex(&buf, offsets); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func writeBlockIndex(buf *bytes.Buffer, offsets []int64) error {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, off := range offsets {
		seq.Content = append(seq.Content, integer(off))
	}
	body, err := marshalNode(seq)
	if err != nil {
		return fmt.Errorf("writing block index: %w", err)
	}
	buf.WriteString(blockIndexHeader)
	buf.WriteString("%YAML 1.1\n---\n")
	buf.Write(body)
	buf.WriteString("...\n")
	return nil
}

// FileWriter writes trees to ASDF files with a fixed set of options.
type FileWriter struct {
	opts []Option
}

// NewFileWriter returns a writer applying opts to every file.
func NewFileWriter(opts ...Option) *FileWriter {
	return &FileWriter{opts: opts}
}

// WriteFile encodes tree and writes it to path, creating the parent
// directory if needed. A partially written file is removed.
func (fw *FileWriter) WriteFile(path string, tree *ndarray.Tree) error {
	return WriteFile(path, tree, fw.opts...)
}

// WriteFile encodes tree and writes it to path.
func WriteFile(path string, tree *ndarray.Tree, opts ...Option) error {
	data, err := Marshal(tree, opts...)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err = f.Write(data); err != nil {
		return multierr.Combine(
			fmt.Errorf("writing %s: %w", path, err),
			f.Close(),
			os.Remove(path),
		)
	}
	if err = f.Close(); err != nil {
		return multierr.Append(fmt.Errorf("closing %s: %w", path, err), os.Remove(path))
	}
	return nil
}
