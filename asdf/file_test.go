package asdf

import (
	"bytes"
	"crypto/md5"
	encbin "encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	"github.com/robert-malhotra/asdf-fixtures/internal/compression"
	"github.com/robert-malhotra/asdf-fixtures/internal/domain"
	"github.com/robert-malhotra/asdf-fixtures/internal/fixture"
	"github.com/robert-malhotra/asdf-fixtures/internal/ndarray"
)

const fileHeader = "#ASDF 1.0.0\n#ASDF_STANDARD 1.5.0\n%YAML 1.1\n%TAG ! tag:stsci.edu:asdf/\n--- !core/asdf-1.1.0\n"

type block struct {
	offset     int64
	headerSize uint16
	flags      uint32
	label      compression.Label
	allocated  uint64
	used       uint64
	size       uint64
	checksum   [16]byte
	data       []byte
}

type parsedFile struct {
	root   *yaml.Node
	blocks []block
	index  []int64
}

// parseFile splits an encoded file into its tree, blocks and block index.
func parseFile(t *testing.T, data []byte) parsedFile {
	t.Helper()
	s := string(data)
	require.True(t, strings.HasPrefix(s, fileHeader), "unexpected header:\n%s", s[:min(len(s), 120)])

	end := strings.Index(s, "\n...\n")
	require.Positive(t, end, "missing document end marker")

	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(s[len(fileHeader):end+1]), &doc))
	require.Equal(t, yaml.DocumentNode, doc.Kind)

	pf := parsedFile{root: doc.Content[0]}
	pos := end + len("\n...\n")
	for pos < len(data) && bytes.HasPrefix(data[pos:], []byte(BlockMagic)) {
		require.GreaterOrEqual(t, len(data)-pos, 6+BlockHeaderSize, "truncated block header at %d", pos)
		b := block{offset: int64(pos)}
		h := data[pos+len(BlockMagic):]
		b.headerSize = encbin.BigEndian.Uint16(h[0:])
		b.flags = encbin.BigEndian.Uint32(h[2:])
		copy(b.label[:], h[6:10])
		b.allocated = encbin.BigEndian.Uint64(h[10:])
		b.used = encbin.BigEndian.Uint64(h[18:])
		b.size = encbin.BigEndian.Uint64(h[26:])
		copy(b.checksum[:], h[34:50])

		start := pos + 6 + int(b.headerSize)
		require.LessOrEqual(t, start+int(b.allocated), len(data), "block at %d overruns the file", pos)
		b.data = data[start : start+int(b.used)]
		pf.blocks = append(pf.blocks, b)
		pos = start + int(b.allocated)
	}

	rest := s[pos:]
	if rest == "" {
		return pf
	}
	const indexPrefix = "#ASDF BLOCK INDEX\n%YAML 1.1\n---\n"
	require.True(t, strings.HasPrefix(rest, indexPrefix), "unexpected trailer %q", rest)
	require.True(t, strings.HasSuffix(rest, "...\n"))
	body := strings.TrimSuffix(strings.TrimPrefix(rest, indexPrefix), "...\n")
	require.NoError(t, yaml.Unmarshal([]byte(body), &pf.index))
	return pf
}

func mustGet(t *testing.T, n *yaml.Node, key string) *yaml.Node {
	t.Helper()
	require.Equal(t, yaml.MappingNode, n.Kind)
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	t.Fatalf("key %q not found", key)
	return nil
}

func keys(n *yaml.Node) []string {
	var out []string
	for i := 0; i+1 < len(n.Content); i += 2 {
		out = append(out, n.Content[i].Value)
	}
	return out
}

func sampleTree(t *testing.T) *ndarray.Tree {
	t.Helper()
	u8 := domain.MustNew(domain.KindUnsigned, 8, domain.BigEndian)
	i16 := domain.MustNew(domain.KindSigned, 16, domain.LittleEndian)

	a, err := ndarray.New("ramp", []int{4}, u8, domain.Values{domain.Uint(0), domain.Uint(1), domain.Uint(2), domain.Uint(3)})
	require.NoError(t, err)
	b, err := ndarray.New("grid", []int{2, 2}, i16, domain.Values{domain.Int(-1), domain.Int(0), domain.Int(1), domain.Int(300)})
	require.NoError(t, err)

	tree := ndarray.NewTree()
	require.NoError(t, tree.Add(a, b))
	tree.AddHistory("two small arrays: true")
	return tree
}

func TestMarshalTree(t *testing.T) {
	data, err := Marshal(sampleTree(t))
	require.NoError(t, err)
	pf := parseFile(t, data)

	require.Equal(t, []string{"asdf_library", "history", "ramp", "grid"}, keys(pf.root))

	lib := mustGet(t, pf.root, "asdf_library")
	require.Equal(t, tagSoftware, lib.Tag)
	require.Equal(t, "asdf-fixtures", mustGet(t, lib, "name").Value)
	require.Equal(t, Version, mustGet(t, lib, "version").Value)

	entries := mustGet(t, mustGet(t, pf.root, "history"), "entries")
	require.Len(t, entries.Content, 1)
	require.Equal(t, tagHistoryEntry, entries.Content[0].Tag)
	desc := mustGet(t, entries.Content[0], "description")
	require.Equal(t, "two small arrays: true", desc.Value)
	require.Equal(t, "!!str", desc.ShortTag())

	grid := mustGet(t, pf.root, "grid")
	require.Equal(t, tagNDArray, grid.Tag)
	require.Equal(t, "1", mustGet(t, grid, "source").Value)
	require.Equal(t, "int16", mustGet(t, grid, "datatype").Value)
	require.Equal(t, "little", mustGet(t, grid, "byteorder").Value)

	var shape []int
	require.NoError(t, mustGet(t, grid, "shape").Decode(&shape))
	require.Equal(t, []int{2, 2}, shape)
}

func TestMarshalBlocks(t *testing.T) {
	tree := sampleTree(t)
	data, err := Marshal(tree)
	require.NoError(t, err)
	pf := parseFile(t, data)

	require.Len(t, pf.blocks, 2)
	for i, a := range tree.Arrays() {
		want, err := a.Bytes()
		require.NoError(t, err)

		b := pf.blocks[i]
		require.Equal(t, uint16(BlockHeaderSize), b.headerSize)
		require.Zero(t, b.flags)
		require.True(t, b.label.IsNone())
		require.Equal(t, uint64(len(want)), b.allocated)
		require.Equal(t, uint64(len(want)), b.used)
		require.Equal(t, uint64(len(want)), b.size)
		require.Equal(t, md5.Sum(want), b.checksum)
		require.Equal(t, want, b.data)
	}

	require.Equal(t, []byte{0xFF, 0xFF, 0, 0, 1, 0, 0x2C, 0x01}, pf.blocks[1].data)

	require.Len(t, pf.index, 2)
	for i, off := range pf.index {
		require.Equal(t, pf.blocks[i].offset, off)
		require.Equal(t, BlockMagic, string(data[off:off+4]))
	}
}

func TestMarshalOptions(t *testing.T) {
	data, err := Marshal(sampleTree(t),
		WithChecksums(false),
		WithBlockIndex(false),
		WithLibrary(Software{Name: "custom", Version: "9.9", Author: "fixtures team"}),
	)
	require.NoError(t, err)
	require.NotContains(t, string(data), "#ASDF BLOCK INDEX")

	pf := parseFile(t, data)
	require.Nil(t, pf.index)
	for _, b := range pf.blocks {
		require.Equal(t, [16]byte{}, b.checksum)
	}

	lib := mustGet(t, pf.root, "asdf_library")
	require.Equal(t, []string{"author", "name", "version"}, keys(lib))
	require.Equal(t, "custom", mustGet(t, lib, "name").Value)

	// a library without a name keeps the default
	data, err = Marshal(sampleTree(t), WithLibrary(Software{Version: "1"}))
	require.NoError(t, err)
	pf = parseFile(t, data)
	require.Equal(t, DefaultLibrary.Name, mustGet(t, mustGet(t, pf.root, "asdf_library"), "name").Value)
}

func TestMarshalCompressed(t *testing.T) {
	reg, err := fixture.Lookup("numeric.asdf")
	require.NoError(t, err)
	tree, err := reg.Tree()
	require.NoError(t, err)

	for _, name := range []string{"zlib", "lz4"} {
		t.Run(name, func(t *testing.T) {
			data, err := Marshal(tree, WithCompression(name))
			require.NoError(t, err)
			pf := parseFile(t, data)
			require.Len(t, pf.blocks, tree.Len())

			for i, a := range tree.Arrays() {
				want, err := a.Bytes()
				require.NoError(t, err)

				b := pf.blocks[i]
				require.Equal(t, name, b.label.String())
				require.Equal(t, uint64(len(b.data)), b.used)
				require.Equal(t, b.used, b.allocated)
				require.Equal(t, uint64(len(want)), b.size)
				require.Equal(t, md5.Sum(want), b.checksum, "checksum covers the uncompressed data")

				got, err := compression.Decompress(b.label, b.data, b.size)
				require.NoError(t, err)
				require.Equal(t, want, got)
			}
			for i, off := range pf.index {
				require.Equal(t, pf.blocks[i].offset, off)
			}
		})
	}

	_, err = Marshal(sampleTree(t), WithCompression("rar"))
	require.ErrorIs(t, err, compression.ErrUnsupported)
	_, err = Marshal(sampleTree(t), WithCompression("bzip2"))
	require.ErrorIs(t, err, compression.ErrInvalidLabel)
}

func TestMarshalEmptyArray(t *testing.T) {
	f64 := domain.MustNew(domain.KindFloat, 64, domain.LittleEndian)
	a, err := ndarray.New("0d", []int{0}, f64, nil)
	require.NoError(t, err)
	tree := ndarray.NewTree()
	require.NoError(t, tree.Add(a))

	data, err := Marshal(tree)
	require.NoError(t, err)
	pf := parseFile(t, data)
	require.Len(t, pf.blocks, 1)
	require.Zero(t, pf.blocks[0].size)
	require.NotContains(t, keys(pf.root), "history")

	var shape []int
	require.NoError(t, mustGet(t, mustGet(t, pf.root, "0d"), "shape").Decode(&shape))
	require.Equal(t, []int{0}, shape)
}

func TestMarshalNoArrays(t *testing.T) {
	data, err := Marshal(ndarray.NewTree())
	require.NoError(t, err)
	pf := parseFile(t, data)
	require.Empty(t, pf.blocks)
	require.Nil(t, pf.index)
}

func TestEncodeErrorWritesNothing(t *testing.T) {
	u8 := domain.MustNew(domain.KindUnsigned, 8, domain.BigEndian)
	a, err := ndarray.New("bad", []int{1}, u8, domain.Values{domain.Uint(1000)})
	require.NoError(t, err)
	tree := ndarray.NewTree()
	require.NoError(t, tree.Add(a))

	var buf bytes.Buffer
	err = Encode(&buf, tree)
	require.ErrorIs(t, err, domain.ErrValueOutOfRange)
	require.Zero(t, buf.Len())
}

func TestMarshalDeterministic(t *testing.T) {
	for _, reg := range fixture.All() {
		t.Run(reg.Name, func(t *testing.T) {
			a, err := reg.Tree()
			require.NoError(t, err)
			b, err := reg.Tree()
			require.NoError(t, err)

			da, err := Marshal(a)
			require.NoError(t, err)
			db, err := Marshal(b)
			require.NoError(t, err)
			require.Equal(t, da, db)

			pf := parseFile(t, da)
			require.Len(t, pf.blocks, a.Len())
		})
	}
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "fixtures")
	path := filepath.Join(dir, "sample.asdf")
	tree := sampleTree(t)

	fw := NewFileWriter(WithBlockIndex(false))
	require.NoError(t, fw.WriteFile(path, tree))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	want, err := Marshal(tree, WithBlockIndex(false))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestWriteFileErrors(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := WriteFile(filepath.Join(blocker, "out.asdf"), sampleTree(t))
	require.Error(t, err)

	u8 := domain.MustNew(domain.KindUnsigned, 8, domain.BigEndian)
	bad, _ := ndarray.New("bad", []int{1}, u8, domain.Values{domain.Int(-5)})
	tree := ndarray.NewTree()
	require.NoError(t, tree.Add(bad))

	target := filepath.Join(dir, "sub", "bad.asdf")
	require.Error(t, WriteFile(target, tree))
	_, err = os.Stat(filepath.Join(dir, "sub"))
	require.True(t, os.IsNotExist(err), "encoding errors must not touch the file system")
}
