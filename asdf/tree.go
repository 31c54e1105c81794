package asdf

import (
	"bytes"
	"fmt"
	"strconv"

	yaml "gopkg.in/yaml.v3"

	"github.com/robert-malhotra/asdf-fixtures/internal/ndarray"
)

// Tags are written in their short form and resolved through the
// "%TAG ! tag:stsci.edu:asdf/" directive of the file header.
const (
	tagASDF         = "!core/asdf-1.1.0"
	tagSoftware     = "!core/software-1.0.0"
	tagHistoryEntry = "!core/history_entry-1.0.0"
	tagNDArray      = "!core/ndarray-1.0.0"
)

func str(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func integer(v int64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v, 10)}
}

func mapping(tag string, pairs ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: tag, Content: pairs}
}

func softwareNode(sw Software) *yaml.Node {
	n := mapping(tagSoftware)
	n.Style = yaml.FlowStyle
	for _, kv := range [][2]string{
		{"author", sw.Author},
		{"homepage", sw.Homepage},
		{"name", sw.Name},
		{"version", sw.Version},
	} {
		if kv[1] != "" {
			n.Content = append(n.Content, str(kv[0]), str(kv[1]))
		}
	}
	return n
}

func historyNode(entries []string) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, desc := range entries {
		seq.Content = append(seq.Content, mapping(tagHistoryEntry, str("description"), str(desc)))
	}
	return mapping("", str("entries"), seq)
}

func ndarrayNode(a *ndarray.Array, source int) *yaml.Node {
	shape := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, dim := range a.Shape() {
		shape.Content = append(shape.Content, integer(int64(dim)))
	}
	d := a.Domain()
	return mapping(tagNDArray,
		str("source"), integer(int64(source)),
		str("datatype"), str(d.Name()),
		str("byteorder"), str(d.ByteOrder().String()),
		str("shape"), shape,
	)
}

// treeNode builds the top-level mapping. Array i refers to block i.
func treeNode(tree *ndarray.Tree, o *options) *yaml.Node {
	root := mapping("", str("asdf_library"), softwareNode(o.library))
	if h := tree.History(); len(h) > 0 {
		root.Content = append(root.Content, str("history"), historyNode(h))
	}
	for i, a := range tree.Arrays() {
		root.Content = append(root.Content, str(a.Name()), ndarrayNode(a, i))
	}
	return root
}

// marshalNode renders n as the body of a YAML document, without any
// document markers.
func marshalNode(n *yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("...\n")), nil
}
