// Package docex pulls named code examples out of reStructuredText
// documents so they can be compiled and run as tests.
//
// An example is a code directive carrying a :name: option:
//
//	.. code:: c
//	   :name: test-open-file
//
//	   int main(void) { return 0; }
//
// Only names starting with the configured prefix are extracted. The body
// loses three columns of indentation.
package docex

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const indent = "   "

// ErrEmptyLanguage is returned when no directive language is set.
var ErrEmptyLanguage = errors.New("docex: empty language")

type Options struct {
	Language string
	Prefix   string
}

// DefaultOptions selects C blocks named test-*.
var DefaultOptions = Options{Language: "c", Prefix: "test-"}

type Example struct {
	Name string
	Code string
}

// Extractor holds the compiled patterns for one set of options.
type Extractor struct {
	block *regexp.Regexp
	name  *regexp.Regexp
}

func NewExtractor(opts Options) (*Extractor, error) {
	if len(opts.Language) == 0 {
		return nil, ErrEmptyLanguage
	}
	block, err := regexp.Compile(`(?m)^\s*\.\. code:: ` + regexp.QuoteMeta(opts.Language) +
		`\s*\n((?:\s*:\w+:.*\n)*)((?:\s{3,}.*\n)+)`)
	if err != nil {
		return nil, fmt.Errorf("docex: compiling block pattern: %w", err)
	}
	name, err := regexp.Compile(`:name:\s*(` + regexp.QuoteMeta(opts.Prefix) + `\S+)`)
	if err != nil {
		return nil, fmt.Errorf("docex: compiling name pattern: %w", err)
	}
	return &Extractor{block: block, name: name}, nil
}

// Extract returns the named examples of content in document order.
func (e *Extractor) Extract(content string) []Example {
	var out []Example
	for _, m := range e.block.FindAllStringSubmatch(content, -1) {
		directives, body := m[1], m[2]
		nm := e.name.FindStringSubmatch(directives)
		if nm == nil {
			continue
		}
		out = append(out, Example{Name: nm[1], Code: dedent(body)})
	}
	return out
}

// Extract reads r to the end and extracts its examples.
func Extract(r io.Reader, opts Options) ([]Example, error) {
	e, err := NewExtractor(opts)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("docex: reading document: %w", err)
	}
	return e.Extract(string(data)), nil
}

// dedent strips one level of indentation from every line that has it. The
// trailing newline is dropped.
func dedent(body string) string {
	lines := strings.Split(strings.TrimSuffix(body, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(strings.TrimSuffix(line, "\r"), indent)
	}
	return strings.Join(lines, "\n")
}

// WriteAll writes every example to dir as <name><ext>, creating dir if
// needed, and returns the written paths. Later examples with the same name
// overwrite earlier ones.
func WriteAll(dir, ext string, examples []Example) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("docex: creating %s: %w", dir, err)
	}
	paths := make([]string, 0, len(examples))
	for _, ex := range examples {
		if strings.ContainsAny(ex.Name, `/\`) {
			return paths, fmt.Errorf("docex: example name %q is not a file name", ex.Name)
		}
		path := filepath.Join(dir, ex.Name+ext)
		if err := os.WriteFile(path, []byte(ex.Code), 0o644); err != nil {
			return paths, fmt.Errorf("docex: writing %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
