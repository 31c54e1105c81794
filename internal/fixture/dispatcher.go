package fixture

import (
	"fmt"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/robert-malhotra/asdf-fixtures/internal/ndarray"
)

// Writer persists a fixture tree as a container file at path.
type Writer interface {
	WriteFile(path string, tree *ndarray.Tree) error
}

// Dispatcher resolves fixture names and delegates persistence to a Writer.
type Dispatcher struct {
	w   Writer
	log *zap.Logger
}

// NewDispatcher returns a dispatcher writing through w. A nil logger
// disables logging.
func NewDispatcher(w Writer, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{w: w, log: log}
}

// Generate builds the named fixture and writes it to dir/name. An unknown
// name fails with UnknownFixtureError before anything is written.
func (d *Dispatcher) Generate(name, dir string) (string, error) {
	reg, err := Lookup(name)
	if err != nil {
		return "", err
	}
	return d.generate(reg, dir)
}

// GenerateAll writes every registered fixture into dir, in registry order.
// It keeps going after a failure and returns all errors combined.
func (d *Dispatcher) GenerateAll(dir string) ([]string, error) {
	var (
		paths []string
		errs  error
	)
	for _, reg := range All() {
		path, err := d.generate(reg, dir)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		paths = append(paths, path)
	}
	return paths, errs
}

func (d *Dispatcher) generate(reg Registration, dir string) (string, error) {
	tree, err := reg.Tree()
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, reg.Name)
	d.log.Debug("Writing fixture",
		zap.Stringer("fixture", reg.ID),
		zap.String("path", path),
		zap.Strings("arrays", tree.Names()))

	if err := d.w.WriteFile(path, tree); err != nil {
		return "", fmt.Errorf("writing fixture %s: %w", reg.Name, err)
	}
	d.log.Info("Fixture written", zap.String("path", path))
	return path, nil
}
