package dataset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Loader reads one tabular format into a Table.
type Loader interface {
	CanLoad(filename string) bool
	Read(r io.Reader, name string, opt Options) (*Table, error)
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// Load opens path and reads it with the first loader that accepts its name.
// Failures are returned as *LoadError.
func Load(path string, opt Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()
	return Read(f, path, opt)
}

// Read is Load for an already open source; name selects the format.
func Read(r io.Reader, name string, opt Options) (*Table, error) {
	l := loaderFor(name)
	if l == nil {
		return nil, &LoadError{Path: name, Err: fmt.Errorf("unsupported file type %q", filepath.Ext(name))}
	}
	t, err := l.Read(r, filepath.Base(name), opt)
	if err != nil {
		return nil, &LoadError{Path: name, Err: err}
	}
	return t, nil
}

// Supported reports whether a registered loader accepts filename.
func Supported(filename string) bool { return loaderFor(filename) != nil }

func loaderFor(name string) Loader {
	for _, l := range registry {
		if l.CanLoad(name) {
			return l
		}
	}
	return nil
}

func hasExt(filename string, exts ...string) bool {
	name := strings.ToLower(filename)
	for _, e := range exts {
		if strings.HasSuffix(name, e) {
			return true
		}
	}
	return false
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
}
