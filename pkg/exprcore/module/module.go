// Package module loads named program modules and persists their data.
//
// A module is an app (.sc) or a library (.scl). Each module may own one
// value of persistent data, saved as a versioned JSON snapshot in a Store.
package module

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Source file extensions.
const (
	AppExt     = ".sc"
	LibraryExt = ".scl"
)

// ErrInvalidModule is returned for a module without a name.
var ErrInvalidModule = errors.New("invalid module")

// Module is a named unit of program source.
type Module struct {
	Name    string
	Code    string
	Library bool
}

// New creates a module. The name is required.
func New(name, code string, library bool) (Module, error) {
	if name == "" {
		return Module{}, fmt.Errorf("%w: empty name", ErrInvalidModule)
	}
	return Module{Name: name, Code: code, Library: library}, nil
}

// Ext returns the source extension for the module kind.
func (m Module) Ext() string {
	if m.Library {
		return LibraryExt
	}
	return AppExt
}

// FromPath reads a module from disk. The name is the lowercased file name
// without its extension; a .scl file is a library.
func FromPath(p string) (Module, error) {
	name, library := ParseName(filepath.Base(p))
	code, err := os.ReadFile(p)
	if err != nil {
		return Module{}, fmt.Errorf("load module: %w", err)
	}
	return New(name, string(code), library)
}

// FromFS reads a bundled module named scriptName from dir in fsys, adding the
// extension for its kind.
func FromFS(fsys fs.FS, dir, scriptName string, library bool) (Module, error) {
	ext := AppExt
	if library {
		ext = LibraryExt
	}
	return FromFSWithName(fsys, path.Join(dir, scriptName+ext), scriptName, library)
}

// FromFSWithName reads the module at fullPath in fsys under a custom name.
func FromFSWithName(fsys fs.FS, fullPath, name string, library bool) (Module, error) {
	code, err := fs.ReadFile(fsys, fullPath)
	if err != nil {
		return Module{}, fmt.Errorf("load bundled module: %w", err)
	}
	return New(strings.ToLower(name), string(code), library)
}

// ParseName derives a module name from a file name: a trailing source
// extension is removed and the rest lowercased. library reports a .scl file.
func ParseName(base string) (name string, library bool) {
	switch {
	case strings.HasSuffix(base, LibraryExt):
		base, library = strings.TrimSuffix(base, LibraryExt), true
	case strings.HasSuffix(base, AppExt):
		base = strings.TrimSuffix(base, AppExt)
	}
	return strings.ToLower(base), library
}
