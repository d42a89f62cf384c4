package load

import (
	"fmt"
	"os"
	"path"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
)

// Manifest describes the go.mod of a schema package.
type Manifest struct {
	Path       string // file path of the go.mod
	ModulePath string // module directive path, empty if absent
	Name       string // declared package name: the last module path element before any major version suffix
}

// LoadManifest reads the go.mod at the given path. A missing module
// directive is not an error; it leaves Name empty.
func LoadManifest(file string) (*Manifest, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("awto: could not load schema manifest from %q: %w", file, err)
	}
	f, err := modfile.ParseLax(file, data, nil)
	if err != nil {
		return nil, fmt.Errorf("awto: could not parse schema manifest %q: %w", file, err)
	}
	m := &Manifest{Path: file}
	if f.Module != nil && f.Module.Mod.Path != "" {
		m.ModulePath = f.Module.Mod.Path
		prefix, _, ok := module.SplitPathVersion(m.ModulePath)
		if !ok {
			prefix = m.ModulePath
		}
		m.Name = path.Base(prefix)
	}
	return m, nil
}
