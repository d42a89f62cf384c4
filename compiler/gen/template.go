package gen

import (
	"bytes"
	"embed"
	"path"
	"text/template"

	"github.com/syssam/awto"
)

//go:embed template/*.tmpl
var templateFS embed.FS

var tmpl = template.Must(template.ParseFS(templateFS, "template/*.tmpl"))

// templateData is the input of the package templates.
type templateData struct {
	*Config
	Tool           string
	Runtime        string
	RuntimeVersion string
	SourcePackage  string
}

// Templates renders the static artifacts of the generated package: the
// module manifest, the build-step file and the placeholder of the bindings
// directory, so the package builds before go generate runs.
func Templates(cfg *Config) ([]Artifact, error) {
	data := templateData{
		Config:         cfg,
		Tool:           awto.Name,
		Runtime:        awto.ImportPath,
		RuntimeVersion: awto.Version,
		SourcePackage:  path.Base(cfg.SourceDir),
	}
	files := []struct {
		name, tmpl string
	}{
		{"go.mod", "go.mod.tmpl"},
		{"generate.go", "generate.go.tmpl"},
		{path.Join(cfg.SourceDir, "doc.go"), "doc.go.tmpl"},
	}
	artifacts := make([]Artifact, 0, len(files))
	for _, f := range files {
		var buf bytes.Buffer
		if err := tmpl.ExecuteTemplate(&buf, f.tmpl, data); err != nil {
			return nil, NewGenerationError(f.name, "execute template", err)
		}
		artifacts = append(artifacts, Artifact{Name: f.name, Data: buf.Bytes()})
	}
	return artifacts, nil
}
