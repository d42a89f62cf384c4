package gen

import (
	"bytes"
	"path"
	"strconv"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"
)

// RenderLibrary renders the library entry of the generated package: the
// header, the re-exported ORM runtime types, the import of the build-step
// bindings and one module block per model.
func RenderLibrary(cfg *Config, modules []Module) ([]byte, error) {
	orm := cfg.ORMPackage
	f := jen.NewFile(cfg.Package)
	if cfg.Header != "" {
		f.HeaderComment(cfg.Header)
	}
	f.ImportAlias(orm, ormAlias(modules))
	f.Anon(path.Join(cfg.Module, cfg.SourceDir))

	f.Comment("Re-exported ORM runtime types.")
	f.Type().Defs(
		jen.Id("Model").Op("=").Qual(orm, "Model"),
		jen.Id("Binding").Op("=").Qual(orm, "Binding"),
	)
	for _, m := range modules {
		f.Line()
		f.Commentf("%s database model", m.Model)
		f.Var().Id(m.Ident).Op("=").Qual(orm, "IncludeModel").Call(jen.Lit(m.Name))
	}
	f.Line()
	f.Comment("Models returns the database models in registration order.")
	f.Func().Id("Models").Params().Index().Op("*").Qual(orm, "Model").Block(
		jen.Return(jen.Index().Op("*").Qual(orm, "Model").ValuesFunc(func(g *jen.Group) {
			for _, m := range modules {
				g.Id(m.Ident)
			}
		})),
	)

	return render(f, LibraryFile)
}

// render renders the file and formats it like goimports.
func render(f *jen.File, name string) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, NewGenerationError(name, "render source", err)
	}
	out, err := imports.Process(name, buf.Bytes(), &imports.Options{
		FormatOnly: true,
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
	})
	if err != nil {
		return nil, NewGenerationError(name, "format source", err)
	}
	return out, nil
}

// ormAlias returns an import name for the ORM runtime that no module block
// shadows.
func ormAlias(modules []Module) string {
	taken := make(map[string]bool, len(modules))
	for _, m := range modules {
		taken[m.Ident] = true
	}
	alias := "orm"
	for i := 2; taken[alias]; i++ {
		alias = "orm" + strconv.Itoa(i)
	}
	return alias
}
