package gen

import (
	"os"
	"path/filepath"

	"github.com/dave/jennifer/jen"
)

// BindingsFile is the file the build step writes into the source directory.
const BindingsFile = "bindings.go"

// RenderBindings renders the bindings of the models for the source package
// pkg. Each model is registered with the ORM runtime under its module name
// from an init function, which makes the module blocks of the library entry
// resolvable once the package is imported.
func RenderBindings(pkg, ormPkg string, modules []Module) ([]byte, error) {
	f := jen.NewFile(pkg)
	f.HeaderComment(DefaultHeader)
	f.ImportAlias(ormPkg, "orm")

	f.Comment("table binds a model to its storage table.")
	f.Type().Id("table").String()
	f.Line()
	f.Comment("Table implements orm.Binding.")
	f.Func().Params(jen.Id("t").Id("table")).Id("Table").Params().String().Block(
		jen.Return(jen.String().Call(jen.Id("t"))),
	)
	f.Line()
	f.Var().Id("_").Qual(ormPkg, "Binding").Op("=").Id("table").Call(jen.Lit(""))
	f.Line()
	f.Func().Id("init").Params().BlockFunc(func(g *jen.Group) {
		for _, m := range modules {
			g.Qual(ormPkg, "Register").Call(jen.Lit(m.Name), jen.Id("table").Call(jen.Lit(m.Name)))
		}
	})
	return render(f, BindingsFile)
}

// WriteBindings writes the bindings of the models into dir. The package
// name is the last element of dir.
func WriteBindings(dir, ormPkg string, modules []Module) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return NewPathError(OpWriteFile, dir, err)
	}
	src, err := RenderBindings(filepath.Base(abs), ormPkg, modules)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return NewPathError(OpCreateDir, abs, err)
	}
	file := filepath.Join(abs, BindingsFile)
	if err := os.WriteFile(file, src, 0o644); err != nil {
		return NewPathError(OpWriteFile, file, err)
	}
	return nil
}
