// Package load reads the registered models out of a schema package.
//
// The schema entry file is parsed, not compiled: models are recognized by
// the shape of the registration marker call, and their names are taken
// verbatim from the source.
package load

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path"
	"strconv"

	"github.com/syssam/awto"
)

// Invocation is a call expression initializing a top-level variable of a
// schema file, such as the marker in `var _ = awto.RegisterSchemas(User{})`.
type Invocation struct {
	Qualifier string // package qualifier, empty for bare calls
	Name      string // called function name
	TypeArgs  []ast.Expr
	Args      []ast.Expr
	Pos       token.Position
}

// Extract parses the given schema source and returns the models registered
// by the first marker invocation, in argument order.
func Extract(filename string, src []byte) ([]string, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, &ParseError{File: filename, Cause: err}
	}
	imports := importNames(f)
	for _, inv := range Invocations(fset, f) {
		if inv.isMarker(imports) {
			return inv.models(), nil
		}
	}
	return nil, ErrNoRegistration
}

// ExtractFile reads and extracts the schema entry file at the given path.
func ExtractFile(path string) ([]string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("awto: could not read file %q: %w", path, err)
	}
	return Extract(path, src)
}

// Invocations returns the top-level variable initializer calls of the
// given file in source order.
func Invocations(fset *token.FileSet, f *ast.File) []Invocation {
	var invs []Invocation
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.VAR {
			continue
		}
		for _, spec := range gd.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			for _, v := range vs.Values {
				call, ok := ast.Unparen(v).(*ast.CallExpr)
				if !ok {
					continue
				}
				if inv, ok := newInvocation(call); ok {
					inv.Pos = fset.Position(call.Pos())
					invs = append(invs, inv)
				}
			}
		}
	}
	return invs
}

func newInvocation(call *ast.CallExpr) (Invocation, bool) {
	inv := Invocation{Args: call.Args}
	fun := ast.Unparen(call.Fun)
	switch x := fun.(type) {
	case *ast.IndexExpr:
		inv.TypeArgs = []ast.Expr{x.Index}
		fun = x.X
	case *ast.IndexListExpr:
		inv.TypeArgs = x.Indices
		fun = x.X
	}
	switch x := fun.(type) {
	case *ast.Ident:
		inv.Name = x.Name
	case *ast.SelectorExpr:
		pkg, ok := x.X.(*ast.Ident)
		if !ok {
			return inv, false
		}
		inv.Qualifier, inv.Name = pkg.Name, x.Sel.Name
	default:
		return inv, false
	}
	return inv, true
}

// isMarker reports whether the invocation calls awto.RegisterSchemas under
// its fully-qualified spelling, a local import alias, or bare.
func (inv Invocation) isMarker(imports map[string]string) bool {
	if inv.Name != awto.RegisterFunc {
		return false
	}
	switch inv.Qualifier {
	case "", awto.Name:
		return true
	default:
		return imports[inv.Qualifier] == awto.ImportPath
	}
}

// models collects the model identifiers of the invocation, type arguments
// first. Arguments that do not name a model are dropped.
func (inv Invocation) models() []string {
	models := make([]string, 0, len(inv.TypeArgs)+len(inv.Args))
	for _, list := range [][]ast.Expr{inv.TypeArgs, inv.Args} {
		for _, arg := range list {
			if name, ok := modelName(arg); ok && name != "_" {
				models = append(models, name)
			}
		}
	}
	return models
}

func modelName(expr ast.Expr) (string, bool) {
	switch x := ast.Unparen(expr).(type) {
	case *ast.Ident:
		return x.Name, true
	case *ast.SelectorExpr:
		return x.Sel.Name, true
	case *ast.CompositeLit:
		if x.Type == nil {
			return "", false
		}
		return modelName(x.Type)
	case *ast.UnaryExpr:
		if x.Op != token.AND {
			return "", false
		}
		return modelName(x.X)
	case *ast.StarExpr:
		return modelName(x.X)
	case *ast.IndexExpr:
		return modelName(x.X)
	case *ast.IndexListExpr:
		return modelName(x.X)
	case *ast.CallExpr:
		// new(User)
		if id, ok := x.Fun.(*ast.Ident); ok && id.Name == "new" && len(x.Args) == 1 {
			return modelName(x.Args[0])
		}
		// (*User)(nil)
		if _, ok := x.Fun.(*ast.ParenExpr); ok {
			return modelName(x.Fun)
		}
	}
	return "", false
}

// importNames maps the local name of every import of f to its path.
func importNames(f *ast.File) map[string]string {
	names := make(map[string]string, len(f.Imports))
	for _, spec := range f.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		name := path.Base(p)
		if spec.Name != nil {
			name = spec.Name.Name
		}
		names[name] = p
	}
	return names
}
