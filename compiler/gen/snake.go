package gen

import (
	"fmt"
	"go/token"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Module is the module block generated for a registered model.
type Module struct {
	Model string // declared model identifier, e.g. UserAccount
	Name  string // snake-case name passed to the include directive, e.g. user_account
	Ident string // Go identifier of the block; Name unless Name is reserved
}

// Snake converts an identifier to its lower-case, underscore separated form.
// Words break at underscores, at a lower-case letter or digit followed by an
// upper-case letter, and before the last upper-case letter of an acronym
// followed by a lower-case letter.
//
//	UserAccount => user_account
//	HTTPServer  => http_server
//	V2Model     => v2_model
func Snake(name string) string {
	var (
		rs    = []rune(name)
		words []string
		cur   []rune
	)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	for i, r := range rs {
		if r == '_' {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := rs[i-1]
			switch {
			case unicode.IsLower(prev), unicode.IsDigit(prev):
				flush()
			case unicode.IsUpper(prev) && i+1 < len(rs) && unicode.IsLower(rs[i+1]):
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	lower := cases.Lower(language.Und)
	for i, w := range words {
		words[i] = lower.String(w)
	}
	return strings.Join(words, "_")
}

// Modules converts the registered models to module blocks, preserving their
// order. Two models with the same module identifier fail with a
// CollisionError.
func Modules(models []string) ([]Module, error) {
	modules := make([]Module, 0, len(models))
	seen := make(map[string]string, len(models))
	for _, model := range models {
		name := Snake(model)
		if name == "" {
			return nil, NewGenerationError("", fmt.Sprintf("model %q has no module name", model), nil)
		}
		ident := name
		if token.IsKeyword(ident) || ident == "init" {
			ident += "_"
		}
		if !token.IsIdentifier(ident) {
			return nil, NewGenerationError("", fmt.Sprintf("model %q maps to module %q, which is not a Go identifier", model, name), nil)
		}
		if first, ok := seen[ident]; ok {
			return nil, &CollisionError{Module: ident, Models: []string{first, model}}
		}
		seen[ident] = model
		modules = append(modules, Module{Model: model, Name: name, Ident: ident})
	}
	return modules, nil
}
