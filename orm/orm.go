// Package orm is the runtime namespace that generated database packages
// re-export.
//
// A generated package has two halves. Its library entry declares one module
// block per model with IncludeModel. Its source directory holds the bindings
// written by `awto generate bindings` during go generate; they call Register
// from an init function with the same snake-case names:
//
//	func init() {
//		orm.Register("user_account", table("user_account"))
//	}
//
// The library entry imports the source directory for side effects, so every
// module block of a built package resolves its Binding.
package orm

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrNotBound is returned when a model has no registered binding.
var ErrNotBound = errors.New("orm: model not bound")

// Binding is the generated runtime half of a model.
type Binding interface {
	// Table returns the storage table of the model.
	Table() string
}

// Model is a module block of a generated database package.
type Model struct {
	name string
}

var (
	mu       sync.RWMutex
	bindings = make(map[string]Binding)
)

// Register binds a model name to its generated binding. It panics if
// called twice for the same name, like database/sql.Register.
func Register(name string, b Binding) {
	mu.Lock()
	defer mu.Unlock()
	if b == nil {
		panic("orm: Register binding is nil")
	}
	if _, dup := bindings[name]; dup {
		panic("orm: Register called twice for model " + name)
	}
	bindings[name] = b
}

// Registered returns the sorted names of all bound models.
func Registered() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IncludeModel returns the module block for the given model name. The
// binding is resolved lazily, so module blocks may be declared before the
// generated bindings run their init functions.
func IncludeModel(name string) *Model {
	return &Model{name: name}
}

// Name returns the snake-case name of the model.
func (m *Model) Name() string {
	return m.name
}

// Binding returns the registered binding of the model.
func (m *Model) Binding() (Binding, error) {
	mu.RLock()
	b, ok := bindings[m.name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotBound, m.name)
	}
	return b, nil
}

// Table returns the storage table of the model binding.
func (m *Model) Table() (string, error) {
	b, err := m.Binding()
	if err != nil {
		return "", err
	}
	return b.Table(), nil
}

// unregister is used by tests.
func unregister(name string) {
	mu.Lock()
	delete(bindings, name)
	mu.Unlock()
}
