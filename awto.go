// Package awto marks which schema models become persisted entities.
//
// A schema package registers its models with a single top-level call:
//
//	var _ = awto.RegisterSchemas(UserAccount{}, Post{})
//
// The call is never evaluated for its value at compile time of the database
// package; the awto compiler reads it from the schema source and generates
// one module block per registered model.
package awto

const (
	// Name is the tool name written into generated file headers.
	Name = "awto"
	// Version is the tool version written into generated file headers.
	Version = "0.1.0"
	// ImportPath is the import path of this package. Schema files may import
	// it under any local name.
	ImportPath = "github.com/syssam/awto"
	// RegisterFunc is the name of the registration marker.
	RegisterFunc = "RegisterSchemas"
)

// Registration is the value returned by RegisterSchemas.
type Registration struct {
	models []any
}

// RegisterSchemas registers the given models. Models may be passed as values
// (User{}) or pointers (&User{}, new(User), (*User)(nil)).
func RegisterSchemas(models ...any) Registration {
	return Registration{models: models}
}

// Len returns the number of models passed to RegisterSchemas.
func (r Registration) Len() int {
	return len(r.models)
}
