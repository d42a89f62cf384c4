package load

import (
	"errors"
	"fmt"
)

var (
	// ErrParse indicates the schema source is not valid Go.
	ErrParse = errors.New("awto: could not parse schema source code")

	// ErrNoRegistration indicates the schema source has no registration
	// marker. The message shows the expected invocation.
	ErrNoRegistration = errors.New("awto: no schemas registered with the 'awto.RegisterSchemas' marker\n\n" +
		"   Schemas must be registered:\n" +
		"      `var _ = awto.RegisterSchemas(SchemaOne{}, SchemaTwo{})`")
)

// ParseError wraps the parser diagnostic of a schema file.
type ParseError struct {
	File  string
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%v: %v", ErrParse, e.Cause)
	}
	return fmt.Sprintf("%v %q: %v", ErrParse, e.File, e.Cause)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// IsParseError reports whether the error is a ParseError.
func IsParseError(err error) bool {
	var parseErr *ParseError
	return errors.As(err, &parseErr)
}
