package schema

import "github.com/syssam/awto"

type A struct{}

type B struct{}

var _ = awto.RegisterSchemas(A{})

var _ = awto.RegisterSchemas(B{})
