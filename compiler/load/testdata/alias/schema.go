package schema

import reg "github.com/syssam/awto"

type Invoice struct{}

type LineItem struct{}

var (
	_ = reg.RegisterSchemas(&Invoice{}, new(LineItem))
)
