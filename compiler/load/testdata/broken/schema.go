package schema

var _ = awto.RegisterSchemas(User{},
