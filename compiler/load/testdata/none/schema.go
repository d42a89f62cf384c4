package schema

import "github.com/syssam/awto"

type User struct{}

func init() {
	awto.RegisterSchemas(User{})
}

var registered = other.RegisterSchemas(User{})
