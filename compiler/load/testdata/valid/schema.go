package schema

import (
	"github.com/syssam/awto"
	"github.com/syssam/velox"
	"github.com/syssam/velox/schema/field"
)

// UserAccount holds the schema definition for the UserAccount entity.
type UserAccount struct {
	velox.Schema
}

// Fields of the UserAccount.
func (UserAccount) Fields() []velox.Field {
	return []velox.Field{
		field.String("email").Unique(),
	}
}

// Post holds the schema definition for the Post entity.
type Post struct {
	velox.Schema
}

// Comment holds the schema definition for the Comment entity.
type Comment struct {
	velox.Schema
}

var _ = awto.RegisterSchemas(UserAccount{}, Post{}, Comment{})
