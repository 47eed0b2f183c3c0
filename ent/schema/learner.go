package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Learner is the single local learner profile.
type Learner struct {
	ent.Schema
}

func (Learner) Fields() []ent.Field {
	return []ent.Field{
		field.String("name").
			NotEmpty(),
		field.String("email").
			Default(""),
		field.String("role").
			Default("student"),
		field.String("track").
			Default("academic"),
		field.String("subject").
			Default("").
			Comment("Subject the learner last selected"),
		field.Bool("signed_in").
			Default(true),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}
