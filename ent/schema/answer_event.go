package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records one submitted answer within a checkpoint attempt.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("attempt_id").
			NotEmpty(),
		field.String("checkpoint_id").
			NotEmpty(),
		field.String("concept_id").
			NotEmpty(),
		field.Int("round"),
		field.Text("prompt").
			Default(""),
		field.Int("option_index"),
		field.Bool("correct"),
		field.Bool("adaptive").
			Default(false).
			Comment("Answered during an adaptive retry round"),
		field.Int("time_ms").
			Default(0),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("attempt_id"),
		index.Fields("concept_id"),
		index.Fields("correct"),
	}
}
