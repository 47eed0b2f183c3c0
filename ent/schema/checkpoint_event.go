package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// CheckpointEvent records lifecycle transitions of a checkpoint attempt.
type CheckpointEvent struct {
	ent.Schema
}

func (CheckpointEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (CheckpointEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("attempt_id").
			NotEmpty().
			Comment("UUID shared by all events of one attempt"),
		field.String("checkpoint_id").
			NotEmpty(),
		field.String("subject_id").
			Default(""),
		field.Enum("action").
			Values("start", "round", "complete", "abandon"),
		field.Int("round").
			Default(1).
			Comment("Round the event refers to"),
		field.Int("questions").
			Default(0).
			Comment("Questions in the round"),
		field.JSON("missed_concepts", []string{}).
			Optional().
			Comment("Concepts missed in the round that just ended"),
		field.Int("duration_secs").
			Default(0),
	}
}

func (CheckpointEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("attempt_id"),
		index.Fields("checkpoint_id"),
		index.Fields("action"),
	}
}
