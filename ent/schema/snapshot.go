package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Snapshot is a saved copy of learner progress. A new row is written each
// time a checkpoint is passed; older rows are pruned.
type Snapshot struct {
	ent.Schema
}

func (Snapshot) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Comment("Last event sequence covered by this snapshot"),
		field.Time("timestamp").
			Default(time.Now).
			Immutable(),
		field.String("curriculum_version").
			Default("").
			Comment("Catalog version the progress was recorded against"),
		field.JSON("data", map[string]any{}),
	}
}

func (Snapshot) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("timestamp"),
	}
}
