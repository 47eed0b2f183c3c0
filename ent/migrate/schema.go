// Code generated by ent, DO NOT EDIT.

package migrate

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// AnswerEventsColumns holds the columns for the "answer_events" table.
	AnswerEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "attempt_id", Type: field.TypeString},
		{Name: "checkpoint_id", Type: field.TypeString},
		{Name: "concept_id", Type: field.TypeString},
		{Name: "round", Type: field.TypeInt},
		{Name: "prompt", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "option_index", Type: field.TypeInt},
		{Name: "correct", Type: field.TypeBool},
		{Name: "adaptive", Type: field.TypeBool, Default: false},
		{Name: "time_ms", Type: field.TypeInt, Default: 0},
	}
	// AnswerEventsTable holds the schema information for the "answer_events" table.
	AnswerEventsTable = &schema.Table{
		Name:       "answer_events",
		Columns:    AnswerEventsColumns,
		PrimaryKey: []*schema.Column{AnswerEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "answerevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{AnswerEventsColumns[2]},
			},
			{
				Name:    "answerevent_attempt_id",
				Unique:  false,
				Columns: []*schema.Column{AnswerEventsColumns[3]},
			},
			{
				Name:    "answerevent_concept_id",
				Unique:  false,
				Columns: []*schema.Column{AnswerEventsColumns[5]},
			},
			{
				Name:    "answerevent_correct",
				Unique:  false,
				Columns: []*schema.Column{AnswerEventsColumns[9]},
			},
		},
	}
	// CheckpointEventsColumns holds the columns for the "checkpoint_events" table.
	CheckpointEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "attempt_id", Type: field.TypeString},
		{Name: "checkpoint_id", Type: field.TypeString},
		{Name: "subject_id", Type: field.TypeString, Default: ""},
		{Name: "action", Type: field.TypeEnum, Enums: []string{"start", "round", "complete", "abandon"}},
		{Name: "round", Type: field.TypeInt, Default: 1},
		{Name: "questions", Type: field.TypeInt, Default: 0},
		{Name: "missed_concepts", Type: field.TypeJSON, Nullable: true},
		{Name: "duration_secs", Type: field.TypeInt, Default: 0},
	}
	// CheckpointEventsTable holds the schema information for the "checkpoint_events" table.
	CheckpointEventsTable = &schema.Table{
		Name:       "checkpoint_events",
		Columns:    CheckpointEventsColumns,
		PrimaryKey: []*schema.Column{CheckpointEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "checkpointevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{CheckpointEventsColumns[2]},
			},
			{
				Name:    "checkpointevent_attempt_id",
				Unique:  false,
				Columns: []*schema.Column{CheckpointEventsColumns[3]},
			},
			{
				Name:    "checkpointevent_checkpoint_id",
				Unique:  false,
				Columns: []*schema.Column{CheckpointEventsColumns[4]},
			},
			{
				Name:    "checkpointevent_action",
				Unique:  false,
				Columns: []*schema.Column{CheckpointEventsColumns[6]},
			},
		},
	}
	// LlmRequestEventsColumns holds the columns for the "llm_request_events" table.
	LlmRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// LlmRequestEventsTable holds the schema information for the "llm_request_events" table.
	LlmRequestEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    LlmRequestEventsColumns,
		PrimaryKey: []*schema.Column{LlmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "llmrequestevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{LlmRequestEventsColumns[2]},
			},
			{
				Name:    "llmrequestevent_provider",
				Unique:  false,
				Columns: []*schema.Column{LlmRequestEventsColumns[3]},
			},
			{
				Name:    "llmrequestevent_purpose",
				Unique:  false,
				Columns: []*schema.Column{LlmRequestEventsColumns[5]},
			},
			{
				Name:    "llmrequestevent_success",
				Unique:  false,
				Columns: []*schema.Column{LlmRequestEventsColumns[9]},
			},
		},
	}
	// LearnersColumns holds the columns for the "learners" table.
	LearnersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "name", Type: field.TypeString},
		{Name: "email", Type: field.TypeString, Default: ""},
		{Name: "role", Type: field.TypeString, Default: "student"},
		{Name: "track", Type: field.TypeString, Default: "academic"},
		{Name: "subject", Type: field.TypeString, Default: ""},
		{Name: "signed_in", Type: field.TypeBool, Default: true},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// LearnersTable holds the schema information for the "learners" table.
	LearnersTable = &schema.Table{
		Name:       "learners",
		Columns:    LearnersColumns,
		PrimaryKey: []*schema.Column{LearnersColumns[0]},
	}
	// SnapshotsColumns holds the columns for the "snapshots" table.
	SnapshotsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "curriculum_version", Type: field.TypeString, Default: ""},
		{Name: "data", Type: field.TypeJSON},
	}
	// SnapshotsTable holds the schema information for the "snapshots" table.
	SnapshotsTable = &schema.Table{
		Name:       "snapshots",
		Columns:    SnapshotsColumns,
		PrimaryKey: []*schema.Column{SnapshotsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "snapshot_timestamp",
				Unique:  false,
				Columns: []*schema.Column{SnapshotsColumns[2]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		AnswerEventsTable,
		CheckpointEventsTable,
		LlmRequestEventsTable,
		LearnersTable,
		SnapshotsTable,
	}
)

func init() {
}
