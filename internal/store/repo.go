package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match for LLM events
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM request events sharing a key (purpose or model).
type LLMUsage struct {
	Key          string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs float64
}

// Checkpoint event actions.
const (
	ActionStart    = "start"
	ActionRound    = "round"
	ActionComplete = "complete"
	ActionAbandon  = "abandon"
)

// CheckpointEventData captures a checkpoint attempt transition.
type CheckpointEventData struct {
	AttemptID      string
	CheckpointID   string
	SubjectID      string
	Action         string
	Round          int
	Questions      int
	MissedConcepts []string
	DurationSecs   int
}

// AnswerEventData captures one answer inside a checkpoint attempt.
type AnswerEventData struct {
	AttemptID    string
	CheckpointID string
	ConceptID    string
	Round        int
	Prompt       string
	OptionIndex  int
	Correct      bool
	Adaptive     bool
	TimeMs       int
}

// Attempt statuses reported by CheckpointHistory.
const (
	AttemptCompleted  = "completed"
	AttemptAbandoned  = "abandoned"
	AttemptInProgress = "in-progress"
)

// CheckpointAttempt summarizes one checkpoint attempt from its events.
type CheckpointAttempt struct {
	AttemptID    string
	CheckpointID string
	SubjectID    string
	StartedAt    time.Time
	EndedAt      time.Time
	Status       string
	Rounds       int
	Questions    int
	Answers      int
	Correct      int
}

// ConceptAccuracy aggregates answers per concept.
type ConceptAccuracy struct {
	ConceptID string
	Answers   int
	Correct   int
}

// Rate returns the fraction of correct answers, or 0 with no answers.
func (c ConceptAccuracy) Rate() float64 {
	if c.Answers == 0 {
		return 0
	}
	return float64(c.Correct) / float64(c.Answers)
}

// EventRepo appends and queries domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendCheckpointEvent records a checkpoint attempt transition.
	AppendCheckpointEvent(ctx context.Context, data CheckpointEventData) error

	// AppendAnswerEvent records an answer inside a checkpoint attempt.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns a single LLM request event by ID.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates LLM request events by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates LLM request events by model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)

	// CheckpointHistory returns the most recent checkpoint attempts,
	// newest first.
	CheckpointHistory(ctx context.Context, limit int) ([]CheckpointAttempt, error)

	// ConceptAccuracy returns answer counts per concept.
	ConceptAccuracy(ctx context.Context) ([]ConceptAccuracy, error)

	// LatestSequence returns the most recent event sequence number.
	LatestSequence(ctx context.Context) (int64, error)
}

// CheckpointResultData is the stored outcome of a passed checkpoint.
type CheckpointResultData struct {
	Rounds      int       `json:"rounds"`
	Passes      int       `json:"passes"`
	CompletedAt time.Time `json:"completed_at"`
}

// ProgressData is the persisted learner progress.
type ProgressData struct {
	CurriculumVersion string                          `json:"curriculum_version"`
	Mastered          map[string]time.Time            `json:"mastered"`
	Checkpoints       map[string]CheckpointResultData `json:"checkpoints"`
}

// SnapshotData is the document stored in a snapshot row.
type SnapshotData struct {
	Version  int           `json:"version"`
	Progress *ProgressData `json:"progress,omitempty"`
}

// CurriculumVersion returns the catalog version of the stored progress.
func (d SnapshotData) CurriculumVersion() string {
	if d.Progress == nil {
		return ""
	}
	return d.Progress.CurriculumVersion
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the keep most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// LearnerData is the stored local learner profile.
type LearnerData struct {
	Name      string
	Email     string
	Role      string
	Track     string
	Subject   string
	SignedIn  bool
	UpdatedAt time.Time
}

// ProfileRepo stores the single local learner profile.
type ProfileRepo interface {
	// Load returns the stored profile, or nil if none exists.
	Load(ctx context.Context) (*LearnerData, error)

	// Save creates or replaces the profile.
	Save(ctx context.Context, data LearnerData) error

	// Delete removes the profile.
	Delete(ctx context.Context) error
}
