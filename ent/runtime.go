// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/abhisek/masteryloop/ent/answerevent"
	"github.com/abhisek/masteryloop/ent/checkpointevent"
	"github.com/abhisek/masteryloop/ent/learner"
	"github.com/abhisek/masteryloop/ent/llmrequestevent"
	"github.com/abhisek/masteryloop/ent/schema"
	"github.com/abhisek/masteryloop/ent/snapshot"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	answereventMixin := schema.AnswerEvent{}.Mixin()
	answereventMixinFields0 := answereventMixin[0].Fields()
	_ = answereventMixinFields0
	answereventFields := schema.AnswerEvent{}.Fields()
	_ = answereventFields
	// answereventDescTimestamp is the schema descriptor for timestamp field.
	answereventDescTimestamp := answereventMixinFields0[1].Descriptor()
	// answerevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	answerevent.DefaultTimestamp = answereventDescTimestamp.Default.(func() time.Time)
	// answereventDescAttemptID is the schema descriptor for attempt_id field.
	answereventDescAttemptID := answereventFields[0].Descriptor()
	// answerevent.AttemptIDValidator is a validator for the "attempt_id" field. It is called by the builders before save.
	answerevent.AttemptIDValidator = answereventDescAttemptID.Validators[0].(func(string) error)
	// answereventDescCheckpointID is the schema descriptor for checkpoint_id field.
	answereventDescCheckpointID := answereventFields[1].Descriptor()
	// answerevent.CheckpointIDValidator is a validator for the "checkpoint_id" field. It is called by the builders before save.
	answerevent.CheckpointIDValidator = answereventDescCheckpointID.Validators[0].(func(string) error)
	// answereventDescConceptID is the schema descriptor for concept_id field.
	answereventDescConceptID := answereventFields[2].Descriptor()
	// answerevent.ConceptIDValidator is a validator for the "concept_id" field. It is called by the builders before save.
	answerevent.ConceptIDValidator = answereventDescConceptID.Validators[0].(func(string) error)
	// answereventDescPrompt is the schema descriptor for prompt field.
	answereventDescPrompt := answereventFields[4].Descriptor()
	// answerevent.DefaultPrompt holds the default value on creation for the prompt field.
	answerevent.DefaultPrompt = answereventDescPrompt.Default.(string)
	// answereventDescAdaptive is the schema descriptor for adaptive field.
	answereventDescAdaptive := answereventFields[7].Descriptor()
	// answerevent.DefaultAdaptive holds the default value on creation for the adaptive field.
	answerevent.DefaultAdaptive = answereventDescAdaptive.Default.(bool)
	// answereventDescTimeMs is the schema descriptor for time_ms field.
	answereventDescTimeMs := answereventFields[8].Descriptor()
	// answerevent.DefaultTimeMs holds the default value on creation for the time_ms field.
	answerevent.DefaultTimeMs = answereventDescTimeMs.Default.(int)
	checkpointeventMixin := schema.CheckpointEvent{}.Mixin()
	checkpointeventMixinFields0 := checkpointeventMixin[0].Fields()
	_ = checkpointeventMixinFields0
	checkpointeventFields := schema.CheckpointEvent{}.Fields()
	_ = checkpointeventFields
	// checkpointeventDescTimestamp is the schema descriptor for timestamp field.
	checkpointeventDescTimestamp := checkpointeventMixinFields0[1].Descriptor()
	// checkpointevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	checkpointevent.DefaultTimestamp = checkpointeventDescTimestamp.Default.(func() time.Time)
	// checkpointeventDescAttemptID is the schema descriptor for attempt_id field.
	checkpointeventDescAttemptID := checkpointeventFields[0].Descriptor()
	// checkpointevent.AttemptIDValidator is a validator for the "attempt_id" field. It is called by the builders before save.
	checkpointevent.AttemptIDValidator = checkpointeventDescAttemptID.Validators[0].(func(string) error)
	// checkpointeventDescCheckpointID is the schema descriptor for checkpoint_id field.
	checkpointeventDescCheckpointID := checkpointeventFields[1].Descriptor()
	// checkpointevent.CheckpointIDValidator is a validator for the "checkpoint_id" field. It is called by the builders before save.
	checkpointevent.CheckpointIDValidator = checkpointeventDescCheckpointID.Validators[0].(func(string) error)
	// checkpointeventDescSubjectID is the schema descriptor for subject_id field.
	checkpointeventDescSubjectID := checkpointeventFields[2].Descriptor()
	// checkpointevent.DefaultSubjectID holds the default value on creation for the subject_id field.
	checkpointevent.DefaultSubjectID = checkpointeventDescSubjectID.Default.(string)
	// checkpointeventDescRound is the schema descriptor for round field.
	checkpointeventDescRound := checkpointeventFields[4].Descriptor()
	// checkpointevent.DefaultRound holds the default value on creation for the round field.
	checkpointevent.DefaultRound = checkpointeventDescRound.Default.(int)
	// checkpointeventDescQuestions is the schema descriptor for questions field.
	checkpointeventDescQuestions := checkpointeventFields[5].Descriptor()
	// checkpointevent.DefaultQuestions holds the default value on creation for the questions field.
	checkpointevent.DefaultQuestions = checkpointeventDescQuestions.Default.(int)
	// checkpointeventDescDurationSecs is the schema descriptor for duration_secs field.
	checkpointeventDescDurationSecs := checkpointeventFields[7].Descriptor()
	// checkpointevent.DefaultDurationSecs holds the default value on creation for the duration_secs field.
	checkpointevent.DefaultDurationSecs = checkpointeventDescDurationSecs.Default.(int)
	llmrequesteventMixin := schema.LLMRequestEvent{}.Mixin()
	llmrequesteventMixinFields0 := llmrequesteventMixin[0].Fields()
	_ = llmrequesteventMixinFields0
	llmrequesteventFields := schema.LLMRequestEvent{}.Fields()
	_ = llmrequesteventFields
	// llmrequesteventDescTimestamp is the schema descriptor for timestamp field.
	llmrequesteventDescTimestamp := llmrequesteventMixinFields0[1].Descriptor()
	// llmrequestevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	llmrequestevent.DefaultTimestamp = llmrequesteventDescTimestamp.Default.(func() time.Time)
	// llmrequesteventDescInputTokens is the schema descriptor for input_tokens field.
	llmrequesteventDescInputTokens := llmrequesteventFields[3].Descriptor()
	// llmrequestevent.DefaultInputTokens holds the default value on creation for the input_tokens field.
	llmrequestevent.DefaultInputTokens = llmrequesteventDescInputTokens.Default.(int)
	// llmrequesteventDescOutputTokens is the schema descriptor for output_tokens field.
	llmrequesteventDescOutputTokens := llmrequesteventFields[4].Descriptor()
	// llmrequestevent.DefaultOutputTokens holds the default value on creation for the output_tokens field.
	llmrequestevent.DefaultOutputTokens = llmrequesteventDescOutputTokens.Default.(int)
	// llmrequesteventDescLatencyMs is the schema descriptor for latency_ms field.
	llmrequesteventDescLatencyMs := llmrequesteventFields[5].Descriptor()
	// llmrequestevent.DefaultLatencyMs holds the default value on creation for the latency_ms field.
	llmrequestevent.DefaultLatencyMs = llmrequesteventDescLatencyMs.Default.(int64)
	// llmrequesteventDescErrorMessage is the schema descriptor for error_message field.
	llmrequesteventDescErrorMessage := llmrequesteventFields[7].Descriptor()
	// llmrequestevent.DefaultErrorMessage holds the default value on creation for the error_message field.
	llmrequestevent.DefaultErrorMessage = llmrequesteventDescErrorMessage.Default.(string)
	// llmrequesteventDescRequestBody is the schema descriptor for request_body field.
	llmrequesteventDescRequestBody := llmrequesteventFields[8].Descriptor()
	// llmrequestevent.DefaultRequestBody holds the default value on creation for the request_body field.
	llmrequestevent.DefaultRequestBody = llmrequesteventDescRequestBody.Default.(string)
	// llmrequesteventDescResponseBody is the schema descriptor for response_body field.
	llmrequesteventDescResponseBody := llmrequesteventFields[9].Descriptor()
	// llmrequestevent.DefaultResponseBody holds the default value on creation for the response_body field.
	llmrequestevent.DefaultResponseBody = llmrequesteventDescResponseBody.Default.(string)
	learnerFields := schema.Learner{}.Fields()
	_ = learnerFields
	// learnerDescName is the schema descriptor for name field.
	learnerDescName := learnerFields[0].Descriptor()
	// learner.NameValidator is a validator for the "name" field. It is called by the builders before save.
	learner.NameValidator = learnerDescName.Validators[0].(func(string) error)
	// learnerDescEmail is the schema descriptor for email field.
	learnerDescEmail := learnerFields[1].Descriptor()
	// learner.DefaultEmail holds the default value on creation for the email field.
	learner.DefaultEmail = learnerDescEmail.Default.(string)
	// learnerDescRole is the schema descriptor for role field.
	learnerDescRole := learnerFields[2].Descriptor()
	// learner.DefaultRole holds the default value on creation for the role field.
	learner.DefaultRole = learnerDescRole.Default.(string)
	// learnerDescTrack is the schema descriptor for track field.
	learnerDescTrack := learnerFields[3].Descriptor()
	// learner.DefaultTrack holds the default value on creation for the track field.
	learner.DefaultTrack = learnerDescTrack.Default.(string)
	// learnerDescSubject is the schema descriptor for subject field.
	learnerDescSubject := learnerFields[4].Descriptor()
	// learner.DefaultSubject holds the default value on creation for the subject field.
	learner.DefaultSubject = learnerDescSubject.Default.(string)
	// learnerDescSignedIn is the schema descriptor for signed_in field.
	learnerDescSignedIn := learnerFields[5].Descriptor()
	// learner.DefaultSignedIn holds the default value on creation for the signed_in field.
	learner.DefaultSignedIn = learnerDescSignedIn.Default.(bool)
	// learnerDescUpdatedAt is the schema descriptor for updated_at field.
	learnerDescUpdatedAt := learnerFields[6].Descriptor()
	// learner.DefaultUpdatedAt holds the default value on creation for the updated_at field.
	learner.DefaultUpdatedAt = learnerDescUpdatedAt.Default.(func() time.Time)
	// learner.UpdateDefaultUpdatedAt holds the default value on update for the updated_at field.
	learner.UpdateDefaultUpdatedAt = learnerDescUpdatedAt.UpdateDefault.(func() time.Time)
	snapshotFields := schema.Snapshot{}.Fields()
	_ = snapshotFields
	// snapshotDescTimestamp is the schema descriptor for timestamp field.
	snapshotDescTimestamp := snapshotFields[1].Descriptor()
	// snapshot.DefaultTimestamp holds the default value on creation for the timestamp field.
	snapshot.DefaultTimestamp = snapshotDescTimestamp.Default.(func() time.Time)
	// snapshotDescCurriculumVersion is the schema descriptor for curriculum_version field.
	snapshotDescCurriculumVersion := snapshotFields[2].Descriptor()
	// snapshot.DefaultCurriculumVersion holds the default value on creation for the curriculum_version field.
	snapshot.DefaultCurriculumVersion = snapshotDescCurriculumVersion.Default.(string)
}
