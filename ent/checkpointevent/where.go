// Code generated by ent, DO NOT EDIT.

package checkpointevent

import (
	"time"

	"entgo.io/ent/dialect/sql"
	"github.com/abhisek/masteryloop/ent/predicate"
)

// ID filters vertices based on their ID field.
func ID(id int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldEQ(FieldID, id))
}

// IDEQ applies the EQ predicate on the ID field.
func IDEQ(id int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldEQ(FieldID, id))
}

// IDNEQ applies the NEQ predicate on the ID field.
func IDNEQ(id int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldNEQ(FieldID, id))
}

// IDIn applies the In predicate on the ID field.
func IDIn(ids ...int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldIn(FieldID, ids...))
}

// IDNotIn applies the NotIn predicate on the ID field.
func IDNotIn(ids ...int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldNotIn(FieldID, ids...))
}

// IDGT applies the GT predicate on the ID field.
func IDGT(id int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldGT(FieldID, id))
}

// IDGTE applies the GTE predicate on the ID field.
func IDGTE(id int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldGTE(FieldID, id))
}

// IDLT applies the LT predicate on the ID field.
func IDLT(id int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldLT(FieldID, id))
}

// IDLTE applies the LTE predicate on the ID field.
func IDLTE(id int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldLTE(FieldID, id))
}

// Sequence applies equality check predicate on the "sequence" field. It's identical to SequenceEQ.
func Sequence(v int64) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldEQ(FieldSequence, v))
}

// Timestamp applies equality check predicate on the "timestamp" field. It's identical to TimestampEQ.
func Timestamp(v time.Time) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldEQ(FieldTimestamp, v))
}

// AttemptID applies equality check predicate on the "attempt_id" field. It's identical to AttemptIDEQ.
func AttemptID(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldEQ(FieldAttemptID, v))
}

// CheckpointID applies equality check predicate on the "checkpoint_id" field. It's identical to CheckpointIDEQ.
func CheckpointID(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldEQ(FieldCheckpointID, v))
}

// SubjectID applies equality check predicate on the "subject_id" field. It's identical to SubjectIDEQ.
func SubjectID(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldEQ(FieldSubjectID, v))
}

// Round applies equality check predicate on the "round" field. It's identical to RoundEQ.
func Round(v int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldEQ(FieldRound, v))
}

// Questions applies equality check predicate on the "questions" field. It's identical to QuestionsEQ.
func Questions(v int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldEQ(FieldQuestions, v))
}

// DurationSecs applies equality check predicate on the "duration_secs" field. It's identical to DurationSecsEQ.
func DurationSecs(v int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldEQ(FieldDurationSecs, v))
}

// SequenceEQ applies the EQ predicate on the "sequence" field.
func SequenceEQ(v int64) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldEQ(FieldSequence, v))
}

// SequenceNEQ applies the NEQ predicate on the "sequence" field.
func SequenceNEQ(v int64) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldNEQ(FieldSequence, v))
}

// SequenceIn applies the In predicate on the "sequence" field.
func SequenceIn(vs ...int64) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldIn(FieldSequence, vs...))
}

// SequenceNotIn applies the NotIn predicate on the "sequence" field.
func SequenceNotIn(vs ...int64) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldNotIn(FieldSequence, vs...))
}

// SequenceGT applies the GT predicate on the "sequence" field.
func SequenceGT(v int64) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldGT(FieldSequence, v))
}

// SequenceGTE applies the GTE predicate on the "sequence" field.
func SequenceGTE(v int64) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldGTE(FieldSequence, v))
}

// SequenceLT applies the LT predicate on the "sequence" field.
func SequenceLT(v int64) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldLT(FieldSequence, v))
}

// SequenceLTE applies the LTE predicate on the "sequence" field.
func SequenceLTE(v int64) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldLTE(FieldSequence, v))
}

// TimestampEQ applies the EQ predicate on the "timestamp" field.
func TimestampEQ(v time.Time) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldEQ(FieldTimestamp, v))
}

// TimestampNEQ applies the NEQ predicate on the "timestamp" field.
func TimestampNEQ(v time.Time) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldNEQ(FieldTimestamp, v))
}

// TimestampIn applies the In predicate on the "timestamp" field.
func TimestampIn(vs ...time.Time) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldIn(FieldTimestamp, vs...))
}

// TimestampNotIn applies the NotIn predicate on the "timestamp" field.
func TimestampNotIn(vs ...time.Time) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldNotIn(FieldTimestamp, vs...))
}

// TimestampGT applies the GT predicate on the "timestamp" field.
func TimestampGT(v time.Time) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldGT(FieldTimestamp, v))
}

// TimestampGTE applies the GTE predicate on the "timestamp" field.
func TimestampGTE(v time.Time) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldGTE(FieldTimestamp, v))
}

// TimestampLT applies the LT predicate on the "timestamp" field.
func TimestampLT(v time.Time) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldLT(FieldTimestamp, v))
}

// TimestampLTE applies the LTE predicate on the "timestamp" field.
func TimestampLTE(v time.Time) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldLTE(FieldTimestamp, v))
}

// AttemptIDEQ applies the EQ predicate on the "attempt_id" field.
func AttemptIDEQ(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldEQ(FieldAttemptID, v))
}

// AttemptIDNEQ applies the NEQ predicate on the "attempt_id" field.
func AttemptIDNEQ(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldNEQ(FieldAttemptID, v))
}

// AttemptIDIn applies the In predicate on the "attempt_id" field.
func AttemptIDIn(vs ...string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldIn(FieldAttemptID, vs...))
}

// AttemptIDNotIn applies the NotIn predicate on the "attempt_id" field.
func AttemptIDNotIn(vs ...string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldNotIn(FieldAttemptID, vs...))
}

// AttemptIDGT applies the GT predicate on the "attempt_id" field.
func AttemptIDGT(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldGT(FieldAttemptID, v))
}

// AttemptIDGTE applies the GTE predicate on the "attempt_id" field.
func AttemptIDGTE(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldGTE(FieldAttemptID, v))
}

// AttemptIDLT applies the LT predicate on the "attempt_id" field.
func AttemptIDLT(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldLT(FieldAttemptID, v))
}

// AttemptIDLTE applies the LTE predicate on the "attempt_id" field.
func AttemptIDLTE(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldLTE(FieldAttemptID, v))
}

// AttemptIDContains applies the Contains predicate on the "attempt_id" field.
func AttemptIDContains(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldContains(FieldAttemptID, v))
}

// AttemptIDHasPrefix applies the HasPrefix predicate on the "attempt_id" field.
func AttemptIDHasPrefix(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldHasPrefix(FieldAttemptID, v))
}

// AttemptIDHasSuffix applies the HasSuffix predicate on the "attempt_id" field.
func AttemptIDHasSuffix(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldHasSuffix(FieldAttemptID, v))
}

// AttemptIDEqualFold applies the EqualFold predicate on the "attempt_id" field.
func AttemptIDEqualFold(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldEqualFold(FieldAttemptID, v))
}

// AttemptIDContainsFold applies the ContainsFold predicate on the "attempt_id" field.
func AttemptIDContainsFold(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldContainsFold(FieldAttemptID, v))
}

// CheckpointIDEQ applies the EQ predicate on the "checkpoint_id" field.
func CheckpointIDEQ(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldEQ(FieldCheckpointID, v))
}

// CheckpointIDNEQ applies the NEQ predicate on the "checkpoint_id" field.
func CheckpointIDNEQ(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldNEQ(FieldCheckpointID, v))
}

// CheckpointIDIn applies the In predicate on the "checkpoint_id" field.
func CheckpointIDIn(vs ...string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldIn(FieldCheckpointID, vs...))
}

// CheckpointIDNotIn applies the NotIn predicate on the "checkpoint_id" field.
func CheckpointIDNotIn(vs ...string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldNotIn(FieldCheckpointID, vs...))
}

// CheckpointIDGT applies the GT predicate on the "checkpoint_id" field.
func CheckpointIDGT(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldGT(FieldCheckpointID, v))
}

// CheckpointIDGTE applies the GTE predicate on the "checkpoint_id" field.
func CheckpointIDGTE(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldGTE(FieldCheckpointID, v))
}

// CheckpointIDLT applies the LT predicate on the "checkpoint_id" field.
func CheckpointIDLT(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldLT(FieldCheckpointID, v))
}

// CheckpointIDLTE applies the LTE predicate on the "checkpoint_id" field.
func CheckpointIDLTE(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldLTE(FieldCheckpointID, v))
}

// CheckpointIDContains applies the Contains predicate on the "checkpoint_id" field.
func CheckpointIDContains(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldContains(FieldCheckpointID, v))
}

// CheckpointIDHasPrefix applies the HasPrefix predicate on the "checkpoint_id" field.
func CheckpointIDHasPrefix(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldHasPrefix(FieldCheckpointID, v))
}

// CheckpointIDHasSuffix applies the HasSuffix predicate on the "checkpoint_id" field.
func CheckpointIDHasSuffix(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldHasSuffix(FieldCheckpointID, v))
}

// CheckpointIDEqualFold applies the EqualFold predicate on the "checkpoint_id" field.
func CheckpointIDEqualFold(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldEqualFold(FieldCheckpointID, v))
}

// CheckpointIDContainsFold applies the ContainsFold predicate on the "checkpoint_id" field.
func CheckpointIDContainsFold(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldContainsFold(FieldCheckpointID, v))
}

// SubjectIDEQ applies the EQ predicate on the "subject_id" field.
func SubjectIDEQ(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldEQ(FieldSubjectID, v))
}

// SubjectIDNEQ applies the NEQ predicate on the "subject_id" field.
func SubjectIDNEQ(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldNEQ(FieldSubjectID, v))
}

// SubjectIDIn applies the In predicate on the "subject_id" field.
func SubjectIDIn(vs ...string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldIn(FieldSubjectID, vs...))
}

// SubjectIDNotIn applies the NotIn predicate on the "subject_id" field.
func SubjectIDNotIn(vs ...string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldNotIn(FieldSubjectID, vs...))
}

// SubjectIDGT applies the GT predicate on the "subject_id" field.
func SubjectIDGT(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldGT(FieldSubjectID, v))
}

// SubjectIDGTE applies the GTE predicate on the "subject_id" field.
func SubjectIDGTE(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldGTE(FieldSubjectID, v))
}

// SubjectIDLT applies the LT predicate on the "subject_id" field.
func SubjectIDLT(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldLT(FieldSubjectID, v))
}

// SubjectIDLTE applies the LTE predicate on the "subject_id" field.
func SubjectIDLTE(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldLTE(FieldSubjectID, v))
}

// SubjectIDContains applies the Contains predicate on the "subject_id" field.
func SubjectIDContains(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldContains(FieldSubjectID, v))
}

// SubjectIDHasPrefix applies the HasPrefix predicate on the "subject_id" field.
func SubjectIDHasPrefix(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldHasPrefix(FieldSubjectID, v))
}

// SubjectIDHasSuffix applies the HasSuffix predicate on the "subject_id" field.
func SubjectIDHasSuffix(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldHasSuffix(FieldSubjectID, v))
}

// SubjectIDEqualFold applies the EqualFold predicate on the "subject_id" field.
func SubjectIDEqualFold(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldEqualFold(FieldSubjectID, v))
}

// SubjectIDContainsFold applies the ContainsFold predicate on the "subject_id" field.
func SubjectIDContainsFold(v string) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldContainsFold(FieldSubjectID, v))
}

// ActionEQ applies the EQ predicate on the "action" field.
func ActionEQ(v Action) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldEQ(FieldAction, v))
}

// ActionNEQ applies the NEQ predicate on the "action" field.
func ActionNEQ(v Action) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldNEQ(FieldAction, v))
}

// ActionIn applies the In predicate on the "action" field.
func ActionIn(vs ...Action) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldIn(FieldAction, vs...))
}

// ActionNotIn applies the NotIn predicate on the "action" field.
func ActionNotIn(vs ...Action) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldNotIn(FieldAction, vs...))
}

// RoundEQ applies the EQ predicate on the "round" field.
func RoundEQ(v int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldEQ(FieldRound, v))
}

// RoundNEQ applies the NEQ predicate on the "round" field.
func RoundNEQ(v int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldNEQ(FieldRound, v))
}

// RoundIn applies the In predicate on the "round" field.
func RoundIn(vs ...int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldIn(FieldRound, vs...))
}

// RoundNotIn applies the NotIn predicate on the "round" field.
func RoundNotIn(vs ...int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldNotIn(FieldRound, vs...))
}

// RoundGT applies the GT predicate on the "round" field.
func RoundGT(v int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldGT(FieldRound, v))
}

// RoundGTE applies the GTE predicate on the "round" field.
func RoundGTE(v int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldGTE(FieldRound, v))
}

// RoundLT applies the LT predicate on the "round" field.
func RoundLT(v int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldLT(FieldRound, v))
}

// RoundLTE applies the LTE predicate on the "round" field.
func RoundLTE(v int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldLTE(FieldRound, v))
}

// QuestionsEQ applies the EQ predicate on the "questions" field.
func QuestionsEQ(v int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldEQ(FieldQuestions, v))
}

// QuestionsNEQ applies the NEQ predicate on the "questions" field.
func QuestionsNEQ(v int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldNEQ(FieldQuestions, v))
}

// QuestionsIn applies the In predicate on the "questions" field.
func QuestionsIn(vs ...int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldIn(FieldQuestions, vs...))
}

// QuestionsNotIn applies the NotIn predicate on the "questions" field.
func QuestionsNotIn(vs ...int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldNotIn(FieldQuestions, vs...))
}

// QuestionsGT applies the GT predicate on the "questions" field.
func QuestionsGT(v int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldGT(FieldQuestions, v))
}

// QuestionsGTE applies the GTE predicate on the "questions" field.
func QuestionsGTE(v int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldGTE(FieldQuestions, v))
}

// QuestionsLT applies the LT predicate on the "questions" field.
func QuestionsLT(v int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldLT(FieldQuestions, v))
}

// QuestionsLTE applies the LTE predicate on the "questions" field.
func QuestionsLTE(v int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldLTE(FieldQuestions, v))
}

// MissedConceptsIsNil applies the IsNil predicate on the "missed_concepts" field.
func MissedConceptsIsNil() predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldIsNull(FieldMissedConcepts))
}

// MissedConceptsNotNil applies the NotNil predicate on the "missed_concepts" field.
func MissedConceptsNotNil() predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldNotNull(FieldMissedConcepts))
}

// DurationSecsEQ applies the EQ predicate on the "duration_secs" field.
func DurationSecsEQ(v int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldEQ(FieldDurationSecs, v))
}

// DurationSecsNEQ applies the NEQ predicate on the "duration_secs" field.
func DurationSecsNEQ(v int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldNEQ(FieldDurationSecs, v))
}

// DurationSecsIn applies the In predicate on the "duration_secs" field.
func DurationSecsIn(vs ...int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldIn(FieldDurationSecs, vs...))
}

// DurationSecsNotIn applies the NotIn predicate on the "duration_secs" field.
func DurationSecsNotIn(vs ...int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldNotIn(FieldDurationSecs, vs...))
}

// DurationSecsGT applies the GT predicate on the "duration_secs" field.
func DurationSecsGT(v int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldGT(FieldDurationSecs, v))
}

// DurationSecsGTE applies the GTE predicate on the "duration_secs" field.
func DurationSecsGTE(v int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldGTE(FieldDurationSecs, v))
}

// DurationSecsLT applies the LT predicate on the "duration_secs" field.
func DurationSecsLT(v int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldLT(FieldDurationSecs, v))
}

// DurationSecsLTE applies the LTE predicate on the "duration_secs" field.
func DurationSecsLTE(v int) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.FieldLTE(FieldDurationSecs, v))
}

// And groups predicates with the AND operator between them.
func And(predicates ...predicate.CheckpointEvent) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.AndPredicates(predicates...))
}

// Or groups predicates with the OR operator between them.
func Or(predicates ...predicate.CheckpointEvent) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.OrPredicates(predicates...))
}

// Not applies the not operator on the given predicate.
func Not(p predicate.CheckpointEvent) predicate.CheckpointEvent {
	return predicate.CheckpointEvent(sql.NotPredicates(p))
}
