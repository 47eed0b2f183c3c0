// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"

	"entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/dialect/sql/sqljson"
	"entgo.io/ent/schema/field"
	"github.com/abhisek/masteryloop/ent/checkpointevent"
	"github.com/abhisek/masteryloop/ent/predicate"
)

// CheckpointEventUpdate is the builder for updating CheckpointEvent entities.
type CheckpointEventUpdate struct {
	config
	hooks    []Hook
	mutation *CheckpointEventMutation
}

// Where appends a list predicates to the CheckpointEventUpdate builder.
func (_u *CheckpointEventUpdate) Where(ps ...predicate.CheckpointEvent) *CheckpointEventUpdate {
	_u.mutation.Where(ps...)
	return _u
}

// SetAttemptID sets the "attempt_id" field.
func (_u *CheckpointEventUpdate) SetAttemptID(v string) *CheckpointEventUpdate {
	_u.mutation.SetAttemptID(v)
	return _u
}

// SetNillableAttemptID sets the "attempt_id" field if the given value is not nil.
func (_u *CheckpointEventUpdate) SetNillableAttemptID(v *string) *CheckpointEventUpdate {
	if v != nil {
		_u.SetAttemptID(*v)
	}
	return _u
}

// SetCheckpointID sets the "checkpoint_id" field.
func (_u *CheckpointEventUpdate) SetCheckpointID(v string) *CheckpointEventUpdate {
	_u.mutation.SetCheckpointID(v)
	return _u
}

// SetNillableCheckpointID sets the "checkpoint_id" field if the given value is not nil.
func (_u *CheckpointEventUpdate) SetNillableCheckpointID(v *string) *CheckpointEventUpdate {
	if v != nil {
		_u.SetCheckpointID(*v)
	}
	return _u
}

// SetSubjectID sets the "subject_id" field.
func (_u *CheckpointEventUpdate) SetSubjectID(v string) *CheckpointEventUpdate {
	_u.mutation.SetSubjectID(v)
	return _u
}

// SetNillableSubjectID sets the "subject_id" field if the given value is not nil.
func (_u *CheckpointEventUpdate) SetNillableSubjectID(v *string) *CheckpointEventUpdate {
	if v != nil {
		_u.SetSubjectID(*v)
	}
	return _u
}

// SetAction sets the "action" field.
func (_u *CheckpointEventUpdate) SetAction(v checkpointevent.Action) *CheckpointEventUpdate {
	_u.mutation.SetAction(v)
	return _u
}

// SetNillableAction sets the "action" field if the given value is not nil.
func (_u *CheckpointEventUpdate) SetNillableAction(v *checkpointevent.Action) *CheckpointEventUpdate {
	if v != nil {
		_u.SetAction(*v)
	}
	return _u
}

// SetRound sets the "round" field.
func (_u *CheckpointEventUpdate) SetRound(v int) *CheckpointEventUpdate {
	_u.mutation.ResetRound()
	_u.mutation.SetRound(v)
	return _u
}

// SetNillableRound sets the "round" field if the given value is not nil.
func (_u *CheckpointEventUpdate) SetNillableRound(v *int) *CheckpointEventUpdate {
	if v != nil {
		_u.SetRound(*v)
	}
	return _u
}

// AddRound adds value to the "round" field.
func (_u *CheckpointEventUpdate) AddRound(v int) *CheckpointEventUpdate {
	_u.mutation.AddRound(v)
	return _u
}

// SetQuestions sets the "questions" field.
func (_u *CheckpointEventUpdate) SetQuestions(v int) *CheckpointEventUpdate {
	_u.mutation.ResetQuestions()
	_u.mutation.SetQuestions(v)
	return _u
}

// SetNillableQuestions sets the "questions" field if the given value is not nil.
func (_u *CheckpointEventUpdate) SetNillableQuestions(v *int) *CheckpointEventUpdate {
	if v != nil {
		_u.SetQuestions(*v)
	}
	return _u
}

// AddQuestions adds value to the "questions" field.
func (_u *CheckpointEventUpdate) AddQuestions(v int) *CheckpointEventUpdate {
	_u.mutation.AddQuestions(v)
	return _u
}

// SetMissedConcepts sets the "missed_concepts" field.
func (_u *CheckpointEventUpdate) SetMissedConcepts(v []string) *CheckpointEventUpdate {
	_u.mutation.SetMissedConcepts(v)
	return _u
}

// AppendMissedConcepts appends value to the "missed_concepts" field.
func (_u *CheckpointEventUpdate) AppendMissedConcepts(v []string) *CheckpointEventUpdate {
	_u.mutation.AppendMissedConcepts(v)
	return _u
}

// ClearMissedConcepts clears the value of the "missed_concepts" field.
func (_u *CheckpointEventUpdate) ClearMissedConcepts() *CheckpointEventUpdate {
	_u.mutation.ClearMissedConcepts()
	return _u
}

// SetDurationSecs sets the "duration_secs" field.
func (_u *CheckpointEventUpdate) SetDurationSecs(v int) *CheckpointEventUpdate {
	_u.mutation.ResetDurationSecs()
	_u.mutation.SetDurationSecs(v)
	return _u
}

// SetNillableDurationSecs sets the "duration_secs" field if the given value is not nil.
func (_u *CheckpointEventUpdate) SetNillableDurationSecs(v *int) *CheckpointEventUpdate {
	if v != nil {
		_u.SetDurationSecs(*v)
	}
	return _u
}

// AddDurationSecs adds value to the "duration_secs" field.
func (_u *CheckpointEventUpdate) AddDurationSecs(v int) *CheckpointEventUpdate {
	_u.mutation.AddDurationSecs(v)
	return _u
}

// Mutation returns the CheckpointEventMutation object of the builder.
func (_u *CheckpointEventUpdate) Mutation() *CheckpointEventMutation {
	return _u.mutation
}

// Save executes the query and returns the number of nodes affected by the update operation.
func (_u *CheckpointEventUpdate) Save(ctx context.Context) (int, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *CheckpointEventUpdate) SaveX(ctx context.Context) int {
	affected, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return affected
}

// Exec executes the query.
func (_u *CheckpointEventUpdate) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *CheckpointEventUpdate) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *CheckpointEventUpdate) check() error {
	if v, ok := _u.mutation.AttemptID(); ok {
		if err := checkpointevent.AttemptIDValidator(v); err != nil {
			return &ValidationError{Name: "attempt_id", err: fmt.Errorf(`ent: validator failed for field "CheckpointEvent.attempt_id": %w`, err)}
		}
	}
	if v, ok := _u.mutation.CheckpointID(); ok {
		if err := checkpointevent.CheckpointIDValidator(v); err != nil {
			return &ValidationError{Name: "checkpoint_id", err: fmt.Errorf(`ent: validator failed for field "CheckpointEvent.checkpoint_id": %w`, err)}
		}
	}
	if v, ok := _u.mutation.Action(); ok {
		if err := checkpointevent.ActionValidator(v); err != nil {
			return &ValidationError{Name: "action", err: fmt.Errorf(`ent: validator failed for field "CheckpointEvent.action": %w`, err)}
		}
	}
	return nil
}

func (_u *CheckpointEventUpdate) sqlSave(ctx context.Context) (_node int, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(checkpointevent.Table, checkpointevent.Columns, sqlgraph.NewFieldSpec(checkpointevent.FieldID, field.TypeInt))
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.AttemptID(); ok {
		_spec.SetField(checkpointevent.FieldAttemptID, field.TypeString, value)
	}
	if value, ok := _u.mutation.CheckpointID(); ok {
		_spec.SetField(checkpointevent.FieldCheckpointID, field.TypeString, value)
	}
	if value, ok := _u.mutation.SubjectID(); ok {
		_spec.SetField(checkpointevent.FieldSubjectID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Action(); ok {
		_spec.SetField(checkpointevent.FieldAction, field.TypeEnum, value)
	}
	if value, ok := _u.mutation.Round(); ok {
		_spec.SetField(checkpointevent.FieldRound, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedRound(); ok {
		_spec.AddField(checkpointevent.FieldRound, field.TypeInt, value)
	}
	if value, ok := _u.mutation.Questions(); ok {
		_spec.SetField(checkpointevent.FieldQuestions, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedQuestions(); ok {
		_spec.AddField(checkpointevent.FieldQuestions, field.TypeInt, value)
	}
	if value, ok := _u.mutation.MissedConcepts(); ok {
		_spec.SetField(checkpointevent.FieldMissedConcepts, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.AppendedMissedConcepts(); ok {
		_spec.AddModifier(func(u *sql.UpdateBuilder) {
			sqljson.Append(u, checkpointevent.FieldMissedConcepts, value)
		})
	}
	if _u.mutation.MissedConceptsCleared() {
		_spec.ClearField(checkpointevent.FieldMissedConcepts, field.TypeJSON)
	}
	if value, ok := _u.mutation.DurationSecs(); ok {
		_spec.SetField(checkpointevent.FieldDurationSecs, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedDurationSecs(); ok {
		_spec.AddField(checkpointevent.FieldDurationSecs, field.TypeInt, value)
	}
	if _node, err = sqlgraph.UpdateNodes(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{checkpointevent.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return 0, err
	}
	_u.mutation.done = true
	return _node, nil
}

// CheckpointEventUpdateOne is the builder for updating a single CheckpointEvent entity.
type CheckpointEventUpdateOne struct {
	config
	fields   []string
	hooks    []Hook
	mutation *CheckpointEventMutation
}

// SetAttemptID sets the "attempt_id" field.
func (_u *CheckpointEventUpdateOne) SetAttemptID(v string) *CheckpointEventUpdateOne {
	_u.mutation.SetAttemptID(v)
	return _u
}

// SetNillableAttemptID sets the "attempt_id" field if the given value is not nil.
func (_u *CheckpointEventUpdateOne) SetNillableAttemptID(v *string) *CheckpointEventUpdateOne {
	if v != nil {
		_u.SetAttemptID(*v)
	}
	return _u
}

// SetCheckpointID sets the "checkpoint_id" field.
func (_u *CheckpointEventUpdateOne) SetCheckpointID(v string) *CheckpointEventUpdateOne {
	_u.mutation.SetCheckpointID(v)
	return _u
}

// SetNillableCheckpointID sets the "checkpoint_id" field if the given value is not nil.
func (_u *CheckpointEventUpdateOne) SetNillableCheckpointID(v *string) *CheckpointEventUpdateOne {
	if v != nil {
		_u.SetCheckpointID(*v)
	}
	return _u
}

// SetSubjectID sets the "subject_id" field.
func (_u *CheckpointEventUpdateOne) SetSubjectID(v string) *CheckpointEventUpdateOne {
	_u.mutation.SetSubjectID(v)
	return _u
}

// SetNillableSubjectID sets the "subject_id" field if the given value is not nil.
func (_u *CheckpointEventUpdateOne) SetNillableSubjectID(v *string) *CheckpointEventUpdateOne {
	if v != nil {
		_u.SetSubjectID(*v)
	}
	return _u
}

// SetAction sets the "action" field.
func (_u *CheckpointEventUpdateOne) SetAction(v checkpointevent.Action) *CheckpointEventUpdateOne {
	_u.mutation.SetAction(v)
	return _u
}

// SetNillableAction sets the "action" field if the given value is not nil.
func (_u *CheckpointEventUpdateOne) SetNillableAction(v *checkpointevent.Action) *CheckpointEventUpdateOne {
	if v != nil {
		_u.SetAction(*v)
	}
	return _u
}

// SetRound sets the "round" field.
func (_u *CheckpointEventUpdateOne) SetRound(v int) *CheckpointEventUpdateOne {
	_u.mutation.ResetRound()
	_u.mutation.SetRound(v)
	return _u
}

// SetNillableRound sets the "round" field if the given value is not nil.
func (_u *CheckpointEventUpdateOne) SetNillableRound(v *int) *CheckpointEventUpdateOne {
	if v != nil {
		_u.SetRound(*v)
	}
	return _u
}

// AddRound adds value to the "round" field.
func (_u *CheckpointEventUpdateOne) AddRound(v int) *CheckpointEventUpdateOne {
	_u.mutation.AddRound(v)
	return _u
}

// SetQuestions sets the "questions" field.
func (_u *CheckpointEventUpdateOne) SetQuestions(v int) *CheckpointEventUpdateOne {
	_u.mutation.ResetQuestions()
	_u.mutation.SetQuestions(v)
	return _u
}

// SetNillableQuestions sets the "questions" field if the given value is not nil.
func (_u *CheckpointEventUpdateOne) SetNillableQuestions(v *int) *CheckpointEventUpdateOne {
	if v != nil {
		_u.SetQuestions(*v)
	}
	return _u
}

// AddQuestions adds value to the "questions" field.
func (_u *CheckpointEventUpdateOne) AddQuestions(v int) *CheckpointEventUpdateOne {
	_u.mutation.AddQuestions(v)
	return _u
}

// SetMissedConcepts sets the "missed_concepts" field.
func (_u *CheckpointEventUpdateOne) SetMissedConcepts(v []string) *CheckpointEventUpdateOne {
	_u.mutation.SetMissedConcepts(v)
	return _u
}

// AppendMissedConcepts appends value to the "missed_concepts" field.
func (_u *CheckpointEventUpdateOne) AppendMissedConcepts(v []string) *CheckpointEventUpdateOne {
	_u.mutation.AppendMissedConcepts(v)
	return _u
}

// ClearMissedConcepts clears the value of the "missed_concepts" field.
func (_u *CheckpointEventUpdateOne) ClearMissedConcepts() *CheckpointEventUpdateOne {
	_u.mutation.ClearMissedConcepts()
	return _u
}

// SetDurationSecs sets the "duration_secs" field.
func (_u *CheckpointEventUpdateOne) SetDurationSecs(v int) *CheckpointEventUpdateOne {
	_u.mutation.ResetDurationSecs()
	_u.mutation.SetDurationSecs(v)
	return _u
}

// SetNillableDurationSecs sets the "duration_secs" field if the given value is not nil.
func (_u *CheckpointEventUpdateOne) SetNillableDurationSecs(v *int) *CheckpointEventUpdateOne {
	if v != nil {
		_u.SetDurationSecs(*v)
	}
	return _u
}

// AddDurationSecs adds value to the "duration_secs" field.
func (_u *CheckpointEventUpdateOne) AddDurationSecs(v int) *CheckpointEventUpdateOne {
	_u.mutation.AddDurationSecs(v)
	return _u
}

// Mutation returns the CheckpointEventMutation object of the builder.
func (_u *CheckpointEventUpdateOne) Mutation() *CheckpointEventMutation {
	return _u.mutation
}

// Where appends a list predicates to the CheckpointEventUpdate builder.
func (_u *CheckpointEventUpdateOne) Where(ps ...predicate.CheckpointEvent) *CheckpointEventUpdateOne {
	_u.mutation.Where(ps...)
	return _u
}

// Select allows selecting one or more fields (columns) of the returned entity.
// The default is selecting all fields defined in the entity schema.
func (_u *CheckpointEventUpdateOne) Select(field string, fields ...string) *CheckpointEventUpdateOne {
	_u.fields = append([]string{field}, fields...)
	return _u
}

// Save executes the query and returns the updated CheckpointEvent entity.
func (_u *CheckpointEventUpdateOne) Save(ctx context.Context) (*CheckpointEvent, error) {
	return withHooks(ctx, _u.sqlSave, _u.mutation, _u.hooks)
}

// SaveX is like Save, but panics if an error occurs.
func (_u *CheckpointEventUpdateOne) SaveX(ctx context.Context) *CheckpointEvent {
	node, err := _u.Save(ctx)
	if err != nil {
		panic(err)
	}
	return node
}

// Exec executes the query on the entity.
func (_u *CheckpointEventUpdateOne) Exec(ctx context.Context) error {
	_, err := _u.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_u *CheckpointEventUpdateOne) ExecX(ctx context.Context) {
	if err := _u.Exec(ctx); err != nil {
		panic(err)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_u *CheckpointEventUpdateOne) check() error {
	if v, ok := _u.mutation.AttemptID(); ok {
		if err := checkpointevent.AttemptIDValidator(v); err != nil {
			return &ValidationError{Name: "attempt_id", err: fmt.Errorf(`ent: validator failed for field "CheckpointEvent.attempt_id": %w`, err)}
		}
	}
	if v, ok := _u.mutation.CheckpointID(); ok {
		if err := checkpointevent.CheckpointIDValidator(v); err != nil {
			return &ValidationError{Name: "checkpoint_id", err: fmt.Errorf(`ent: validator failed for field "CheckpointEvent.checkpoint_id": %w`, err)}
		}
	}
	if v, ok := _u.mutation.Action(); ok {
		if err := checkpointevent.ActionValidator(v); err != nil {
			return &ValidationError{Name: "action", err: fmt.Errorf(`ent: validator failed for field "CheckpointEvent.action": %w`, err)}
		}
	}
	return nil
}

func (_u *CheckpointEventUpdateOne) sqlSave(ctx context.Context) (_node *CheckpointEvent, err error) {
	if err := _u.check(); err != nil {
		return _node, err
	}
	_spec := sqlgraph.NewUpdateSpec(checkpointevent.Table, checkpointevent.Columns, sqlgraph.NewFieldSpec(checkpointevent.FieldID, field.TypeInt))
	id, ok := _u.mutation.ID()
	if !ok {
		return nil, &ValidationError{Name: "id", err: errors.New(`ent: missing "CheckpointEvent.id" for update`)}
	}
	_spec.Node.ID.Value = id
	if fields := _u.fields; len(fields) > 0 {
		_spec.Node.Columns = make([]string, 0, len(fields))
		_spec.Node.Columns = append(_spec.Node.Columns, checkpointevent.FieldID)
		for _, f := range fields {
			if !checkpointevent.ValidColumn(f) {
				return nil, &ValidationError{Name: f, err: fmt.Errorf("ent: invalid field %q for query", f)}
			}
			if f != checkpointevent.FieldID {
				_spec.Node.Columns = append(_spec.Node.Columns, f)
			}
		}
	}
	if ps := _u.mutation.predicates; len(ps) > 0 {
		_spec.Predicate = func(selector *sql.Selector) {
			for i := range ps {
				ps[i](selector)
			}
		}
	}
	if value, ok := _u.mutation.AttemptID(); ok {
		_spec.SetField(checkpointevent.FieldAttemptID, field.TypeString, value)
	}
	if value, ok := _u.mutation.CheckpointID(); ok {
		_spec.SetField(checkpointevent.FieldCheckpointID, field.TypeString, value)
	}
	if value, ok := _u.mutation.SubjectID(); ok {
		_spec.SetField(checkpointevent.FieldSubjectID, field.TypeString, value)
	}
	if value, ok := _u.mutation.Action(); ok {
		_spec.SetField(checkpointevent.FieldAction, field.TypeEnum, value)
	}
	if value, ok := _u.mutation.Round(); ok {
		_spec.SetField(checkpointevent.FieldRound, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedRound(); ok {
		_spec.AddField(checkpointevent.FieldRound, field.TypeInt, value)
	}
	if value, ok := _u.mutation.Questions(); ok {
		_spec.SetField(checkpointevent.FieldQuestions, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedQuestions(); ok {
		_spec.AddField(checkpointevent.FieldQuestions, field.TypeInt, value)
	}
	if value, ok := _u.mutation.MissedConcepts(); ok {
		_spec.SetField(checkpointevent.FieldMissedConcepts, field.TypeJSON, value)
	}
	if value, ok := _u.mutation.AppendedMissedConcepts(); ok {
		_spec.AddModifier(func(u *sql.UpdateBuilder) {
			sqljson.Append(u, checkpointevent.FieldMissedConcepts, value)
		})
	}
	if _u.mutation.MissedConceptsCleared() {
		_spec.ClearField(checkpointevent.FieldMissedConcepts, field.TypeJSON)
	}
	if value, ok := _u.mutation.DurationSecs(); ok {
		_spec.SetField(checkpointevent.FieldDurationSecs, field.TypeInt, value)
	}
	if value, ok := _u.mutation.AddedDurationSecs(); ok {
		_spec.AddField(checkpointevent.FieldDurationSecs, field.TypeInt, value)
	}
	_node = &CheckpointEvent{config: _u.config}
	_spec.Assign = _node.assignValues
	_spec.ScanValues = _node.scanValues
	if err = sqlgraph.UpdateNode(ctx, _u.driver, _spec); err != nil {
		if _, ok := err.(*sqlgraph.NotFoundError); ok {
			err = &NotFoundError{checkpointevent.Label}
		} else if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	_u.mutation.done = true
	return _node, nil
}
