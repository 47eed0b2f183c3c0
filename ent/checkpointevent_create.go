// Code generated by ent, DO NOT EDIT.

package ent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect/sql/sqlgraph"
	"entgo.io/ent/schema/field"
	"github.com/abhisek/masteryloop/ent/checkpointevent"
)

// CheckpointEventCreate is the builder for creating a CheckpointEvent entity.
type CheckpointEventCreate struct {
	config
	mutation *CheckpointEventMutation
	hooks    []Hook
}

// SetSequence sets the "sequence" field.
func (_c *CheckpointEventCreate) SetSequence(v int64) *CheckpointEventCreate {
	_c.mutation.SetSequence(v)
	return _c
}

// SetTimestamp sets the "timestamp" field.
func (_c *CheckpointEventCreate) SetTimestamp(v time.Time) *CheckpointEventCreate {
	_c.mutation.SetTimestamp(v)
	return _c
}

// SetNillableTimestamp sets the "timestamp" field if the given value is not nil.
func (_c *CheckpointEventCreate) SetNillableTimestamp(v *time.Time) *CheckpointEventCreate {
	if v != nil {
		_c.SetTimestamp(*v)
	}
	return _c
}

// SetAttemptID sets the "attempt_id" field.
func (_c *CheckpointEventCreate) SetAttemptID(v string) *CheckpointEventCreate {
	_c.mutation.SetAttemptID(v)
	return _c
}

// SetCheckpointID sets the "checkpoint_id" field.
func (_c *CheckpointEventCreate) SetCheckpointID(v string) *CheckpointEventCreate {
	_c.mutation.SetCheckpointID(v)
	return _c
}

// SetSubjectID sets the "subject_id" field.
func (_c *CheckpointEventCreate) SetSubjectID(v string) *CheckpointEventCreate {
	_c.mutation.SetSubjectID(v)
	return _c
}

// SetNillableSubjectID sets the "subject_id" field if the given value is not nil.
func (_c *CheckpointEventCreate) SetNillableSubjectID(v *string) *CheckpointEventCreate {
	if v != nil {
		_c.SetSubjectID(*v)
	}
	return _c
}

// SetAction sets the "action" field.
func (_c *CheckpointEventCreate) SetAction(v checkpointevent.Action) *CheckpointEventCreate {
	_c.mutation.SetAction(v)
	return _c
}

// SetRound sets the "round" field.
func (_c *CheckpointEventCreate) SetRound(v int) *CheckpointEventCreate {
	_c.mutation.SetRound(v)
	return _c
}

// SetNillableRound sets the "round" field if the given value is not nil.
func (_c *CheckpointEventCreate) SetNillableRound(v *int) *CheckpointEventCreate {
	if v != nil {
		_c.SetRound(*v)
	}
	return _c
}

// SetQuestions sets the "questions" field.
func (_c *CheckpointEventCreate) SetQuestions(v int) *CheckpointEventCreate {
	_c.mutation.SetQuestions(v)
	return _c
}

// SetNillableQuestions sets the "questions" field if the given value is not nil.
func (_c *CheckpointEventCreate) SetNillableQuestions(v *int) *CheckpointEventCreate {
	if v != nil {
		_c.SetQuestions(*v)
	}
	return _c
}

// SetMissedConcepts sets the "missed_concepts" field.
func (_c *CheckpointEventCreate) SetMissedConcepts(v []string) *CheckpointEventCreate {
	_c.mutation.SetMissedConcepts(v)
	return _c
}

// SetDurationSecs sets the "duration_secs" field.
func (_c *CheckpointEventCreate) SetDurationSecs(v int) *CheckpointEventCreate {
	_c.mutation.SetDurationSecs(v)
	return _c
}

// SetNillableDurationSecs sets the "duration_secs" field if the given value is not nil.
func (_c *CheckpointEventCreate) SetNillableDurationSecs(v *int) *CheckpointEventCreate {
	if v != nil {
		_c.SetDurationSecs(*v)
	}
	return _c
}

// Mutation returns the CheckpointEventMutation object of the builder.
func (_c *CheckpointEventCreate) Mutation() *CheckpointEventMutation {
	return _c.mutation
}

// Save creates the CheckpointEvent in the database.
func (_c *CheckpointEventCreate) Save(ctx context.Context) (*CheckpointEvent, error) {
	_c.defaults()
	return withHooks(ctx, _c.sqlSave, _c.mutation, _c.hooks)
}

// SaveX calls Save and panics if Save returns an error.
func (_c *CheckpointEventCreate) SaveX(ctx context.Context) *CheckpointEvent {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *CheckpointEventCreate) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *CheckpointEventCreate) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}

// defaults sets the default values of the builder before save.
func (_c *CheckpointEventCreate) defaults() {
	if _, ok := _c.mutation.Timestamp(); !ok {
		v := checkpointevent.DefaultTimestamp()
		_c.mutation.SetTimestamp(v)
	}
	if _, ok := _c.mutation.SubjectID(); !ok {
		v := checkpointevent.DefaultSubjectID
		_c.mutation.SetSubjectID(v)
	}
	if _, ok := _c.mutation.Round(); !ok {
		v := checkpointevent.DefaultRound
		_c.mutation.SetRound(v)
	}
	if _, ok := _c.mutation.Questions(); !ok {
		v := checkpointevent.DefaultQuestions
		_c.mutation.SetQuestions(v)
	}
	if _, ok := _c.mutation.DurationSecs(); !ok {
		v := checkpointevent.DefaultDurationSecs
		_c.mutation.SetDurationSecs(v)
	}
}

// check runs all checks and user-defined validators on the builder.
func (_c *CheckpointEventCreate) check() error {
	if _, ok := _c.mutation.Sequence(); !ok {
		return &ValidationError{Name: "sequence", err: errors.New(`ent: missing required field "CheckpointEvent.sequence"`)}
	}
	if _, ok := _c.mutation.Timestamp(); !ok {
		return &ValidationError{Name: "timestamp", err: errors.New(`ent: missing required field "CheckpointEvent.timestamp"`)}
	}
	if _, ok := _c.mutation.AttemptID(); !ok {
		return &ValidationError{Name: "attempt_id", err: errors.New(`ent: missing required field "CheckpointEvent.attempt_id"`)}
	}
	if v, ok := _c.mutation.AttemptID(); ok {
		if err := checkpointevent.AttemptIDValidator(v); err != nil {
			return &ValidationError{Name: "attempt_id", err: fmt.Errorf(`ent: validator failed for field "CheckpointEvent.attempt_id": %w`, err)}
		}
	}
	if _, ok := _c.mutation.CheckpointID(); !ok {
		return &ValidationError{Name: "checkpoint_id", err: errors.New(`ent: missing required field "CheckpointEvent.checkpoint_id"`)}
	}
	if v, ok := _c.mutation.CheckpointID(); ok {
		if err := checkpointevent.CheckpointIDValidator(v); err != nil {
			return &ValidationError{Name: "checkpoint_id", err: fmt.Errorf(`ent: validator failed for field "CheckpointEvent.checkpoint_id": %w`, err)}
		}
	}
	if _, ok := _c.mutation.SubjectID(); !ok {
		return &ValidationError{Name: "subject_id", err: errors.New(`ent: missing required field "CheckpointEvent.subject_id"`)}
	}
	if _, ok := _c.mutation.Action(); !ok {
		return &ValidationError{Name: "action", err: errors.New(`ent: missing required field "CheckpointEvent.action"`)}
	}
	if v, ok := _c.mutation.Action(); ok {
		if err := checkpointevent.ActionValidator(v); err != nil {
			return &ValidationError{Name: "action", err: fmt.Errorf(`ent: validator failed for field "CheckpointEvent.action": %w`, err)}
		}
	}
	if _, ok := _c.mutation.Round(); !ok {
		return &ValidationError{Name: "round", err: errors.New(`ent: missing required field "CheckpointEvent.round"`)}
	}
	if _, ok := _c.mutation.Questions(); !ok {
		return &ValidationError{Name: "questions", err: errors.New(`ent: missing required field "CheckpointEvent.questions"`)}
	}
	if _, ok := _c.mutation.DurationSecs(); !ok {
		return &ValidationError{Name: "duration_secs", err: errors.New(`ent: missing required field "CheckpointEvent.duration_secs"`)}
	}
	return nil
}

func (_c *CheckpointEventCreate) sqlSave(ctx context.Context) (*CheckpointEvent, error) {
	if err := _c.check(); err != nil {
		return nil, err
	}
	_node, _spec := _c.createSpec()
	if err := sqlgraph.CreateNode(ctx, _c.driver, _spec); err != nil {
		if sqlgraph.IsConstraintError(err) {
			err = &ConstraintError{msg: err.Error(), wrap: err}
		}
		return nil, err
	}
	id := _spec.ID.Value.(int64)
	_node.ID = int(id)
	_c.mutation.id = &_node.ID
	_c.mutation.done = true
	return _node, nil
}

func (_c *CheckpointEventCreate) createSpec() (*CheckpointEvent, *sqlgraph.CreateSpec) {
	var (
		_node = &CheckpointEvent{config: _c.config}
		_spec = sqlgraph.NewCreateSpec(checkpointevent.Table, sqlgraph.NewFieldSpec(checkpointevent.FieldID, field.TypeInt))
	)
	if value, ok := _c.mutation.Sequence(); ok {
		_spec.SetField(checkpointevent.FieldSequence, field.TypeInt64, value)
		_node.Sequence = value
	}
	if value, ok := _c.mutation.Timestamp(); ok {
		_spec.SetField(checkpointevent.FieldTimestamp, field.TypeTime, value)
		_node.Timestamp = value
	}
	if value, ok := _c.mutation.AttemptID(); ok {
		_spec.SetField(checkpointevent.FieldAttemptID, field.TypeString, value)
		_node.AttemptID = value
	}
	if value, ok := _c.mutation.CheckpointID(); ok {
		_spec.SetField(checkpointevent.FieldCheckpointID, field.TypeString, value)
		_node.CheckpointID = value
	}
	if value, ok := _c.mutation.SubjectID(); ok {
		_spec.SetField(checkpointevent.FieldSubjectID, field.TypeString, value)
		_node.SubjectID = value
	}
	if value, ok := _c.mutation.Action(); ok {
		_spec.SetField(checkpointevent.FieldAction, field.TypeEnum, value)
		_node.Action = value
	}
	if value, ok := _c.mutation.Round(); ok {
		_spec.SetField(checkpointevent.FieldRound, field.TypeInt, value)
		_node.Round = value
	}
	if value, ok := _c.mutation.Questions(); ok {
		_spec.SetField(checkpointevent.FieldQuestions, field.TypeInt, value)
		_node.Questions = value
	}
	if value, ok := _c.mutation.MissedConcepts(); ok {
		_spec.SetField(checkpointevent.FieldMissedConcepts, field.TypeJSON, value)
		_node.MissedConcepts = value
	}
	if value, ok := _c.mutation.DurationSecs(); ok {
		_spec.SetField(checkpointevent.FieldDurationSecs, field.TypeInt, value)
		_node.DurationSecs = value
	}
	return _node, _spec
}

// CheckpointEventCreateBulk is the builder for creating many CheckpointEvent entities in bulk.
type CheckpointEventCreateBulk struct {
	config
	err      error
	builders []*CheckpointEventCreate
}

// Save creates the CheckpointEvent entities in the database.
func (_c *CheckpointEventCreateBulk) Save(ctx context.Context) ([]*CheckpointEvent, error) {
	if _c.err != nil {
		return nil, _c.err
	}
	specs := make([]*sqlgraph.CreateSpec, len(_c.builders))
	nodes := make([]*CheckpointEvent, len(_c.builders))
	mutators := make([]Mutator, len(_c.builders))
	for i := range _c.builders {
		func(i int, root context.Context) {
			builder := _c.builders[i]
			builder.defaults()
			var mut Mutator = MutateFunc(func(ctx context.Context, m Mutation) (Value, error) {
				mutation, ok := m.(*CheckpointEventMutation)
				if !ok {
					return nil, fmt.Errorf("unexpected mutation type %T", m)
				}
				if err := builder.check(); err != nil {
					return nil, err
				}
				builder.mutation = mutation
				var err error
				nodes[i], specs[i] = builder.createSpec()
				if i < len(mutators)-1 {
					_, err = mutators[i+1].Mutate(root, _c.builders[i+1].mutation)
				} else {
					spec := &sqlgraph.BatchCreateSpec{Nodes: specs}
					// Invoke the actual operation on the latest mutation in the chain.
					if err = sqlgraph.BatchCreate(ctx, _c.driver, spec); err != nil {
						if sqlgraph.IsConstraintError(err) {
							err = &ConstraintError{msg: err.Error(), wrap: err}
						}
					}
				}
				if err != nil {
					return nil, err
				}
				mutation.id = &nodes[i].ID
				if specs[i].ID.Value != nil {
					id := specs[i].ID.Value.(int64)
					nodes[i].ID = int(id)
				}
				mutation.done = true
				return nodes[i], nil
			})
			for i := len(builder.hooks) - 1; i >= 0; i-- {
				mut = builder.hooks[i](mut)
			}
			mutators[i] = mut
		}(i, ctx)
	}
	if len(mutators) > 0 {
		if _, err := mutators[0].Mutate(ctx, _c.builders[0].mutation); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// SaveX is like Save, but panics if an error occurs.
func (_c *CheckpointEventCreateBulk) SaveX(ctx context.Context) []*CheckpointEvent {
	v, err := _c.Save(ctx)
	if err != nil {
		panic(err)
	}
	return v
}

// Exec executes the query.
func (_c *CheckpointEventCreateBulk) Exec(ctx context.Context) error {
	_, err := _c.Save(ctx)
	return err
}

// ExecX is like Exec, but panics if an error occurs.
func (_c *CheckpointEventCreateBulk) ExecX(ctx context.Context) {
	if err := _c.Exec(ctx); err != nil {
		panic(err)
	}
}
