package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/masteryloop/ent"
	"github.com/abhisek/masteryloop/ent/snapshot"
)

// snapshotRepo implements SnapshotRepo using the ent client.
type snapshotRepo struct {
	client *ent.Client
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data, err := toJSONMap(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	builder := r.client.Snapshot.Create().
		SetSequence(snap.Sequence).
		SetCurriculumVersion(snap.Data.CurriculumVersion()).
		SetData(data)
	if !snap.Timestamp.IsZero() {
		builder = builder.SetTimestamp(snap.Timestamp)
	}
	saved, err := builder.Save(ctx)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	snap.ID = saved.ID
	snap.Timestamp = saved.Timestamp
	return nil
}

// Latest orders by ID as well as timestamp so snapshots saved within the
// same clock tick still resolve to the newest one.
func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	row, err := r.client.Snapshot.Query().
		Order(ent.Desc(snapshot.FieldTimestamp), ent.Desc(snapshot.FieldID)).
		First(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	var data SnapshotData
	if err := fromJSONMap(row.Data, &data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	return &Snapshot{
		ID:        row.ID,
		Sequence:  row.Sequence,
		Timestamp: row.Timestamp,
		Data:      data,
	}, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	if keep <= 0 {
		if _, err := r.client.Snapshot.Delete().Exec(ctx); err != nil {
			return fmt.Errorf("prune snapshots: %w", err)
		}
		return nil
	}
	ids, err := r.client.Snapshot.Query().
		Order(ent.Desc(snapshot.FieldTimestamp), ent.Desc(snapshot.FieldID)).
		Limit(keep).
		IDs(ctx)
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}
	if len(ids) < keep {
		return nil
	}

	if _, err := r.client.Snapshot.Delete().
		Where(snapshot.IDNotIn(ids...)).
		Exec(ctx); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

func toJSONMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func fromJSONMap(m map[string]any, v any) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
