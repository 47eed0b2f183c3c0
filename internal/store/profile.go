package store

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/masteryloop/ent"
)

// profileRepo stores the learner in a single-row table.
type profileRepo struct {
	client *ent.Client
}

func (r *profileRepo) Load(ctx context.Context) (*LearnerData, error) {
	row, err := r.client.Learner.Query().First(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load learner: %w", err)
	}
	return &LearnerData{
		Name:      row.Name,
		Email:     row.Email,
		Role:      row.Role,
		Track:     row.Track,
		Subject:   row.Subject,
		SignedIn:  row.SignedIn,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (r *profileRepo) Save(ctx context.Context, data LearnerData) error {
	updatedAt := data.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	n, err := r.client.Learner.Update().
		SetName(data.Name).
		SetEmail(data.Email).
		SetRole(data.Role).
		SetTrack(data.Track).
		SetSubject(data.Subject).
		SetSignedIn(data.SignedIn).
		SetUpdatedAt(updatedAt).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("update learner: %w", err)
	}
	if n > 0 {
		return nil
	}

	_, err = r.client.Learner.Create().
		SetName(data.Name).
		SetEmail(data.Email).
		SetRole(data.Role).
		SetTrack(data.Track).
		SetSubject(data.Subject).
		SetSignedIn(data.SignedIn).
		SetUpdatedAt(updatedAt).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("create learner: %w", err)
	}
	return nil
}

func (r *profileRepo) Delete(ctx context.Context) error {
	if _, err := r.client.Learner.Delete().Exec(ctx); err != nil {
		return fmt.Errorf("delete learner: %w", err)
	}
	return nil
}
