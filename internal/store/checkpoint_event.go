package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/abhisek/masteryloop/ent"
	"github.com/abhisek/masteryloop/ent/answerevent"
	"github.com/abhisek/masteryloop/ent/checkpointevent"
)

func (r *eventRepo) AppendCheckpointEvent(ctx context.Context, data CheckpointEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	builder := r.client.CheckpointEvent.Create().
		SetSequence(seqNum).
		SetAttemptID(data.AttemptID).
		SetCheckpointID(data.CheckpointID).
		SetSubjectID(data.SubjectID).
		SetAction(checkpointevent.Action(data.Action)).
		SetRound(data.Round).
		SetQuestions(data.Questions).
		SetDurationSecs(data.DurationSecs)
	if len(data.MissedConcepts) > 0 {
		builder = builder.SetMissedConcepts(data.MissedConcepts)
	}

	if _, err := builder.Save(ctx); err != nil {
		return fmt.Errorf("save checkpoint event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	_, err = r.client.AnswerEvent.Create().
		SetSequence(seqNum).
		SetAttemptID(data.AttemptID).
		SetCheckpointID(data.CheckpointID).
		SetConceptID(data.ConceptID).
		SetRound(data.Round).
		SetPrompt(data.Prompt).
		SetOptionIndex(data.OptionIndex).
		SetCorrect(data.Correct).
		SetAdaptive(data.Adaptive).
		SetTimeMs(data.TimeMs).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) CheckpointHistory(ctx context.Context, limit int) ([]CheckpointAttempt, error) {
	q := r.client.CheckpointEvent.Query().
		Where(checkpointevent.ActionEQ(checkpointevent.ActionStart)).
		Order(ent.Desc(checkpointevent.FieldSequence))
	if limit > 0 {
		q = q.Limit(limit)
	}
	starts, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query checkpoint starts: %w", err)
	}
	if len(starts) == 0 {
		return nil, nil
	}

	ids := make([]string, len(starts))
	byID := make(map[string]*CheckpointAttempt, len(starts))
	out := make([]CheckpointAttempt, len(starts))
	for i, st := range starts {
		ids[i] = st.AttemptID
		out[i] = CheckpointAttempt{
			AttemptID:    st.AttemptID,
			CheckpointID: st.CheckpointID,
			SubjectID:    st.SubjectID,
			StartedAt:    st.Timestamp,
			Status:       AttemptInProgress,
			Rounds:       1,
			Questions:    st.Questions,
		}
		byID[st.AttemptID] = &out[i]
	}

	events, err := r.client.CheckpointEvent.Query().
		Where(checkpointevent.AttemptIDIn(ids...)).
		Order(ent.Asc(checkpointevent.FieldSequence)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query checkpoint events: %w", err)
	}
	for _, ev := range events {
		a := byID[ev.AttemptID]
		if ev.Round > a.Rounds {
			a.Rounds = ev.Round
		}
		switch ev.Action {
		case checkpointevent.ActionComplete:
			a.Status = AttemptCompleted
			a.EndedAt = ev.Timestamp
		case checkpointevent.ActionAbandon:
			a.Status = AttemptAbandoned
			a.EndedAt = ev.Timestamp
		}
	}

	answers, err := r.client.AnswerEvent.Query().
		Where(answerevent.AttemptIDIn(ids...)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query checkpoint answers: %w", err)
	}
	for _, ans := range answers {
		a := byID[ans.AttemptID]
		a.Answers++
		if ans.Correct {
			a.Correct++
		}
	}

	return out, nil
}

func (r *eventRepo) ConceptAccuracy(ctx context.Context) ([]ConceptAccuracy, error) {
	var rows []struct {
		ConceptID string `json:"concept_id"`
		Answers   int    `json:"answers"`
		Correct   int    `json:"correct"`
	}
	err := r.client.AnswerEvent.Query().
		GroupBy(answerevent.FieldConceptID).
		Aggregate(
			ent.As(ent.Count(), "answers"),
			ent.As(ent.Sum(answerevent.FieldCorrect), "correct"),
		).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("aggregate concept accuracy: %w", err)
	}

	out := make([]ConceptAccuracy, len(rows))
	for i, row := range rows {
		out[i] = ConceptAccuracy{ConceptID: row.ConceptID, Answers: row.Answers, Correct: row.Correct}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ConceptID < out[j].ConceptID })
	return out, nil
}
