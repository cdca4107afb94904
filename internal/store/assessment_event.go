package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendAssessmentEvent(ctx context.Context, data AssessmentEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO assessment_events
			(sequence, timestamp, user_id, baseline_difficulty, learning_style,
			 attention_span, preferred_challenge, load_tolerance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, formatTime(time.Now()), data.UserID, data.BaselineDifficulty, data.LearningStyle,
		data.AttentionSpan, data.PreferredChallenge, data.LoadTolerance,
	)
	if err != nil {
		return fmt.Errorf("save assessment event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAssessmentEvents(ctx context.Context, opts QueryOpts) ([]AssessmentEvent, error) {
	opts.Purpose = ""
	where, args := eventFilter(opts)
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sequence, timestamp, user_id, baseline_difficulty, learning_style,
			attention_span, preferred_challenge, load_tolerance
		FROM assessment_events`+where, args...)
	if err != nil {
		return nil, fmt.Errorf("query assessment events: %w", err)
	}
	defer rows.Close()

	var events []AssessmentEvent
	for rows.Next() {
		var (
			e  AssessmentEvent
			ts string
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.UserID, &e.BaselineDifficulty,
			&e.LearningStyle, &e.AttentionSpan, &e.PreferredChallenge, &e.LoadTolerance); err != nil {
			return nil, fmt.Errorf("scan assessment event: %w", err)
		}
		if e.Timestamp, err = parseTime(ts); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
