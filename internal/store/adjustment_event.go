package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendAdjustmentEvent(ctx context.Context, data AdjustmentEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO adjustment_events
			(sequence, timestamp, user_id, zone, level, reason, performance, answered, target_retention)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, formatTime(time.Now()), data.UserID, data.Zone, data.Level, data.Reason,
		data.Performance, data.Answered, data.TargetRetention,
	)
	if err != nil {
		return fmt.Errorf("save adjustment event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAdjustmentEvents(ctx context.Context, opts QueryOpts) ([]AdjustmentEvent, error) {
	opts.Purpose = ""
	where, args := eventFilter(opts)
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, sequence, timestamp, user_id, zone, level, reason, performance, answered, target_retention
		FROM adjustment_events`+where, args...)
	if err != nil {
		return nil, fmt.Errorf("query adjustment events: %w", err)
	}
	defer rows.Close()

	var events []AdjustmentEvent
	for rows.Next() {
		var (
			e  AdjustmentEvent
			ts string
		)
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.UserID, &e.Zone, &e.Level, &e.Reason,
			&e.Performance, &e.Answered, &e.TargetRetention); err != nil {
			return nil, fmt.Errorf("scan adjustment event: %w", err)
		}
		if e.Timestamp, err = parseTime(ts); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
