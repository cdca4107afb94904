package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SQLiteProfileRepo persists one JSON-encoded profile row per user.
type SQLiteProfileRepo struct {
	db *sql.DB
}

func (r *SQLiteProfileRepo) Get(ctx context.Context, userID string) (*ProfileData, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM profiles WHERE user_id = ?`, userID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query profile %q: %w", userID, err)
	}

	var p ProfileData
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("decode profile %q: %w", userID, err)
	}
	return &p, nil
}

func (r *SQLiteProfileRepo) Put(ctx context.Context, userID string, p *ProfileData) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile %q: %w", userID, err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO profiles (user_id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		userID, string(raw), formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("save profile %q: %w", userID, err)
	}
	return nil
}

func (r *SQLiteProfileRepo) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id FROM profiles ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan profile id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
