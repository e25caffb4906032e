package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/candidate-screener/internal/types"
)

// BatchRecord is one stored batch run summary.
type BatchRecord struct {
	ID         uuid.UUID       `json:"id"`
	Total      int             `json:"total"`
	Successful int             `json:"successful"`
	Failed     int             `json:"failed"`
	Cancelled  bool            `json:"cancelled"`
	Payload    *types.BatchRun `json:"payload,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// SaveBatchRun stores a finished batch run and returns its ID.
func (db *DB) SaveBatchRun(ctx context.Context, run *types.BatchRun) (uuid.UUID, error) {
	payload, err := json.Marshal(run)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal batch run: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO batch_runs (total, successful, failed, cancelled, payload)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		run.Total, run.Successful, run.Failed, run.Cancelled, payload,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save batch run: %w", err)
	}
	return id, nil
}

// GetBatchRun retrieves a stored batch run by ID. Returns nil when no
// record exists.
func (db *DB) GetBatchRun(ctx context.Context, id uuid.UUID) (*BatchRecord, error) {
	var record BatchRecord
	var payload []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, total, successful, failed, cancelled, payload, created_at
		 FROM batch_runs WHERE id = $1`,
		id,
	).Scan(&record.ID, &record.Total, &record.Successful, &record.Failed,
		&record.Cancelled, &payload, &record.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get batch run: %w", err)
	}

	if len(payload) > 0 {
		var run types.BatchRun
		if err := json.Unmarshal(payload, &run); err == nil {
			record.Payload = &run
		}
	}
	return &record, nil
}
