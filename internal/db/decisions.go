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

// DecisionRecord is one stored screening decision.
type DecisionRecord struct {
	ID          uuid.UUID            `json:"id"`
	CandidateID string               `json:"candidate_id"`
	JobID       string               `json:"job_id,omitempty"`
	FinalScore  int                  `json:"final_score"`
	Decision    string               `json:"decision"`
	Payload     *types.FinalDecision `json:"payload,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// SaveDecision stores a finished decision with its identifying
// metadata. Implements the pipeline's Store contract.
func (db *DB) SaveDecision(ctx context.Context, candidateID, jobID string, decision *types.FinalDecision) error {
	payload, err := json.Marshal(decision)
	if err != nil {
		return fmt.Errorf("failed to marshal decision: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO decisions (candidate_id, job_id, final_score, decision, payload)
		 VALUES ($1, $2, $3, $4, $5)`,
		candidateID, jobID, decision.FinalScore, decision.Decision, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to save decision for %s: %w", candidateID, err)
	}
	return nil
}

// GetDecision retrieves a stored decision by ID. Returns nil when no
// record exists.
func (db *DB) GetDecision(ctx context.Context, id uuid.UUID) (*DecisionRecord, error) {
	var record DecisionRecord
	var payload []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, candidate_id, COALESCE(job_id, ''), final_score, decision, payload, created_at
		 FROM decisions WHERE id = $1`,
		id,
	).Scan(&record.ID, &record.CandidateID, &record.JobID, &record.FinalScore,
		&record.Decision, &payload, &record.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get decision: %w", err)
	}

	if len(payload) > 0 {
		var decision types.FinalDecision
		if err := json.Unmarshal(payload, &decision); err == nil {
			record.Payload = &decision
		}
	}
	return &record, nil
}

// DecisionFilters holds optional filters for listing decisions
type DecisionFilters struct {
	CandidateID string
	JobID       string
	Decision    string
	Limit       int
}

// ListDecisions retrieves recent decisions with optional filters.
func (db *DB) ListDecisions(ctx context.Context, filters DecisionFilters) ([]DecisionRecord, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT id, candidate_id, COALESCE(job_id, ''), final_score, decision, created_at
		FROM decisions WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.CandidateID != "" {
		query += fmt.Sprintf(" AND candidate_id = $%d", argNum)
		args = append(args, filters.CandidateID)
		argNum++
	}
	if filters.JobID != "" {
		query += fmt.Sprintf(" AND job_id = $%d", argNum)
		args = append(args, filters.JobID)
		argNum++
	}
	if filters.Decision != "" {
		query += fmt.Sprintf(" AND decision = $%d", argNum)
		args = append(args, filters.Decision)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list decisions: %w", err)
	}
	defer rows.Close()

	var records []DecisionRecord
	for rows.Next() {
		var record DecisionRecord
		if err := rows.Scan(&record.ID, &record.CandidateID, &record.JobID,
			&record.FinalScore, &record.Decision, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan decision: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}
