package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Sequence names. Each event table pages on its own counter.
const seqLLMRequests = "llm_request_events"

// nextSequence bumps the named counter and returns its previous value,
// starting at 1. It runs in the caller's transaction so an event that fails
// to insert does not consume a number.
func nextSequence(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	var seq int64
	err := tx.QueryRowContext(ctx,
		`INSERT INTO sequences (name, next_val) VALUES (?, 2)
		 ON CONFLICT(name) DO UPDATE SET next_val = next_val + 1
		 RETURNING next_val - 1`, name).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next %s sequence: %w", name, err)
	}
	return seq, nil
}
