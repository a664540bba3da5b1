package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// nextSequenceNumber draws the next number from the gapless per-year counter.
// It must be called inside the same database transaction as the insert that
// consumes the number: the SELECT ... FOR UPDATE row lock serializes concurrent
// callers, and a rollback of the enclosing transaction returns the counter to
// its previous value, so committed numbers never have holes.
func nextSequenceNumber(ctx context.Context, tx pgx.Tx, sequenceType string, prefix string, year int) (int64, error) {
	// Seed the counter row on first use of a (type, year) pair. ON CONFLICT
	// keeps concurrent first users from racing the insert.
	seedQuery := `
		INSERT INTO transaction_sequences (sequence_type, prefix, year, last_number)
		VALUES ($1, $2, $3, 0)
		ON CONFLICT (sequence_type, year) DO NOTHING;
	`
	if _, err := tx.Exec(ctx, seedQuery, sequenceType, prefix, year); err != nil {
		return 0, fmt.Errorf("failed to seed sequence %s/%d: %w", sequenceType, year, err)
	}

	var lastNumber int64
	lockQuery := `
		SELECT last_number
		FROM transaction_sequences
		WHERE sequence_type = $1 AND year = $2
		FOR UPDATE;
	`
	if err := tx.QueryRow(ctx, lockQuery, sequenceType, year).Scan(&lastNumber); err != nil {
		return 0, fmt.Errorf("failed to lock sequence %s/%d: %w", sequenceType, year, err)
	}

	next := lastNumber + 1
	updateQuery := `
		UPDATE transaction_sequences
		SET last_number = $3
		WHERE sequence_type = $1 AND year = $2;
	`
	if _, err := tx.Exec(ctx, updateQuery, sequenceType, year, next); err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s/%d: %w", sequenceType, year, err)
	}

	return next, nil
}
