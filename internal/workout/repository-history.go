package workout

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// sqliteHistoryRepository persists the progression events applied to a
// program's prescriptions.
type sqliteHistoryRepository struct {
	baseRepository
}

// Record stores one applied progression.
func (r *sqliteHistoryRepository) Record(ctx context.Context, programID int, event ProgressionEvent) error {
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO progression_history (
			program_id, exercise_id, applied_at,
			old_weight_kg, old_reps, new_weight_kg, new_reps, deload
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		programID, event.ExerciseID, event.AppliedAt.UTC().Format(timestampFormat),
		event.OldWeightKg, event.OldReps, event.NewWeightKg, event.NewReps, event.Deload)
	if err != nil {
		return fmt.Errorf("insert progression event: %w", err)
	}
	return nil
}

// List returns the progression events for one exercise in a program, oldest
// first.
func (r *sqliteHistoryRepository) List(
	ctx context.Context,
	programID int,
	exerciseID int,
) (_ []ProgressionEvent, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT exercise_id, applied_at, old_weight_kg, old_reps, new_weight_kg, new_reps, deload
		FROM progression_history
		WHERE program_id = ? AND exercise_id = ?
		ORDER BY applied_at, id`, programID, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("query progression history: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var events []ProgressionEvent
	for rows.Next() {
		var (
			event        ProgressionEvent
			appliedAtStr string
		)
		if err = rows.Scan(
			&event.ExerciseID, &appliedAtStr,
			&event.OldWeightKg, &event.OldReps,
			&event.NewWeightKg, &event.NewReps, &event.Deload); err != nil {
			return nil, fmt.Errorf("scan progression event: %w", err)
		}
		event.AppliedAt, err = time.Parse(timestampFormat, appliedAtStr)
		if err != nil {
			return nil, fmt.Errorf("parse applied_at: %w", err)
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return events, nil
}
