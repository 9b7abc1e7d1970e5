package workout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/akorpela/liftlog/internal/stats"
)

// sqliteCompletionRepository persists finished workouts and reads them back
// for the streak and volume reports.
type sqliteCompletionRepository struct {
	baseRepository
}

// Create stores a completion and its performed exercises in one transaction.
func (r *sqliteCompletionRepository) Create(ctx context.Context, programID int, completion Completion) (_ int, err error) {
	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			r.logger.LogAttrs(ctx, slog.LevelError, "rollback transaction", slog.Any("error", rollbackErr))
		}
	}(tx)

	result, err := tx.ExecContext(ctx, `
		INSERT INTO workout_completions (program_id, completed_at, bad_day)
		VALUES (?, ?, ?)`,
		programID, completion.CompletedAt.UTC().Format(timestampFormat), completion.BadDay)
	if err != nil {
		return 0, fmt.Errorf("insert completion: %w", err)
	}

	completionID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	for _, performed := range completion.Performed {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO completed_exercises (
				completion_id, exercise_id, sets, reps, weight_kg, rating
			) VALUES (?, ?, ?, ?, ?, ?)`,
			completionID, performed.ExerciseID, performed.Sets,
			performed.Reps, performed.WeightKg, performed.Rating); err != nil {
			return 0, fmt.Errorf("insert completed exercise %d: %w", performed.ExerciseID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return int(completionID), nil
}

// List returns all completions of a program since the given time, oldest
// first, with their performed exercises loaded.
func (r *sqliteCompletionRepository) List(ctx context.Context, programID int, since time.Time) (_ []Completion, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, completed_at, bad_day
		FROM workout_completions
		WHERE program_id = ? AND completed_at >= ?
		ORDER BY completed_at`,
		programID, since.UTC().Format(timestampFormat))
	if err != nil {
		return nil, fmt.Errorf("query completions: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var completions []Completion
	for rows.Next() {
		var (
			completion     Completion
			completedAtStr string
		)
		if err = rows.Scan(&completion.ID, &completedAtStr, &completion.BadDay); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		completion.CompletedAt, err = time.Parse(timestampFormat, completedAtStr)
		if err != nil {
			return nil, fmt.Errorf("parse completed_at: %w", err)
		}
		completions = append(completions, completion)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	for i, completion := range completions {
		var performed []PerformedExercise
		performed, err = r.fetchPerformed(ctx, completion.ID)
		if err != nil {
			return nil, fmt.Errorf("fetch performed exercises for completion %d: %w", completion.ID, err)
		}
		completions[i].Performed = performed
	}

	return completions, nil
}

// LastPerformance returns the most recent performance of an exercise in a
// program, skipping bad-day completions. Returns ErrNotFound when the
// exercise has never been performed on a normal day.
func (r *sqliteCompletionRepository) LastPerformance(
	ctx context.Context,
	programID int,
	exerciseID int,
) (PerformedExercise, error) {
	var performed PerformedExercise
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT ce.exercise_id, ce.sets, ce.reps, ce.weight_kg, ce.rating
		FROM completed_exercises ce
		JOIN workout_completions wc ON wc.id = ce.completion_id
		WHERE wc.program_id = ? AND ce.exercise_id = ? AND wc.bad_day = 0
		ORDER BY wc.completed_at DESC
		LIMIT 1`, programID, exerciseID).Scan(
		&performed.ExerciseID, &performed.Sets, &performed.Reps,
		&performed.WeightKg, &performed.Rating)
	if err != nil {
		return PerformedExercise{}, fmt.Errorf("query last performance: %w", asRepoError(err))
	}
	return performed, nil
}

// ListVolumeSamples flattens the completed exercises of a program since the
// given time into volume samples with exercise names and muscle groups.
func (r *sqliteCompletionRepository) ListVolumeSamples(
	ctx context.Context,
	programID int,
	since time.Time,
) (_ []stats.VolumeSample, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT ce.id, ce.sets, ce.reps, ce.weight_kg, e.name, wc.completed_at, mg.muscle_group_name
		FROM completed_exercises ce
		JOIN workout_completions wc ON wc.id = ce.completion_id
		JOIN exercises e ON e.id = ce.exercise_id
		LEFT JOIN exercise_muscle_groups mg ON mg.exercise_id = ce.exercise_id
		WHERE wc.program_id = ? AND wc.completed_at >= ?
		ORDER BY wc.completed_at, ce.id, mg.muscle_group_name`,
		programID, since.UTC().Format(timestampFormat))
	if err != nil {
		return nil, fmt.Errorf("query volume samples: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var (
		samples       []stats.VolumeSample
		currentRowID  int
		currentSample *stats.VolumeSample
	)
	for rows.Next() {
		var (
			rowID          int
			sets, reps     int
			weightKg       float64
			name           string
			completedAtStr string
			muscleGroup    sql.NullString
		)
		if err = rows.Scan(&rowID, &sets, &reps, &weightKg, &name, &completedAtStr, &muscleGroup); err != nil {
			return nil, fmt.Errorf("scan volume sample row: %w", err)
		}

		// One completed exercise fans out to one row per muscle group.
		if currentSample == nil || rowID != currentRowID {
			if currentSample != nil {
				samples = append(samples, *currentSample)
			}
			var completedAt time.Time
			completedAt, err = time.Parse(timestampFormat, completedAtStr)
			if err != nil {
				return nil, fmt.Errorf("parse completed_at: %w", err)
			}
			currentRowID = rowID
			currentSample = &stats.VolumeSample{
				Sets:         sets,
				Reps:         reps,
				WeightKg:     weightKg,
				ExerciseName: name,
				MuscleGroups: nil,
				CompletedAt:  completedAt,
			}
		}
		if muscleGroup.Valid {
			currentSample.MuscleGroups = append(currentSample.MuscleGroups, muscleGroup.String)
		}
	}
	if currentSample != nil {
		samples = append(samples, *currentSample)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return samples, nil
}

// fetchPerformed loads the performed exercises of one completion.
func (r *sqliteCompletionRepository) fetchPerformed(ctx context.Context, completionID int) (_ []PerformedExercise, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT exercise_id, sets, reps, weight_kg, rating
		FROM completed_exercises
		WHERE completion_id = ?
		ORDER BY id`, completionID)
	if err != nil {
		return nil, fmt.Errorf("query completed exercises: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var performed []PerformedExercise
	for rows.Next() {
		var p PerformedExercise
		if err = rows.Scan(&p.ExerciseID, &p.Sets, &p.Reps, &p.WeightKg, &p.Rating); err != nil {
			return nil, fmt.Errorf("scan completed exercise: %w", err)
		}
		performed = append(performed, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return performed, nil
}
