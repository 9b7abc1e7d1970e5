package workout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akorpela/liftlog/internal/contexthelpers"
)

// sqliteProgramRepository persists each user's program and its prescriptions.
type sqliteProgramRepository struct {
	baseRepository
}

// Get retrieves the authenticated user's program.
func (r *sqliteProgramRepository) Get(ctx context.Context) (Program, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	var (
		program      Program
		startedAtStr string
	)
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, name, goal, expected_per_week, started_at
		FROM programs
		WHERE user_id = ?`, userID).Scan(
		&program.ID, &program.Name, &program.Goal, &program.ExpectedPerWeek, &startedAtStr)
	if err != nil {
		return Program{}, fmt.Errorf("query program: %w", asRepoError(err))
	}

	program.StartedAt, err = time.Parse(time.DateOnly, startedAtStr)
	if err != nil {
		return Program{}, fmt.Errorf("parse started_at: %w", err)
	}

	return program, nil
}

// Set creates or replaces the authenticated user's program.
func (r *sqliteProgramRepository) Set(ctx context.Context, program Program) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO programs (user_id, name, goal, expected_per_week, started_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			name = excluded.name,
			goal = excluded.goal,
			expected_per_week = excluded.expected_per_week,
			started_at = excluded.started_at`,
		userID, program.Name, program.Goal, program.ExpectedPerWeek,
		program.StartedAt.Format(time.DateOnly))
	if err != nil {
		return fmt.Errorf("save program: %w", err)
	}

	return nil
}

// GetPrescription retrieves the current target for one exercise in a program.
func (r *sqliteProgramRepository) GetPrescription(
	ctx context.Context,
	programID int,
	exerciseID int,
) (Prescription, error) {
	var prescription Prescription
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT exercise_id, sets, reps, weight_kg
		FROM prescriptions
		WHERE program_id = ? AND exercise_id = ?`, programID, exerciseID).Scan(
		&prescription.ExerciseID, &prescription.Sets, &prescription.Reps, &prescription.WeightKg)
	if err != nil {
		return Prescription{}, fmt.Errorf("query prescription: %w", asRepoError(err))
	}
	return prescription, nil
}

// ListPrescriptions returns all current targets of a program.
func (r *sqliteProgramRepository) ListPrescriptions(ctx context.Context, programID int) (_ []Prescription, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT exercise_id, sets, reps, weight_kg
		FROM prescriptions
		WHERE program_id = ?
		ORDER BY exercise_id`, programID)
	if err != nil {
		return nil, fmt.Errorf("query prescriptions: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var prescriptions []Prescription
	for rows.Next() {
		var prescription Prescription
		if err = rows.Scan(
			&prescription.ExerciseID, &prescription.Sets,
			&prescription.Reps, &prescription.WeightKg); err != nil {
			return nil, fmt.Errorf("scan prescription: %w", err)
		}
		prescriptions = append(prescriptions, prescription)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return prescriptions, nil
}

// UpsertPrescription writes the target for one exercise in a program.
func (r *sqliteProgramRepository) UpsertPrescription(
	ctx context.Context,
	programID int,
	prescription Prescription,
) error {
	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO prescriptions (program_id, exercise_id, sets, reps, weight_kg)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (program_id, exercise_id) DO UPDATE SET
			sets = excluded.sets,
			reps = excluded.reps,
			weight_kg = excluded.weight_kg`,
		programID, prescription.ExerciseID, prescription.Sets, prescription.Reps, prescription.WeightKg)
	if err != nil {
		return fmt.Errorf("upsert prescription: %w", err)
	}
	return nil
}
