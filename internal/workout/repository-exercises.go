package workout

import (
	"context"
	"errors"
	"fmt"
)

// sqliteExerciseRepository persists the exercise catalog.
type sqliteExerciseRepository struct {
	baseRepository
}

// Get retrieves a single exercise by ID.
func (r *sqliteExerciseRepository) Get(ctx context.Context, id int) (Exercise, error) {
	var exercise Exercise

	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT id, name, equipment, is_compound, description_markdown
		FROM exercises
		WHERE id = ?`, id).Scan(
		&exercise.ID,
		&exercise.Name,
		&exercise.Equipment,
		&exercise.IsCompound,
		&exercise.DescriptionMarkdown,
	)
	if err != nil {
		return Exercise{}, fmt.Errorf("query exercise: %w", asRepoError(err))
	}

	muscleGroups, err := r.fetchMuscleGroups(ctx, exercise.ID)
	if err != nil {
		return Exercise{}, fmt.Errorf("fetch muscle groups for exercise %d: %w", exercise.ID, err)
	}
	exercise.MuscleGroups = muscleGroups

	return exercise, nil
}

// List returns all available exercises with their muscle groups.
func (r *sqliteExerciseRepository) List(ctx context.Context) (_ []Exercise, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT id, name, equipment, is_compound, description_markdown
		FROM exercises
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query exercises: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var exercises []Exercise
	for rows.Next() {
		var exercise Exercise
		if err = rows.Scan(
			&exercise.ID, &exercise.Name, &exercise.Equipment,
			&exercise.IsCompound, &exercise.DescriptionMarkdown); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		exercises = append(exercises, exercise)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	for i, exercise := range exercises {
		var muscleGroups []string
		muscleGroups, err = r.fetchMuscleGroups(ctx, exercise.ID)
		if err != nil {
			return nil, fmt.Errorf("fetch muscle groups for exercise %d: %w", exercise.ID, err)
		}
		exercises[i].MuscleGroups = muscleGroups
	}

	return exercises, nil
}

// Create persists a new exercise and its muscle group links.
func (r *sqliteExerciseRepository) Create(ctx context.Context, exercise Exercise) (Exercise, error) {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO exercises (name, equipment, is_compound, description_markdown)
		VALUES (?, ?, ?, ?)`,
		exercise.Name, exercise.Equipment, exercise.IsCompound, exercise.DescriptionMarkdown)
	if err != nil {
		return Exercise{}, fmt.Errorf("insert exercise: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return Exercise{}, fmt.Errorf("last insert id: %w", err)
	}
	exercise.ID = int(id)

	if err = r.saveMuscleGroups(ctx, exercise.ID, exercise.MuscleGroups); err != nil {
		return Exercise{}, fmt.Errorf("save muscle groups: %w", err)
	}

	return exercise, nil
}

// Update overwrites an exercise and replaces its muscle group links.
func (r *sqliteExerciseRepository) Update(ctx context.Context, exercise Exercise) error {
	result, err := r.db.ReadWrite.ExecContext(ctx, `
		UPDATE exercises
		SET name = ?, equipment = ?, is_compound = ?, description_markdown = ?
		WHERE id = ?`,
		exercise.Name, exercise.Equipment, exercise.IsCompound, exercise.DescriptionMarkdown, exercise.ID)
	if err != nil {
		return fmt.Errorf("update exercise: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("exercise %d: %w", exercise.ID, ErrNotFound)
	}

	if _, err = r.db.ReadWrite.ExecContext(ctx, `
		DELETE FROM exercise_muscle_groups WHERE exercise_id = ?`, exercise.ID); err != nil {
		return fmt.Errorf("clear muscle groups: %w", err)
	}
	if err = r.saveMuscleGroups(ctx, exercise.ID, exercise.MuscleGroups); err != nil {
		return fmt.Errorf("save muscle groups: %w", err)
	}

	return nil
}

// ListMuscleGroups retrieves all known muscle group names.
func (r *sqliteExerciseRepository) ListMuscleGroups(ctx context.Context) (_ []string, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT name FROM muscle_groups ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query muscle groups: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var groups []string
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan muscle group: %w", err)
		}
		groups = append(groups, name)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return groups, nil
}

// fetchMuscleGroups retrieves the muscle groups linked to an exercise.
func (r *sqliteExerciseRepository) fetchMuscleGroups(ctx context.Context, exerciseID int) (_ []string, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT mg.name
		FROM exercise_muscle_groups emg
		JOIN muscle_groups mg ON emg.muscle_group_name = mg.name
		WHERE emg.exercise_id = ?
		ORDER BY mg.name`, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("query muscle groups: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var muscleGroups []string
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan muscle group row: %w", err)
		}
		muscleGroups = append(muscleGroups, name)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return muscleGroups, nil
}

// saveMuscleGroups links an exercise to its muscle groups, creating any
// groups that do not exist yet.
func (r *sqliteExerciseRepository) saveMuscleGroups(ctx context.Context, exerciseID int, groups []string) error {
	for _, group := range groups {
		if _, err := r.db.ReadWrite.ExecContext(ctx, `
			INSERT INTO muscle_groups (name) VALUES (?)
			ON CONFLICT (name) DO NOTHING`, group); err != nil {
			return fmt.Errorf("insert muscle group %q: %w", group, err)
		}
		if _, err := r.db.ReadWrite.ExecContext(ctx, `
			INSERT INTO exercise_muscle_groups (exercise_id, muscle_group_name)
			VALUES (?, ?)
			ON CONFLICT (exercise_id, muscle_group_name) DO NOTHING`, exerciseID, group); err != nil {
			return fmt.Errorf("link muscle group %q: %w", group, err)
		}
	}
	return nil
}
