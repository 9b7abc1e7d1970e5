package workout

import (
	"context"
	"errors"
	"fmt"

	"github.com/akorpela/liftlog/internal/contexthelpers"
	"github.com/akorpela/liftlog/internal/progression"
)

// sqliteSettingsRepository persists per-user increment settings.
type sqliteSettingsRepository struct {
	baseRepository
}

// Get retrieves the increment settings for the authenticated user.
//
// A user without saved settings gets the zero value, which makes every
// equipment type fall back to the default increment.
func (r *sqliteSettingsRepository) Get(ctx context.Context) (progression.IncrementSettings, error) {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	var settings progression.IncrementSettings
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT barbell_kg, dumbbell_kg, cable_kg, machine_kg, adaptive
		FROM increment_settings
		WHERE user_id = ?`, userID).Scan(
		&settings.BarbellKg, &settings.DumbbellKg,
		&settings.CableKg, &settings.MachineKg, &settings.Adaptive)

	if errors.Is(asRepoError(err), ErrNotFound) {
		return progression.IncrementSettings{
			BarbellKg:  0,
			DumbbellKg: 0,
			CableKg:    0,
			MachineKg:  0,
			Adaptive:   false,
		}, nil
	}
	if err != nil {
		return progression.IncrementSettings{}, fmt.Errorf("query increment settings: %w", err)
	}

	return settings, nil
}

// Set saves the increment settings for the authenticated user.
func (r *sqliteSettingsRepository) Set(ctx context.Context, settings progression.IncrementSettings) error {
	userID := contexthelpers.AuthenticatedUserID(ctx)

	_, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO increment_settings (
			user_id, barbell_kg, dumbbell_kg, cable_kg, machine_kg, adaptive
		) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			barbell_kg = excluded.barbell_kg,
			dumbbell_kg = excluded.dumbbell_kg,
			cable_kg = excluded.cable_kg,
			machine_kg = excluded.machine_kg,
			adaptive = excluded.adaptive`,
		userID, settings.BarbellKg, settings.DumbbellKg,
		settings.CableKg, settings.MachineKg, settings.Adaptive)
	if err != nil {
		return fmt.Errorf("save increment settings: %w", err)
	}

	return nil
}
