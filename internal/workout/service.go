package workout

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/akorpela/liftlog/internal/errors"
	"github.com/akorpela/liftlog/internal/progression"
	"github.com/akorpela/liftlog/internal/sqlite"
	"github.com/akorpela/liftlog/internal/stats"
	"github.com/yuin/goldmark"
	"golang.org/x/sync/errgroup"
)

// ErrValidation marks completions rejected before any write happens.
var ErrValidation = errors.NewSentinel("invalid completion")

// Service handles the business logic for programs, completions, and reports.
type Service struct {
	repo         *repository
	logger       *slog.Logger
	markdown     goldmark.Markdown
	openaiAPIKey string
}

// NewService creates a new workout service.
func NewService(db *sqlite.Database, logger *slog.Logger, openaiAPIKey string) *Service {
	return &Service{
		repo:         newRepository(db, logger),
		logger:       logger,
		markdown:     goldmark.New(),
		openaiAPIKey: openaiAPIKey,
	}
}

// Register creates a new user account with a fresh API token.
func (s *Service) Register(ctx context.Context, displayName string) (User, error) {
	user, err := s.repo.users.Create(ctx, displayName)
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate resolves an API token to a user ID.
func (s *Service) Authenticate(ctx context.Context, token string) (int, error) {
	user, err := s.repo.users.GetByToken(ctx, token)
	if err != nil {
		return 0, fmt.Errorf("get user by token: %w", err)
	}
	return user.ID, nil
}

// Program retrieves the authenticated user's program.
func (s *Service) Program(ctx context.Context) (Program, error) {
	program, err := s.repo.programs.Get(ctx)
	if err != nil {
		return Program{}, fmt.Errorf("get program: %w", err)
	}
	return program, nil
}

// SaveProgram creates or replaces the authenticated user's program.
func (s *Service) SaveProgram(ctx context.Context, program Program) error {
	if program.ExpectedPerWeek < 0 {
		return fmt.Errorf("%w: expected per week must not be negative", ErrValidation)
	}
	if program.Goal != progression.GoalStrength && program.Goal != progression.GoalHypertrophy {
		return fmt.Errorf("%w: unknown goal %q", ErrValidation, program.Goal)
	}
	if err := s.repo.programs.Set(ctx, program); err != nil {
		return fmt.Errorf("save program: %w", err)
	}
	return nil
}

// IncrementSettings retrieves the authenticated user's increment settings.
func (s *Service) IncrementSettings(ctx context.Context) (progression.IncrementSettings, error) {
	settings, err := s.repo.settings.Get(ctx)
	if err != nil {
		return progression.IncrementSettings{}, fmt.Errorf("get increment settings: %w", err)
	}
	return settings, nil
}

// SaveIncrementSettings saves the authenticated user's increment settings.
func (s *Service) SaveIncrementSettings(ctx context.Context, settings progression.IncrementSettings) error {
	if err := s.repo.settings.Set(ctx, settings); err != nil {
		return fmt.Errorf("save increment settings: %w", err)
	}
	return nil
}

// Prescriptions returns the current targets of the authenticated user's
// program.
func (s *Service) Prescriptions(ctx context.Context) ([]Prescription, error) {
	program, err := s.repo.programs.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get program: %w", err)
	}
	prescriptions, err := s.repo.programs.ListPrescriptions(ctx, program.ID)
	if err != nil {
		return nil, fmt.Errorf("list prescriptions: %w", err)
	}
	return prescriptions, nil
}

// SavePrescription sets the baseline target for one exercise in the
// authenticated user's program.
func (s *Service) SavePrescription(ctx context.Context, prescription Prescription) error {
	if prescription.Sets <= 0 || prescription.Reps <= 0 {
		return fmt.Errorf("%w: sets and reps must be positive", ErrValidation)
	}
	program, err := s.repo.programs.Get(ctx)
	if err != nil {
		return fmt.Errorf("get program: %w", err)
	}
	if _, err = s.repo.exercises.Get(ctx, prescription.ExerciseID); err != nil {
		return fmt.Errorf("get exercise: %w", err)
	}
	if err = s.repo.programs.UpsertPrescription(ctx, program.ID, prescription); err != nil {
		return fmt.Errorf("upsert prescription: %w", err)
	}
	return nil
}

// CompleteWorkout records a finished workout and advances the prescriptions
// for every performed exercise.
//
// A bad-day completion is persisted for the attendance metrics but leaves
// every prescription untouched. Prescriptions for the performed exercises are
// advanced concurrently; the completion itself is already committed when
// that starts, so a progression failure never loses the workout.
func (s *Service) CompleteWorkout(ctx context.Context, completion Completion) error {
	if err := validateCompletion(completion); err != nil {
		return err
	}

	program, err := s.repo.programs.Get(ctx)
	if err != nil {
		return fmt.Errorf("get program: %w", err)
	}

	if completion.CompletedAt.IsZero() {
		completion.CompletedAt = time.Now()
	}

	completionID, err := s.repo.completions.Create(ctx, program.ID, completion)
	if err != nil {
		return fmt.Errorf("create completion: %w", err)
	}

	if completion.BadDay {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "bad day recorded, prescriptions unchanged",
			slog.Int("completionID", completionID))
		return nil
	}

	settings, err := s.repo.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("get increment settings: %w", err)
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for _, performed := range completion.Performed {
		group.Go(func() error {
			if err := s.advancePrescription(groupCtx, program, performed, settings, completion.CompletedAt); err != nil {
				return fmt.Errorf("advance prescription for exercise %d: %w", performed.ExerciseID, err)
			}
			return nil
		})
	}
	if err = group.Wait(); err != nil {
		return fmt.Errorf("advance prescriptions: %w", err)
	}

	return nil
}

// advancePrescription computes and stores the next target for one performed
// exercise.
func (s *Service) advancePrescription(
	ctx context.Context,
	program Program,
	performed PerformedExercise,
	settings progression.IncrementSettings,
	completedAt time.Time,
) error {
	exercise, err := s.repo.exercises.Get(ctx, performed.ExerciseID)
	if err != nil {
		return fmt.Errorf("get exercise: %w", err)
	}

	// The first completion of an exercise has no stored target yet. The
	// performed values then stand in as the old target in the history.
	old := Prescription{
		ExerciseID: performed.ExerciseID,
		Sets:       performed.Sets,
		Reps:       performed.Reps,
		WeightKg:   performed.WeightKg,
	}
	if stored, getErr := s.repo.programs.GetPrescription(ctx, program.ID, performed.ExerciseID); getErr == nil {
		old = stored
	} else if !errors.Is(getErr, ErrNotFound) {
		return fmt.Errorf("get prescription: %w", getErr)
	}

	result := progression.Calculate(progression.PerformanceSample{
		Sets:         performed.Sets,
		Reps:         performed.Reps,
		WeightKg:     performed.WeightKg,
		Rating:       performed.Rating,
		Equipment:    exercise.Equipment,
		IsCompound:   exercise.IsCompound,
		ExerciseName: exercise.Name,
	}, program.Goal, settings)

	if result.Deload {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "deloading exercise",
			slog.String("exercise", exercise.Name),
			slog.Float64("weightKg", result.WeightKg),
			slog.Int("reps", result.Reps))
	}

	if err = s.repo.programs.UpsertPrescription(ctx, program.ID, Prescription{
		ExerciseID: performed.ExerciseID,
		Sets:       performed.Sets,
		Reps:       result.Reps,
		WeightKg:   result.WeightKg,
	}); err != nil {
		return fmt.Errorf("upsert prescription: %w", err)
	}

	if err = s.repo.history.Record(ctx, program.ID, ProgressionEvent{
		ExerciseID:  performed.ExerciseID,
		AppliedAt:   completedAt,
		OldWeightKg: old.WeightKg,
		OldReps:     old.Reps,
		NewWeightKg: result.WeightKg,
		NewReps:     result.Reps,
		Deload:      result.Deload,
	}); err != nil {
		return fmt.Errorf("record progression event: %w", err)
	}

	return nil
}

// ProgressionHistory returns the progression events applied to one exercise
// in the authenticated user's program, oldest first.
func (s *Service) ProgressionHistory(ctx context.Context, exerciseID int) ([]ProgressionEvent, error) {
	program, err := s.repo.programs.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get program: %w", err)
	}
	events, err := s.repo.history.List(ctx, program.ID, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("list progression history: %w", err)
	}
	return events, nil
}

// LastPerformance returns the most recent non-bad-day performance of an
// exercise in the authenticated user's program.
func (s *Service) LastPerformance(ctx context.Context, exerciseID int) (PerformedExercise, error) {
	program, err := s.repo.programs.Get(ctx)
	if err != nil {
		return PerformedExercise{}, fmt.Errorf("get program: %w", err)
	}
	performed, err := s.repo.completions.LastPerformance(ctx, program.ID, exerciseID)
	if err != nil {
		return PerformedExercise{}, fmt.Errorf("last performance: %w", err)
	}
	return performed, nil
}

func validateCompletion(completion Completion) error {
	for _, performed := range completion.Performed {
		if performed.Rating < progression.RatingVeryEasy || performed.Rating > progression.RatingTooHard {
			return fmt.Errorf("%w: rating %d for exercise %d outside 1-5",
				ErrValidation, performed.Rating, performed.ExerciseID)
		}
		if performed.Sets <= 0 || performed.Reps <= 0 {
			return fmt.Errorf("%w: sets and reps must be positive for exercise %d",
				ErrValidation, performed.ExerciseID)
		}
	}
	return nil
}

// History returns the completions of the authenticated user's program since
// the given time.
func (s *Service) History(ctx context.Context, since time.Time) ([]Completion, error) {
	program, err := s.repo.programs.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get program: %w", err)
	}
	completions, err := s.repo.completions.List(ctx, program.ID, since)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	return completions, nil
}

// Statistics computes the streak and consistency report for the
// authenticated user's program.
func (s *Service) Statistics(ctx context.Context) (stats.StreakReport, error) {
	program, err := s.repo.programs.Get(ctx)
	if err != nil {
		return stats.StreakReport{}, fmt.Errorf("get program: %w", err)
	}

	completions, err := s.repo.completions.List(ctx, program.ID, program.StartedAt)
	if err != nil {
		return stats.StreakReport{}, fmt.Errorf("list completions: %w", err)
	}

	// Bad days count toward attendance: showing up matters even when the
	// workout went poorly.
	events := make([]stats.CompletionEvent, 0, len(completions))
	for _, completion := range completions {
		events = append(events, stats.CompletionEvent{
			CompletedAt: completion.CompletedAt,
			BadDay:      completion.BadDay,
		})
	}

	return stats.CalculateStreaks(events, program.ExpectedPerWeek, program.StartedAt, time.Now()), nil
}

// VolumeReport aggregates the training volume of the authenticated user's
// program since the given time.
func (s *Service) VolumeReport(ctx context.Context, since time.Time) (stats.VolumeReport, error) {
	program, err := s.repo.programs.Get(ctx)
	if err != nil {
		return stats.VolumeReport{}, fmt.Errorf("get program: %w", err)
	}

	samples, err := s.repo.completions.ListVolumeSamples(ctx, program.ID, since)
	if err != nil {
		return stats.VolumeReport{}, fmt.Errorf("list volume samples: %w", err)
	}

	return stats.AggregateVolume(samples), nil
}

// ListExercises returns the exercise catalog.
func (s *Service) ListExercises(ctx context.Context) ([]Exercise, error) {
	exercises, err := s.repo.exercises.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return exercises, nil
}

// GetExercise retrieves a specific exercise by ID.
func (s *Service) GetExercise(ctx context.Context, id int) (Exercise, error) {
	exercise, err := s.repo.exercises.Get(ctx, id)
	if err != nil {
		return Exercise{}, fmt.Errorf("get exercise: %w", err)
	}
	return exercise, nil
}

// UpdateExercise updates an existing exercise in the catalog.
func (s *Service) UpdateExercise(ctx context.Context, exercise Exercise) error {
	if err := s.repo.exercises.Update(ctx, exercise); err != nil {
		return fmt.Errorf("update exercise: %w", err)
	}
	return nil
}

// DescriptionHTML renders an exercise's markdown description to HTML.
func (s *Service) DescriptionHTML(exercise Exercise) (string, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(exercise.DescriptionMarkdown), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

// GenerateExercise creates a new catalog exercise from a name.
//
// In case of errors, it persists a minimal exercise that the user can fill
// in later. The returned exercise always has at least Name and ID set.
func (s *Service) GenerateExercise(ctx context.Context, name string) (Exercise, error) {
	exercise := s.generateExerciseContent(ctx, name)

	persisted, err := s.repo.exercises.Create(ctx, exercise)
	if err != nil {
		return Exercise{}, fmt.Errorf("create exercise: %w", err)
	}

	return persisted, nil
}

// generateExerciseContent builds exercise content, with AI generation when a
// key is configured and a minimal fallback otherwise.
func (s *Service) generateExerciseContent(ctx context.Context, name string) Exercise {
	if s.openaiAPIKey == "" {
		return minimalExercise(name)
	}

	muscleGroups, err := s.repo.exercises.ListMuscleGroups(ctx)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to get muscle groups", slog.Any("error", err))
		return minimalExercise(name)
	}

	generator := newExerciseGenerator(s.openaiAPIKey, muscleGroups)
	generated, err := generator.Generate(ctx, name)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "failed to generate exercise details",
			slog.Any("error", err), slog.String("name", name))
		return minimalExercise(name)
	}

	return generated
}

// minimalExercise returns a basic exercise with just the essential fields.
func minimalExercise(name string) Exercise {
	return Exercise{
		ID:                  -1,
		Name:                name,
		Equipment:           progression.EquipmentMachine,
		IsCompound:          false,
		DescriptionMarkdown: fmt.Sprintf("# %s\n\nNo description available yet.", name),
		MuscleGroups:        []string{},
	}
}
