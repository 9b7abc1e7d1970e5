package workout

import (
	"database/sql"
	stderrors "errors"
	"log/slog"

	"github.com/akorpela/liftlog/internal/errors"
	"github.com/akorpela/liftlog/internal/sqlite"
)

const timestampFormat = "2006-01-02T15:04:05.000Z"

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.NewSentinel("not found")

// baseRepository carries the shared dependencies of the SQLite repositories.
type baseRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newBaseRepository(db *sqlite.Database, logger *slog.Logger) baseRepository {
	return baseRepository{
		db:     db,
		logger: logger,
	}
}

// repository groups the per-entity repositories behind one handle.
type repository struct {
	users       *sqliteUserRepository
	exercises   *sqliteExerciseRepository
	programs    *sqliteProgramRepository
	settings    *sqliteSettingsRepository
	completions *sqliteCompletionRepository
	history     *sqliteHistoryRepository
}

func newRepository(db *sqlite.Database, logger *slog.Logger) *repository {
	base := newBaseRepository(db, logger)
	return &repository{
		users:       &sqliteUserRepository{baseRepository: base},
		exercises:   &sqliteExerciseRepository{baseRepository: base},
		programs:    &sqliteProgramRepository{baseRepository: base},
		settings:    &sqliteSettingsRepository{baseRepository: base},
		completions: &sqliteCompletionRepository{baseRepository: base},
		history:     &sqliteHistoryRepository{baseRepository: base},
	}
}

// asRepoError maps driver-level sentinels to repository sentinels.
func asRepoError(err error) error {
	if stderrors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
