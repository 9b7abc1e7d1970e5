package sqlite

import (
	"testing"

	"github.com/akorpela/liftlog/internal/testhelpers"
)

func TestDatabase_CloseStopsOptimizer(t *testing.T) {
	t.Parallel()
	ctx := t.Context()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	db, err := NewDatabase(ctx, ":memory:", logger)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}

	if err = db.Close(); err != nil {
		t.Fatalf("Failed to close database: %v", err)
	}

	// Close must not return while the optimizer goroutine can still write to
	// the logger, otherwise a test logger gets writes after its test ends.
	select {
	case <-db.optimizerDone:
	default:
		t.Error("optimizer goroutine still running after Close")
	}
}
