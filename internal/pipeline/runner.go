package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"texbake/internal/archive"
	"texbake/internal/config"
	"texbake/internal/history"
	"texbake/internal/logging"
	"texbake/internal/material"
)

// lockFileName sits in the working directory while a run is active.
const lockFileName = ".texbake.lock"

// ErrLocked indicates another instance is already processing the directory.
var ErrLocked = errors.New("working directory is locked by another instance")

// Outcome is the result of processing one archive.
type Outcome struct {
	Archive  string
	Material string
	Dir      string
	Duration time.Duration
	Err      error
}

// Runner processes texture archives using a bounded worker pool.
type Runner struct {
	cfg          *config.Config
	logger       *slog.Logger
	store        *history.Store
	materializer *material.Materializer
}

// New constructs a runner. store may be nil, in which case no history is
// recorded.
func New(cfg *config.Config, logger *slog.Logger, store *history.Store) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("runner requires config")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{
		cfg:          cfg,
		logger:       logger,
		store:        store,
		materializer: material.New(logger),
	}, nil
}

// workerCount resolves the configured pool size, defaulting to the CPU count
// capped at four.
func (r *Runner) workerCount() int {
	if workers := r.cfg.Processing.Workers; workers > 0 {
		return workers
	}
	return min(runtime.NumCPU(), 4)
}

// Process extracts and materializes every archive, returning outcomes in the
// same order as the input. A failing archive never aborts the others.
func (r *Runner) Process(ctx context.Context, workDir string, archives []string) ([]Outcome, error) {
	if len(archives) == 0 {
		return nil, nil
	}

	lock := flock.New(filepath.Join(workDir, lockFileName))
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire work lock: %w", err)
	}
	if !acquired {
		return nil, ErrLocked
	}
	defer func() { _ = lock.Unlock() }()

	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := r.logger.With(logging.String(logging.FieldRunID, runID))
	logger.Info("run started",
		logging.String("work_dir", workDir),
		logging.Int("archives", len(archives)),
		logging.Int("workers", r.workerCount()))

	outcomes := make([]Outcome, len(archives))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for worker := 0; worker < r.workerCount(); worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				outcomes[idx] = r.processOne(ctx, runID, logger, archives[idx])
			}
		}()
	}

	for idx := range archives {
		select {
		case jobs <- idx:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return outcomes, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	failed := 0
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			failed++
		}
	}
	logger.Info("run finished",
		logging.Int("processed", len(outcomes)-failed),
		logging.Int("failed", failed))
	return outcomes, nil
}

func (r *Runner) processOne(ctx context.Context, runID string, logger *slog.Logger, zipPath string) Outcome {
	start := time.Now()
	outcome := Outcome{Archive: zipPath}
	logger = logger.With(logging.String(logging.FieldArchive, filepath.Base(zipPath)))
	ctx = logging.WithArchive(ctx, filepath.Base(zipPath))

	var historyID int64
	if r.store != nil {
		id, err := r.store.Begin(ctx, runID, zipPath)
		if err != nil {
			logger.Warn("history record failed", logging.Error(err))
		} else {
			historyID = id
		}
	}

	outcome.Err = r.run(ctx, logger, zipPath, &outcome)
	outcome.Duration = time.Since(start)

	if r.store != nil && historyID != 0 {
		if err := r.store.Finish(ctx, historyID, outcome.Material, outcome.Err); err != nil {
			logger.Warn("history update failed", logging.Error(err))
		}
	}

	if outcome.Err != nil {
		logger.Error("archive failed", logging.Error(outcome.Err))
	} else {
		logger.Info("archive processed",
			logging.String(logging.FieldMaterial, outcome.Material),
			logging.Duration("duration", outcome.Duration))
	}
	return outcome
}

func (r *Runner) run(ctx context.Context, logger *slog.Logger, zipPath string, outcome *Outcome) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir, err := archive.Extract(zipPath)
	if err != nil {
		return fmt.Errorf("extract %s: %w", filepath.Base(zipPath), err)
	}
	logger.Debug("archive extracted", logging.String("dir", dir))

	result, err := r.materializer.Materialize(ctx, dir)
	if err != nil {
		return err
	}
	outcome.Material = result.Name
	outcome.Dir = result.Dir

	if r.cfg.Processing.DeleteArchives {
		if err := os.Remove(zipPath); err != nil {
			logger.Warn("archive removal failed", logging.Error(err))
		} else {
			logger.Debug("archive removed")
		}
	}
	return nil
}
