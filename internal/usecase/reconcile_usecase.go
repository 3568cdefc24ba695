package usecase

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"sharebin/internal/domain/entity"
	"sharebin/internal/domain/repository"
	"sharebin/internal/domain/service"
	"sharebin/pkg/logger"
)

// regenerateParallelism caps concurrent re-probes during bulk metadata
// regeneration.
const regenerateParallelism = 4

// ReconcileUseCase keeps the object store and the database in
// agreement. Uploads write the object before the row, so the only
// inconsistency a crash can produce is an unreferenced object; the
// sweep collects those.
type ReconcileUseCase struct {
	fileRepo repository.FileRepository
	store    service.ObjectStore
	previews *PreviewGenerator
	grace    time.Duration
}

func NewReconcileUseCase(fileRepo repository.FileRepository, store service.ObjectStore, previews *PreviewGenerator, grace time.Duration) *ReconcileUseCase {
	return &ReconcileUseCase{
		fileRepo: fileRepo,
		store:    store,
		previews: previews,
		grace:    grace,
	}
}

// SweepOrphans deletes stored objects no row references. Objects
// younger than the grace period are skipped: they may belong to an
// upload whose transaction has not committed yet. Returns the number
// of objects removed.
func (uc *ReconcileUseCase) SweepOrphans(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-uc.grace)
	removed := 0

	err := uc.store.Walk(ctx, func(location string, modTime time.Time) error {
		if modTime.After(cutoff) {
			return nil
		}

		referenced, err := uc.fileRepo.LocationReferenced(ctx, location)
		if err != nil {
			return err
		}
		if referenced {
			return nil
		}

		if err := uc.store.Delete(ctx, location); err != nil {
			logger.Warn("Orphan delete of %s failed: %v", location, err)
			return nil
		}
		logger.Info("Removed orphaned object %s", location)
		removed++
		return nil
	})
	return removed, err
}

// Start runs the sweep on a fixed interval until ctx is cancelled.
func (uc *ReconcileUseCase) Start(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := uc.SweepOrphans(ctx); err != nil {
					logger.Error("Orphan sweep failed: %v", err)
				}
			}
		}
	}()
}

// RegenerateMetadata re-probes every stored image and rewrites its
// metadata row. Used after codec upgrades; work is bounded by the
// preview generator's semaphore.
func (uc *ReconcileUseCase) RegenerateMetadata(ctx context.Context) (int, error) {
	files, err := uc.fileRepo.ListImages(ctx)
	if err != nil {
		return 0, err
	}

	sem := semaphore.NewWeighted(regenerateParallelism)
	var mu sync.Mutex
	updated := 0

	for _, file := range files {
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		go func(file *entity.File) {
			defer sem.Release(1)

			rc, _, err := uc.store.Get(ctx, file.RelativeLocation)
			if err != nil {
				logger.Warn("Metadata regeneration: cannot read %s: %v", file.ID, err)
				return
			}

			metadata, err := uc.previews.Probe(ctx, file, rc)
			rc.Close()
			if err != nil {
				logger.Warn("Metadata regeneration: probe of %s failed: %v", file.ID, err)
				return
			}

			if err := uc.fileRepo.UpsertImageMetadata(ctx, metadata); err != nil {
				logger.Warn("Metadata regeneration: record for %s failed: %v", file.ID, err)
				return
			}
			mu.Lock()
			updated++
			mu.Unlock()
		}(file)
	}

	// Wait for in-flight workers.
	if err := sem.Acquire(ctx, regenerateParallelism); err != nil {
		return updated, err
	}
	sem.Release(regenerateParallelism)
	return updated, nil
}
