package usecase

import (
	"context"
	"fmt"

	"sharebin/internal/domain/entity"
	"sharebin/internal/domain/repository"
	"sharebin/pkg/errors"
)

type QuotaUseCase struct {
	txm      repository.TxManager
	fileRepo repository.FileRepository
	quotas   repository.QuotaRepository
	settings *SettingUseCase
}

func NewQuotaUseCase(
	txm repository.TxManager,
	fileRepo repository.FileRepository,
	quotas repository.QuotaRepository,
	settings *SettingUseCase,
) *QuotaUseCase {
	return &QuotaUseCase{
		txm:      txm,
		fileRepo: fileRepo,
		quotas:   quotas,
		settings: settings,
	}
}

// Recalculate recomputes the user's space totals from the file rows and
// persists them. Always a full recompute, never an increment, so a
// partially failed earlier operation can never leave the counters
// drifted. Returns the number of files summed.
func (uc *QuotaUseCase) Recalculate(ctx context.Context, userID string) (int, error) {
	var fileCount int

	err := uc.txm.Do(ctx, func(ctx context.Context) error {
		files, err := uc.fileRepo.ListAllOwned(ctx, userID)
		if err != nil {
			return err
		}

		var spaceUsed, previewSpaceUsed int64
		for _, f := range files {
			spaceUsed += f.Size
			if f.Preview != nil {
				spaceUsed += f.Preview.Size
				previewSpaceUsed += f.Preview.Size
			}
		}
		fileCount = len(files)

		quota, err := uc.quotas.Get(ctx, userID)
		if err != nil {
			if !errors.Is(err, "NOT_FOUND") {
				return err
			}
			quota = &entity.UserQuota{UserID: userID}
		}

		quota.SpaceUsed = spaceUsed
		quota.PreviewSpaceUsed = previewSpaceUsed
		return uc.quotas.Upsert(ctx, quota)
	})
	if err != nil {
		return 0, err
	}
	return fileCount, nil
}

// Get returns the stored quota row for a user.
func (uc *QuotaUseCase) Get(ctx context.Context, userID string) (*entity.UserQuota, error) {
	return uc.quotas.Get(ctx, userID)
}

// SetLimits updates a user's per-user overrides; nil clears one back to
// the system default.
func (uc *QuotaUseCase) SetLimits(ctx context.Context, userID string, maxFileSize, maxStorage *int64) (*entity.UserQuota, error) {
	quota, err := uc.quotas.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}
		quota = &entity.UserQuota{UserID: userID}
	}

	quota.MaxFileSize = maxFileSize
	quota.MaxStorage = maxStorage
	if err := uc.quotas.Upsert(ctx, quota); err != nil {
		return nil, err
	}
	return quota, nil
}

// CheckUpload enforces the per-file and total-storage limits before an
// upload is accepted. Per-user overrides win over the system defaults;
// zero means unlimited. Skipped entirely when quota enforcement is off.
func (uc *QuotaUseCase) CheckUpload(ctx context.Context, userID string, size int64) error {
	if !uc.settings.GetBool(ctx, SettingQuotaEnabled, false) {
		return nil
	}

	var spaceUsed int64
	var maxFileSize, maxStorage *int64

	quota, err := uc.quotas.Get(ctx, userID)
	if err == nil {
		spaceUsed = quota.SpaceUsed
		maxFileSize = quota.MaxFileSize
		maxStorage = quota.MaxStorage
	} else if !errors.Is(err, "NOT_FOUND") {
		return err
	}

	effMaxFileSize := uc.settings.GetInt64(ctx, SettingMaxFileSize, 0)
	if maxFileSize != nil {
		effMaxFileSize = *maxFileSize
	}
	if effMaxFileSize > 0 && size > effMaxFileSize {
		return errors.FileTooLarge(fmt.Sprintf("File exceeds the maximum size of %d bytes", effMaxFileSize))
	}

	effMaxStorage := uc.settings.GetInt64(ctx, SettingMaxStorage, 0)
	if maxStorage != nil {
		effMaxStorage = *maxStorage
	}
	if effMaxStorage > 0 && spaceUsed+size > effMaxStorage {
		return errors.QuotaExceeded(fmt.Sprintf("Upload would exceed the storage limit of %d bytes", effMaxStorage))
	}

	return nil
}
