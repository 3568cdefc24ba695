package usecase

import (
	"context"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"sharebin/internal/audit"
	"sharebin/internal/domain/entity"
	"sharebin/internal/domain/repository"
	"sharebin/internal/domain/service"
	"sharebin/pkg/errors"
	"sharebin/pkg/logger"
	"sharebin/pkg/shortid"
)

type UploadUseCase struct {
	txm       repository.TxManager
	fileRepo  repository.FileRepository
	auditRepo repository.AuditRepository
	store     service.ObjectStore
	previews  *PreviewGenerator
	quotas    *QuotaUseCase
	settings  *SettingUseCase
	tempDir   string
}

func NewUploadUseCase(
	txm repository.TxManager,
	fileRepo repository.FileRepository,
	auditRepo repository.AuditRepository,
	store service.ObjectStore,
	previews *PreviewGenerator,
	quotas *QuotaUseCase,
	settings *SettingUseCase,
	tempDir string,
) *UploadUseCase {
	return &UploadUseCase{
		txm:       txm,
		fileRepo:  fileRepo,
		auditRepo: auditRepo,
		store:     store,
		previews:  previews,
		quotas:    quotas,
		settings:  settings,
		tempDir:   tempDir,
	}
}

type UploadInput struct {
	Filename string
	Public   bool
}

// Upload buffers the stream to a temp file, stores the object under a
// freshly generated never-reused key, then records the file row inside
// one transaction. The object is written before the row on purpose: a
// crash in between leaves an unreferenced object that the
// reconciliation sweep collects, never a row without bytes.
func (uc *UploadUseCase) Upload(ctx context.Context, user *entity.User, r io.Reader, input UploadInput) (*entity.File, error) {
	tmp, err := os.CreateTemp(uc.tempDir, "upload-*")
	if err != nil {
		return nil, errors.Internal("Failed to buffer upload", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)
	defer tmp.Close()

	// The client-declared length is never trusted; the buffered byte
	// count is what quota enforcement sees.
	size, err := io.Copy(tmp, r)
	if err != nil {
		return nil, errors.Internal("Failed to buffer upload", err)
	}

	if err := uc.quotas.CheckUpload(ctx, user.ID, size); err != nil {
		return nil, err
	}

	filename := sanitizeFilename(input.Filename)
	id := uuid.New().String()
	mimeType := guessMimeType(filename)

	shortURL, err := shortid.Unique(shortid.URLLength, func(candidate string) (bool, error) {
		return uc.fileRepo.ShortURLExists(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}

	file := &entity.File{
		ID:               id,
		Filename:         filename,
		RelativeLocation: id + "/" + filename,
		ShortURL:         &shortURL,
		MimeType:         mimeType,
		Public:           input.Public,
		UserID:           &user.ID,
		CreatedAt:        time.Now(),
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Internal("Failed to read upload buffer", err)
	}
	storedSize, err := uc.store.Put(ctx, tmp, file.RelativeLocation, mimeType)
	if err != nil {
		return nil, errors.Internal("Failed to store file", err)
	}
	// The store reports what actually landed on disk; that is the size
	// of record.
	file.Size = storedSize

	err = uc.txm.Do(ctx, func(ctx context.Context) error {
		if err := uc.fileRepo.Create(ctx, file); err != nil {
			return err
		}
		event, err := audit.NewEvent(entity.AuditKindInsert, "File", file.ID, user.ID, audit.FileFields(file))
		if err != nil {
			return err
		}
		return uc.auditRepo.Create(ctx, event)
	})
	if err != nil {
		// The stored object is now unreferenced; the sweep removes it
		// once it passes the grace period.
		return nil, err
	}

	uc.generateDerived(ctx, file, tmpPath)

	if _, err := uc.quotas.Recalculate(ctx, user.ID); err != nil {
		logger.Error("Quota recompute after upload of %s failed: %v", file.ID, err)
	}

	return file, nil
}

// generateDerived creates the preview and image metadata rows.
// Best-effort on both counts: a codec failure is logged and the upload
// stands.
func (uc *UploadUseCase) generateDerived(ctx context.Context, file *entity.File, tmpPath string) {
	if !strings.HasPrefix(file.MimeType, "image/") {
		return
	}

	if PreviewSupported(file.MimeType) {
		src, err := os.Open(tmpPath)
		if err == nil {
			preview, err := uc.previews.CreatePreview(ctx, file, src)
			src.Close()
			switch {
			case err != nil:
				logger.Warn("Preview generation for %s failed: %v", file.ID, err)
			case preview != nil:
				if err := uc.fileRepo.CreatePreview(ctx, preview); err != nil {
					logger.Warn("Preview record for %s failed: %v", file.ID, err)
				} else {
					file.Preview = preview
				}
			}
		}
	}

	src, err := os.Open(tmpPath)
	if err != nil {
		return
	}
	defer src.Close()

	metadata, err := uc.previews.Probe(ctx, file, src)
	if err != nil {
		logger.Warn("Image metadata extraction for %s failed: %v", file.ID, err)
		return
	}
	if err := uc.fileRepo.UpsertImageMetadata(ctx, metadata); err != nil {
		logger.Warn("Image metadata record for %s failed: %v", file.ID, err)
		return
	}
	file.Metadata = metadata
}

// Delete removes the file row together with its derived rows, records
// one audit delete event per removed row, then deletes the stored
// objects and recomputes the owner's quota.
func (uc *UploadUseCase) Delete(ctx context.Context, actor *entity.User, id string) error {
	file, err := uc.fileRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !canManage(actor, file) {
		return errors.Forbidden("You don't have permission to delete this file", nil)
	}

	err = uc.txm.Do(ctx, func(ctx context.Context) error {
		events := make([]*entity.AuditEvent, 0, 3)

		event, err := audit.NewEvent(entity.AuditKindDelete, "File", file.ID, actor.ID, audit.FileFields(file))
		if err != nil {
			return err
		}
		events = append(events, event)

		if file.Preview != nil {
			event, err := audit.NewEvent(entity.AuditKindDelete, "Preview", file.ID, actor.ID, audit.PreviewFields(file.Preview))
			if err != nil {
				return err
			}
			events = append(events, event)
			if err := uc.fileRepo.DeletePreview(ctx, file.ID); err != nil {
				return err
			}
		}

		if file.Metadata != nil {
			event, err := audit.NewEvent(entity.AuditKindDelete, "ImageMetadata", file.ID, actor.ID, audit.ImageMetadataFields(file.Metadata))
			if err != nil {
				return err
			}
			events = append(events, event)
			if err := uc.fileRepo.DeleteImageMetadata(ctx, file.ID); err != nil {
				return err
			}
		}

		if err := uc.fileRepo.Delete(ctx, file.ID); err != nil {
			return err
		}

		for _, event := range events {
			if err := uc.auditRepo.Create(ctx, event); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := uc.store.Delete(ctx, file.RelativeLocation); err != nil {
		logger.Warn("Object delete for %s failed: %v", file.ID, err)
	}
	if file.Preview != nil {
		if err := uc.store.Delete(ctx, file.Preview.RelativeLocation); err != nil {
			logger.Warn("Preview object delete for %s failed: %v", file.ID, err)
		}
	}

	if file.UserID != nil {
		if _, err := uc.quotas.Recalculate(ctx, *file.UserID); err != nil {
			logger.Error("Quota recompute after delete of %s failed: %v", file.ID, err)
		}
	}

	return nil
}

// Resolve finds a file by its identifier or short URL.
func (uc *UploadUseCase) Resolve(ctx context.Context, idOrShort string) (*entity.File, error) {
	file, err := uc.fileRepo.GetByID(ctx, idOrShort)
	if err == nil {
		return file, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}
	return uc.fileRepo.GetByShortURL(ctx, idOrShort)
}

// Get returns file metadata under the same access rules as Open.
func (uc *UploadUseCase) Get(ctx context.Context, user *entity.User, idOrShort string) (*entity.File, error) {
	file, err := uc.Resolve(ctx, idOrShort)
	if err != nil {
		return nil, err
	}
	if !file.Public && !canManage(user, file) {
		return nil, errors.NotFound("File", nil)
	}
	return file, nil
}

// OpenPreview streams the preview rendition, when one exists.
func (uc *UploadUseCase) OpenPreview(ctx context.Context, user *entity.User, idOrShort string) (*entity.Preview, io.ReadCloser, error) {
	file, err := uc.Get(ctx, user, idOrShort)
	if err != nil {
		return nil, nil, err
	}
	if file.Preview == nil {
		return nil, nil, errors.NotFound("Preview", nil)
	}

	rc, _, err := uc.store.Get(ctx, file.Preview.RelativeLocation)
	if err != nil {
		if err == service.ErrObjectNotFound {
			return nil, nil, errors.NotFound("Preview", err)
		}
		return nil, nil, errors.Internal("Failed to read preview", err)
	}
	return file.Preview, rc, nil
}

// Open returns a read stream for the file after access checks. Private
// files answer not-found rather than forbidden to callers without
// access, so their existence leaks nothing.
func (uc *UploadUseCase) Open(ctx context.Context, user *entity.User, idOrShort string) (*entity.File, io.ReadCloser, *service.ObjectInfo, error) {
	file, err := uc.Resolve(ctx, idOrShort)
	if err != nil {
		return nil, nil, nil, err
	}

	if !file.Public && !canManage(user, file) {
		return nil, nil, nil, errors.NotFound("File", nil)
	}

	rc, info, err := uc.store.Get(ctx, file.RelativeLocation)
	if err != nil {
		if err == service.ErrObjectNotFound {
			return nil, nil, nil, errors.NotFound("File", err)
		}
		return nil, nil, nil, errors.Internal("Failed to read file", err)
	}
	return file, rc, info, nil
}

// PresignedURL mints a temporary direct download URL when the backend
// and the corresponding system setting allow it.
func (uc *UploadUseCase) PresignedURL(ctx context.Context, user *entity.User, id string, ttl time.Duration) (string, error) {
	if !uc.settings.GetBool(ctx, SettingPresignEnabled, false) {
		return "", errors.BadRequest("Presigned URLs are disabled", nil)
	}

	file, err := uc.fileRepo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if !file.Public && !canManage(user, file) {
		return "", errors.NotFound("File", nil)
	}

	url, err := uc.store.PresignedURL(ctx, file.RelativeLocation, ttl)
	if err != nil {
		if err == service.ErrPresignUnsupported {
			return "", errors.BadRequest("Presigned URLs are not supported by the storage backend", nil)
		}
		return "", errors.Internal("Failed to create presigned URL", err)
	}
	return url, nil
}

func (uc *UploadUseCase) ListFiles(ctx context.Context, userID string, limit, offset int) ([]*entity.File, int64, error) {
	return uc.fileRepo.ListByOwner(ctx, userID, limit, offset)
}

func (uc *UploadUseCase) SearchFiles(ctx context.Context, userID, query string, limit, offset int) ([]*entity.File, int64, error) {
	return uc.fileRepo.Search(ctx, userID, query, limit, offset)
}

func canManage(user *entity.User, file *entity.File) bool {
	if user == nil {
		return false
	}
	if user.Role == "admin" {
		return true
	}
	return file.UserID != nil && *file.UserID == user.ID
}

func sanitizeFilename(filename string) string {
	filename = filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if filename == "" || filename == "." || filename == "/" {
		return "file"
	}
	return filename
}

func guessMimeType(filename string) string {
	ct := mime.TypeByExtension(filepath.Ext(filename))
	if ct == "" {
		return "application/octet-stream"
	}
	// Strip parameters like "; charset=utf-8"; the stored mime type is
	// the bare media type.
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}
