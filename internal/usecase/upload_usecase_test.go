package usecase

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharebin/internal/domain/entity"
	"sharebin/pkg/errors"
)

func TestUploadTextFile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice", "user")

	file, err := env.uploads.Upload(ctx, user, strings.NewReader("0123456789"), UploadInput{
		Filename: "a.txt",
		Public:   true,
	})
	require.NoError(t, err)

	assert.Equal(t, "a.txt", file.Filename)
	assert.Equal(t, int64(10), file.Size)
	assert.Equal(t, "text/plain", file.MimeType)
	assert.Equal(t, file.ID+"/a.txt", file.RelativeLocation)
	require.NotNil(t, file.ShortURL)
	assert.Len(t, *file.ShortURL, 8)
	assert.Nil(t, file.Preview)
	assert.Nil(t, file.Metadata)

	quota, err := env.quotaRepo.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), quota.SpaceUsed)
	assert.Equal(t, int64(0), quota.PreviewSpaceUsed)

	events, err := env.auditRepo.ListByEntity(ctx, "File", file.ID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, entity.AuditKindInsert, events[0].Kind)
	assert.Equal(t, user.ID, events[0].ActorID)
}

func TestUploadLargeImageGetsPreviewAndMetadata(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice", "user")

	file, err := env.uploads.Upload(ctx, user, bytes.NewReader(pngBytes(t, 900, 700)), UploadInput{
		Filename: "photo.png",
	})
	require.NoError(t, err)

	require.NotNil(t, file.Preview)
	assert.Equal(t, "photo.png", file.Preview.Filename)
	assert.Equal(t, "image/png", file.Preview.MimeType)
	assert.Greater(t, file.Preview.Size, int64(0))

	require.NotNil(t, file.Metadata)
	assert.Equal(t, 900, file.Metadata.Width)
	assert.Equal(t, 700, file.Metadata.Height)
	assert.Equal(t, "deflate", file.Metadata.Compression)

	// The preview itself must fit the bounding box.
	rc, _, err := env.store.Get(ctx, file.Preview.RelativeLocation)
	require.NoError(t, err)
	defer rc.Close()
	preview, err := io.ReadAll(rc)
	require.NoError(t, err)
	meta, err := env.previews.Probe(ctx, file, bytes.NewReader(preview))
	require.NoError(t, err)
	assert.LessOrEqual(t, meta.Width, 600)
	assert.LessOrEqual(t, meta.Height, 600)

	// Preview bytes count toward the owner's totals.
	quota, err := env.quotaRepo.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, file.Size+file.Preview.Size, quota.SpaceUsed)
	assert.Equal(t, file.Preview.Size, quota.PreviewSpaceUsed)
}

func TestUploadSmallImageSkipsPreview(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice", "user")

	file, err := env.uploads.Upload(ctx, user, bytes.NewReader(pngBytes(t, 100, 80)), UploadInput{
		Filename: "icon.png",
	})
	require.NoError(t, err)

	assert.Nil(t, file.Preview)
	require.NotNil(t, file.Metadata)
	assert.Equal(t, 100, file.Metadata.Width)
	assert.Equal(t, 80, file.Metadata.Height)
}

func TestUploadUnknownExtensionFallsBack(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice", "user")

	file, err := env.uploads.Upload(context.Background(), user, strings.NewReader("x"), UploadInput{
		Filename: "blob.zzz-unknown",
	})
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", file.MimeType)
}

func TestUploadCorruptImageStillSucceeds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice", "user")

	file, err := env.uploads.Upload(ctx, user, strings.NewReader("not a real png"), UploadInput{
		Filename: "broken.png",
	})
	require.NoError(t, err)
	assert.Nil(t, file.Preview)
	assert.Nil(t, file.Metadata)

	got, err := env.fileRepo.GetByID(ctx, file.ID)
	require.NoError(t, err)
	assert.Equal(t, "image/png", got.MimeType)
}

func TestDeleteRemovesRowsObjectsAndAudits(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice", "user")

	file, err := env.uploads.Upload(ctx, user, bytes.NewReader(pngBytes(t, 900, 700)), UploadInput{
		Filename: "photo.png",
	})
	require.NoError(t, err)
	require.NotNil(t, file.Preview)
	previewLocation := file.Preview.RelativeLocation

	require.NoError(t, env.uploads.Delete(ctx, user, file.ID))

	_, err = env.fileRepo.GetByID(ctx, file.ID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	_, _, err = env.store.Get(ctx, file.RelativeLocation)
	assert.Error(t, err)
	_, _, err = env.store.Get(ctx, previewLocation)
	assert.Error(t, err)

	for _, entityName := range []string{"File", "Preview", "ImageMetadata"} {
		events, err := env.auditRepo.ListByEntity(ctx, entityName, file.ID)
		require.NoError(t, err)
		deletes := 0
		for _, e := range events {
			if e.Kind == entity.AuditKindDelete {
				deletes++
			}
		}
		assert.Equal(t, 1, deletes, "expected one delete event for %s", entityName)
	}

	quota, err := env.quotaRepo.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), quota.SpaceUsed)
	assert.Equal(t, int64(0), quota.PreviewSpaceUsed)
}

func TestDeleteRequiresOwnershipOrAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "alice", "user")
	other := env.createUser(t, "bob", "user")
	admin := env.createUser(t, "root", "admin")

	file, err := env.uploads.Upload(ctx, owner, strings.NewReader("data"), UploadInput{Filename: "a.txt"})
	require.NoError(t, err)

	err = env.uploads.Delete(ctx, other, file.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	assert.NoError(t, env.uploads.Delete(ctx, admin, file.ID))
}

func TestOpenPrivateFileHidesExistence(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "alice", "user")
	other := env.createUser(t, "bob", "user")

	file, err := env.uploads.Upload(ctx, owner, strings.NewReader("secret"), UploadInput{
		Filename: "s.txt",
		Public:   false,
	})
	require.NoError(t, err)

	_, _, _, err = env.uploads.Open(ctx, other, file.ID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
	_, _, _, err = env.uploads.Open(ctx, nil, file.ID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	got, rc, info, err := env.uploads.Open(ctx, owner, file.ID)
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, file.ID, got.ID)
	assert.Equal(t, int64(6), info.Size)
}

func TestOpenByShortURL(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice", "user")

	file, err := env.uploads.Upload(ctx, user, strings.NewReader("hello"), UploadInput{
		Filename: "h.txt",
		Public:   true,
	})
	require.NoError(t, err)
	require.NotNil(t, file.ShortURL)

	got, rc, _, err := env.uploads.Open(ctx, nil, *file.ShortURL)
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, file.ID, got.ID)

	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
}

func TestUploadRejectedOverQuota(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice", "user")

	require.NoError(t, env.settings.SetBool(ctx, SettingQuotaEnabled, true))
	require.NoError(t, env.settings.SetInt64(ctx, SettingMaxFileSize, 4))

	_, err := env.uploads.Upload(ctx, user, strings.NewReader("too big"), UploadInput{Filename: "a.txt"})
	assert.True(t, errors.Is(err, "FILE_TOO_LARGE"))

	// Nothing referenced, so a sweep with zero grace finds the orphan
	// count unchanged: the rejected upload never reached the store.
	env.reconcile.grace = 0
	removed, err := env.reconcile.SweepOrphans(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}
