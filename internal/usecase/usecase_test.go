package usecase

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	gormrepo "sharebin/internal/adapter/repository"
	"sharebin/internal/domain/entity"
	"sharebin/internal/domain/repository"
	"sharebin/internal/domain/service"
	"sharebin/internal/infrastructure/database"
	"sharebin/internal/infrastructure/storage"
)

type testEnv struct {
	store      service.ObjectStore
	fileRepo   repository.FileRepository
	quotaRepo  repository.QuotaRepository
	auditRepo  repository.AuditRepository
	settings   *SettingUseCase
	quotas     *QuotaUseCase
	previews   *PreviewGenerator
	uploads    *UploadUseCase
	shortLinks *ShortLinkUseCase
	users      *UserUseCase
	reconcile  *ReconcileUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	store, err := storage.NewLocalStorageClient(t.TempDir())
	require.NoError(t, err)

	txm := gormrepo.NewGormTxManager(db)
	fileRepo := gormrepo.NewGormFileRepository(db)
	userRepo := gormrepo.NewGormUserRepository(db)
	quotaRepo := gormrepo.NewGormQuotaRepository(db)
	linkRepo := gormrepo.NewGormShortLinkRepository(db)
	auditRepo := gormrepo.NewGormAuditRepository(db)
	settingRepo := gormrepo.NewGormSettingRepository(db)

	settings := NewSettingUseCase(settingRepo)
	quotas := NewQuotaUseCase(txm, fileRepo, quotaRepo, settings)
	previews := NewPreviewGenerator(store, 2)

	return &testEnv{
		store:      store,
		fileRepo:   fileRepo,
		quotaRepo:  quotaRepo,
		auditRepo:  auditRepo,
		settings:   settings,
		quotas:     quotas,
		previews:   previews,
		uploads:    NewUploadUseCase(txm, fileRepo, auditRepo, store, previews, quotas, settings, t.TempDir()),
		shortLinks: NewShortLinkUseCase(txm, linkRepo, auditRepo, settings),
		users:      NewUserUseCase(txm, userRepo, quotaRepo),
		reconcile:  NewReconcileUseCase(fileRepo, store, previews, 24*time.Hour),
	}
}

func (env *testEnv) createUser(t *testing.T, username, role string) *entity.User {
	t.Helper()
	user, err := env.users.Create(context.Background(), username, role)
	require.NoError(t, err)
	return user
}

// pngBytes renders a solid-color PNG of the given dimensions.
func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 90, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
