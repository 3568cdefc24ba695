package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"sharebin/internal/domain/entity"
	"sharebin/internal/domain/repository"
	"sharebin/pkg/logger"
	"sharebin/pkg/shortid"
)

type UserUseCase struct {
	txm    repository.TxManager
	users  repository.UserRepository
	quotas repository.QuotaRepository
}

func NewUserUseCase(txm repository.TxManager, users repository.UserRepository, quotas repository.QuotaRepository) *UserUseCase {
	return &UserUseCase{txm: txm, users: users, quotas: quotas}
}

// Create registers a user with a fresh API token and an empty quota
// row.
func (uc *UserUseCase) Create(ctx context.Context, username, role string) (*entity.User, error) {
	token, err := shortid.Unique(shortid.TokenLength, func(candidate string) (bool, error) {
		return uc.users.APITokenExists(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		ID:        uuid.New().String(),
		Username:  username,
		Role:      role,
		APIToken:  token,
		CreatedAt: time.Now(),
	}

	err = uc.txm.Do(ctx, func(ctx context.Context) error {
		if err := uc.users.Create(ctx, user); err != nil {
			return err
		}
		return uc.quotas.Upsert(ctx, &entity.UserQuota{UserID: user.ID})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate looks up a user by API token.
func (uc *UserUseCase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	return uc.users.GetByAPIToken(ctx, token)
}

func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return uc.users.GetByID(ctx, id)
}

// EnsureAdmin bootstraps the first admin account on an empty user
// table and logs its token once. No-op when any user already exists.
func (uc *UserUseCase) EnsureAdmin(ctx context.Context) error {
	count, err := uc.users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin, err := uc.Create(ctx, "admin", "admin")
	if err != nil {
		return err
	}
	logger.Info("Bootstrapped admin account, API token: %s", admin.APIToken)
	return nil
}
