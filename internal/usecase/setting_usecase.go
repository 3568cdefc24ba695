package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"sharebin/internal/domain/entity"
	"sharebin/internal/domain/repository"
	"sharebin/pkg/logger"
)

// Operational toggle keys.
const (
	SettingQuotaEnabled     = "quota.enabled"
	SettingMaxStorage       = "quota.max_storage"
	SettingMaxFileSize      = "quota.max_file_size"
	SettingShortenerEnabled = "shortener.enabled"
	SettingPresignEnabled   = "storage.presign.enabled"
	SettingEmbedsEnabled    = "embeds.enabled"
	SettingGeoIPEnabled     = "geoip.enabled"
)

// settingCacheTTL bounds staleness after another process changes a
// setting; no cross-replica invalidation messaging exists.
const settingCacheTTL = 30 * time.Second

// SettingUseCase is a read-through cache in front of the settings
// table. Reads are filtered by value kind so a row whose kind changed
// falls back to the default instead of being misparsed.
type SettingUseCase struct {
	settings repository.SettingRepository
	cache    *expirable.LRU[string, string]
}

func NewSettingUseCase(settings repository.SettingRepository) *SettingUseCase {
	return &SettingUseCase{
		settings: settings,
		cache:    expirable.NewLRU[string, string](256, nil, settingCacheTTL),
	}
}

func cacheKey(kind, key string) string {
	return "setting:" + kind + ":" + key
}

func (uc *SettingUseCase) get(ctx context.Context, key, kind string) (string, bool) {
	if value, ok := uc.cache.Get(cacheKey(kind, key)); ok {
		return value, true
	}

	setting, err := uc.settings.Get(ctx, key, kind)
	if err != nil {
		return "", false
	}

	uc.cache.Add(cacheKey(kind, key), setting.Value)
	return setting.Value, true
}

func (uc *SettingUseCase) set(ctx context.Context, key, kind, value string) error {
	err := uc.settings.Set(ctx, &entity.Setting{Key: key, Kind: kind, Value: value})
	if err != nil {
		return err
	}
	uc.cache.Add(cacheKey(kind, key), value)
	return nil
}

func (uc *SettingUseCase) GetString(ctx context.Context, key, defaultValue string) string {
	if value, ok := uc.get(ctx, key, entity.SettingKindString); ok {
		return value
	}
	return defaultValue
}

func (uc *SettingUseCase) GetBool(ctx context.Context, key string, defaultValue bool) bool {
	if value, ok := uc.get(ctx, key, entity.SettingKindBool); ok {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			logger.Warn("Setting %s holds unparsable bool %q", key, value)
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func (uc *SettingUseCase) GetInt(ctx context.Context, key string, defaultValue int) int {
	if value, ok := uc.get(ctx, key, entity.SettingKindInt); ok {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			logger.Warn("Setting %s holds unparsable int %q", key, value)
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func (uc *SettingUseCase) GetInt64(ctx context.Context, key string, defaultValue int64) int64 {
	if value, ok := uc.get(ctx, key, entity.SettingKindLong); ok {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			logger.Warn("Setting %s holds unparsable long %q", key, value)
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}

func (uc *SettingUseCase) SetString(ctx context.Context, key, value string) error {
	return uc.set(ctx, key, entity.SettingKindString, value)
}

func (uc *SettingUseCase) SetBool(ctx context.Context, key string, value bool) error {
	return uc.set(ctx, key, entity.SettingKindBool, strconv.FormatBool(value))
}

func (uc *SettingUseCase) SetInt(ctx context.Context, key string, value int) error {
	return uc.set(ctx, key, entity.SettingKindInt, strconv.Itoa(value))
}

func (uc *SettingUseCase) SetInt64(ctx context.Context, key string, value int64) error {
	return uc.set(ctx, key, entity.SettingKindLong, strconv.FormatInt(value, 10))
}

func (uc *SettingUseCase) List(ctx context.Context) ([]entity.Setting, error) {
	return uc.settings.List(ctx)
}
