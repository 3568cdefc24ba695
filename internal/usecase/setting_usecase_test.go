package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharebin/internal/domain/entity"
)

func TestSettingDefaultsWhenAbsent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	assert.Equal(t, "fallback", env.settings.GetString(ctx, "missing", "fallback"))
	assert.True(t, env.settings.GetBool(ctx, "missing", true))
	assert.Equal(t, int64(42), env.settings.GetInt64(ctx, "missing", 42))
}

func TestSettingRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.settings.SetBool(ctx, SettingQuotaEnabled, true))
	assert.True(t, env.settings.GetBool(ctx, SettingQuotaEnabled, false))

	require.NoError(t, env.settings.SetInt64(ctx, SettingMaxStorage, 1024))
	assert.Equal(t, int64(1024), env.settings.GetInt64(ctx, SettingMaxStorage, 0))

	// Writes refresh the cache in place, so the new value is visible
	// immediately.
	require.NoError(t, env.settings.SetInt64(ctx, SettingMaxStorage, 2048))
	assert.Equal(t, int64(2048), env.settings.GetInt64(ctx, SettingMaxStorage, 0))
}

func TestSettingIntAndLongKindsStaySeparate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.settings.SetInt(ctx, "preview.workers", 8))
	assert.Equal(t, 8, env.settings.GetInt(ctx, "preview.workers", 0))

	// The row is tagged int, so a long read must fall back.
	assert.Equal(t, int64(-1), env.settings.GetInt64(ctx, "preview.workers", -1))

	all, err := env.settings.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, entity.SettingKindInt, all[0].Kind)
}

func TestSettingKindMismatchFallsBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.settings.SetString(ctx, "ambiguous", "true"))

	// The row exists but carries the string kind, so a bool read must
	// not see it.
	assert.False(t, env.settings.GetBool(ctx, "ambiguous", false))
	assert.Equal(t, "true", env.settings.GetString(ctx, "ambiguous", ""))
}

func TestSettingList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.settings.SetBool(ctx, SettingShortenerEnabled, false))
	require.NoError(t, env.settings.SetString(ctx, "site.name", "sharebin"))

	all, err := env.settings.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	kinds := map[string]string{}
	for _, s := range all {
		kinds[s.Key] = s.Kind
	}
	assert.Equal(t, entity.SettingKindBool, kinds[SettingShortenerEnabled])
	assert.Equal(t, entity.SettingKindString, kinds["site.name"])
}
