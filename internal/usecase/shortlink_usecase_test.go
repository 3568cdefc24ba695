package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharebin/pkg/errors"
)

func TestCreateShortLinkGeneratedCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice", "user")

	link, err := env.shortLinks.Create(ctx, user, CreateShortLinkInput{
		TargetURL: "https://example.com/some/long/path",
	})
	require.NoError(t, err)
	assert.Len(t, link.Code, 8)
	assert.False(t, link.Vanity)

	resolved, err := env.shortLinks.Resolve(ctx, link.Code)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/some/long/path", resolved.TargetURL)
}

func TestCreateShortLinkVanityConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice", "user")

	link, err := env.shortLinks.Create(ctx, user, CreateShortLinkInput{
		TargetURL: "https://example.com/a",
		Vanity:    "docs",
	})
	require.NoError(t, err)
	assert.Equal(t, "docs", link.Code)
	assert.True(t, link.Vanity)

	_, err = env.shortLinks.Create(ctx, user, CreateShortLinkInput{
		TargetURL: "https://example.com/b",
		Vanity:    "docs",
	})
	assert.True(t, errors.Is(err, "CONFLICT"))
}

func TestCreateShortLinkRejectsBadTargets(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice", "user")

	for _, target := range []string{"", "not a url", "ftp://example.com/x", "/relative/only"} {
		_, err := env.shortLinks.Create(ctx, user, CreateShortLinkInput{TargetURL: target})
		assert.True(t, errors.Is(err, "BAD_REQUEST"), "target %q should be rejected", target)
	}
}

func TestCreateShortLinkDisabled(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice", "user")

	require.NoError(t, env.settings.SetBool(ctx, SettingShortenerEnabled, false))

	_, err := env.shortLinks.Create(ctx, user, CreateShortLinkInput{TargetURL: "https://example.com"})
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestDisablingShortenerStopsPublicResolution(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := env.createUser(t, "alice", "user")

	link, err := env.shortLinks.Create(ctx, user, CreateShortLinkInput{TargetURL: "https://example.com"})
	require.NoError(t, err)

	resolved, err := env.shortLinks.ResolvePublic(ctx, link.Code)
	require.NoError(t, err)
	assert.Equal(t, link.Code, resolved.Code)

	require.NoError(t, env.settings.SetBool(ctx, SettingShortenerEnabled, false))

	_, err = env.shortLinks.ResolvePublic(ctx, link.Code)
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	// The owner-facing lookup keeps working so the link can still be
	// managed or removed while the shortener is off.
	_, err = env.shortLinks.Resolve(ctx, link.Code)
	assert.NoError(t, err)
}

func TestDeleteShortLinkOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "alice", "user")
	other := env.createUser(t, "bob", "user")

	link, err := env.shortLinks.Create(ctx, owner, CreateShortLinkInput{TargetURL: "https://example.com"})
	require.NoError(t, err)

	err = env.shortLinks.Delete(ctx, other, link.Code)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	require.NoError(t, env.shortLinks.Delete(ctx, owner, link.Code))
	_, err = env.shortLinks.Resolve(ctx, link.Code)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}
