package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharebin/internal/domain/service"
)

func newTestClient(t *testing.T) *LocalStorageClient {
	t.Helper()
	c, err := NewLocalStorageClient(t.TempDir())
	require.NoError(t, err)
	return c
}

func TestPutGetRoundtrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	size, err := c.Put(ctx, strings.NewReader("hello world"), "abc/a.txt", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, int64(11), size)

	rc, info, err := c.Get(ctx, "abc/a.txt")
	require.NoError(t, err)
	defer rc.Close()

	assert.Equal(t, int64(11), info.Size)
	assert.Equal(t, "text/plain", info.ContentType)

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	c := newTestClient(t)

	_, _, err := c.Get(context.Background(), "nope/missing.bin")
	assert.ErrorIs(t, err, service.ErrObjectNotFound)
}

func TestTraversalRejectedWithoutPathDisclosure(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	for _, loc := range []string{
		"../../etc/passwd",
		"a/../../etc/passwd",
		"..",
		"/../../x",
	} {
		_, _, err := c.Get(ctx, loc)
		assert.ErrorIs(t, err, service.ErrObjectNotFound, "get %q", loc)
		assert.NotContains(t, err.Error(), "passwd")
		assert.NotContains(t, err.Error(), "etc")

		_, err = c.Put(ctx, strings.NewReader("x"), loc, "text/plain")
		assert.Error(t, err, "put %q", loc)

		err = c.Delete(ctx, loc)
		assert.Error(t, err, "delete %q", loc)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	_, err := c.Put(ctx, strings.NewReader("x"), "f1/a.bin", "application/octet-stream")
	require.NoError(t, err)

	require.NoError(t, c.Delete(ctx, "f1/a.bin"))
	require.NoError(t, c.Delete(ctx, "f1/a.bin"))

	_, _, err = c.Get(ctx, "f1/a.bin")
	assert.ErrorIs(t, err, service.ErrObjectNotFound)
}

func TestPresignUnsupported(t *testing.T) {
	c := newTestClient(t)

	_, err := c.PresignedURL(context.Background(), "f1/a.bin", time.Minute)
	assert.True(t, errors.Is(err, service.ErrPresignUnsupported))
}

func TestWalkVisitsStoredObjects(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	_, err := c.Put(ctx, strings.NewReader("a"), "f1/a.txt", "text/plain")
	require.NoError(t, err)
	_, err = c.Put(ctx, strings.NewReader("b"), "f2-preview/b.png", "image/png")
	require.NoError(t, err)

	var seen []string
	err = c.Walk(ctx, func(location string, modTime time.Time) error {
		seen = append(seen, location)
		assert.False(t, modTime.IsZero())
		return nil
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"f1/a.txt", "f2-preview/b.png"}, seen)
}
