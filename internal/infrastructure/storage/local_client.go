package storage

import (
	"context"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sharebin/internal/domain/service"
	"sharebin/pkg/logger"
)

// LocalStorageClient stores objects as plain files under a root
// directory. Every location is resolved against the root and anything
// that escapes it is reported as not-found; the attempted path is
// logged but never surfaced to the caller.
type LocalStorageClient struct {
	root string
}

func NewLocalStorageClient(root string) (*LocalStorageClient, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	return &LocalStorageClient{root: abs}, nil
}

// resolve maps a storage-relative location to an absolute path under
// the root. The cleaned result must still live inside the root.
func (c *LocalStorageClient) resolve(location string) (string, bool) {
	rel := filepath.FromSlash(strings.TrimLeft(location, "/\\"))
	joined := filepath.Clean(filepath.Join(c.root, rel))

	prefix := c.root
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	if joined == c.root || !strings.HasPrefix(joined, prefix) {
		logger.Warn("Rejected path traversal attempt in local storage: %q", location)
		return "", false
	}
	return joined, true
}

func (c *LocalStorageClient) Get(ctx context.Context, location string) (io.ReadCloser, *service.ObjectInfo, error) {
	path, ok := c.resolve(location)
	if !ok {
		return nil, nil, service.ErrObjectNotFound
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, service.ErrObjectNotFound
		}
		return nil, nil, err
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	info := &service.ObjectInfo{
		Size:        stat.Size(),
		ContentType: contentTypeFor(location),
	}
	return f, info, nil
}

// Put writes atomically: data lands in a temp file next to the target
// and is renamed into place only once fully written.
func (c *LocalStorageClient) Put(ctx context.Context, r io.Reader, location, contentType string) (int64, error) {
	path, ok := c.resolve(location)
	if !ok {
		return 0, service.ErrObjectNotFound
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".put-*")
	if err != nil {
		return 0, err
	}
	tmpPath := tmp.Name()

	written, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return 0, err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return 0, err
	}
	return written, nil
}

func (c *LocalStorageClient) Delete(ctx context.Context, location string) error {
	path, ok := c.resolve(location)
	if !ok {
		return service.ErrObjectNotFound
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (c *LocalStorageClient) PresignedURL(ctx context.Context, location string, ttl time.Duration) (string, error) {
	return "", service.ErrPresignUnsupported
}

func (c *LocalStorageClient) Walk(ctx context.Context, fn func(location string, modTime time.Time) error) error {
	return filepath.WalkDir(c.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".put-") {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(c.root, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return fn(filepath.ToSlash(rel), info.ModTime())
	})
}

func contentTypeFor(location string) string {
	ct := mime.TypeByExtension(filepath.Ext(location))
	if ct == "" {
		return "application/octet-stream"
	}
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}
