package cache

import (
	"context"
	"os"
	"path/filepath"

	vdberrors "github.com/matzehuels/efxvdb/pkg/errors"
)

// Options selects and configures a backend.
type Options struct {
	Backend string // BackendNone, BackendFile or BackendRedis
	Dir     string // FileCache directory; DefaultDir() when empty
	Redis   RedisOptions
}

// DefaultDir returns the user cache directory for efxvdb, falling back to
// a directory under the system temp dir.
func DefaultDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "efxvdb")
	}
	return filepath.Join(os.TempDir(), "efxvdb-cache")
}

// Open creates the configured cache. An empty backend is BackendFile.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch opts.Backend {
	case BackendNone:
		return NewNullCache(), nil
	case BackendFile, "":
		dir := opts.Dir
		if dir == "" {
			dir = DefaultDir()
		}
		c, err := NewFileCache(dir)
		if err != nil {
			return nil, vdberrors.Wrap(vdberrors.ErrCodeInvalidPath, err, "cache dir %s", dir)
		}
		return c, nil
	case BackendRedis:
		c, err := NewRedisCache(ctx, opts.Redis)
		if err != nil {
			return nil, vdberrors.Wrap(vdberrors.ErrCodeInvalidConfig, err, "open redis cache")
		}
		return c, nil
	}
	return nil, vdberrors.New(vdberrors.ErrCodeInvalidConfig, "unknown cache backend %q", opts.Backend)
}
