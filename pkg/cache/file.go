package cache

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// expirySuffix marks the sidecar file holding an entry's deadline.
// Entries stored without a TTL have no sidecar.
const expirySuffix = ".expires"

// FileCache stores artifacts under a local directory, one file per
// entry. Entry data is written as raw bytes, so a cached PNG or CSV on
// disk is the artifact itself and stays directly inspectable; the TTL
// lives in a small sidecar next to the data file.
type FileCache struct {
	dir string
}

// NewFileCache creates a file cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Get retrieves an entry, treating an expired one as a miss.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.entryPath(key)

	expired, err := c.expired(path)
	if err != nil {
		return nil, false, err
	}
	if expired {
		_ = os.Remove(path)
		_ = os.Remove(path + expirySuffix)
		return nil, false, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores an entry. A positive TTL writes a deadline sidecar; a zero
// TTL removes any sidecar left by an earlier Set so the entry never
// expires.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	path := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}

	if ttl <= 0 {
		if err := os.Remove(path + expirySuffix); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	deadline := time.Now().Add(ttl).UnixNano()
	return os.WriteFile(path+expirySuffix, []byte(strconv.FormatInt(deadline, 10)), 0644)
}

// Delete removes an entry and its sidecar. Deleting a missing key is
// not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	path := c.entryPath(key)
	_ = os.Remove(path + expirySuffix)
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file cache.
func (c *FileCache) Close() error {
	return nil
}

// expired reads the entry's deadline sidecar. No sidecar means the
// entry never expires; an unreadable sidecar invalidates the entry.
func (c *FileCache) expired(path string) (bool, error) {
	raw, err := os.ReadFile(path + expirySuffix)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	deadline, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return true, nil
	}
	return time.Now().UnixNano() > deadline, nil
}

// entryPath maps a cache key to its data file. Keys are hashed and
// fanned out over two-character subdirectories so no single directory
// grows unbounded.
func (c *FileCache) entryPath(key string) string {
	sum := Hash([]byte(key))
	return filepath.Join(c.dir, sum[:2], sum[2:])
}

var _ Cache = (*FileCache)(nil)
