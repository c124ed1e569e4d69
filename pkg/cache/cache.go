// Package cache provides artifact caching for the analysis pipeline.
//
// Cached artifacts are the byte outputs of a run: the result table (CSV)
// and the rendered image. Keys are derived from a SHA-256 hash of the
// input file's content plus the rendering options, so a changed input or
// option never reuses a stale artifact. Graph structures themselves are
// never cached or persisted.
//
// Three backends exist:
//   - [NullCache]: caching disabled (the default)
//   - [FileCache]: local directory, for CLI usage
//   - [RedisCache]: shared cache, for server deployments
package cache

import (
	"context"
	"strconv"
	"time"
)

// Cache is the storage interface shared by all backends.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Default TTLs per artifact kind.
const (
	// TTLTable is the lifetime of cached result tables.
	TTLTable = 7 * 24 * time.Hour

	// TTLImage is the lifetime of cached rendered images.
	TTLImage = 7 * 24 * time.Hour
)

// ImageKeyOpts captures every option that changes rendered image bytes.
type ImageKeyOpts struct {
	Layout        string
	SizeByDegree  bool
	WidthByWeight bool
	Format        string
	Seed          int64
	Width         int
	Height        int
}

// Keyer generates cache keys for pipeline artifacts.
type Keyer interface {
	// TableKey generates a key for a result table, from the hash of the
	// input file's content.
	TableKey(inputHash string) string

	// ImageKey generates a key for a rendered image.
	ImageKey(inputHash string, opts ImageKeyOpts) string
}

// DefaultKeyer is the standard key generation strategy.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// TableKey generates a key for a result table.
func (k *DefaultKeyer) TableKey(inputHash string) string {
	return buildKey("table", inputHash)
}

// ImageKey generates a key for a rendered image. Every option field is
// a key component, so any change in rendering settings misses.
func (k *DefaultKeyer) ImageKey(inputHash string, opts ImageKeyOpts) string {
	return buildKey("image", inputHash,
		opts.Layout,
		strconv.FormatBool(opts.SizeByDegree),
		strconv.FormatBool(opts.WidthByWeight),
		opts.Format,
		strconv.FormatInt(opts.Seed, 10),
		strconv.Itoa(opts.Width),
		strconv.Itoa(opts.Height),
	)
}
