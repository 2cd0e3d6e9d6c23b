// Package cache persists provenance and content hashes for materialized
// deployments. It is a drift-detection oracle, not a source of truth:
// losing it degrades conflict safety but never changes what gets deployed.
package cache

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/towboat/pkg/errors"
	"github.com/arthur-debert/towboat/pkg/logging"
	toml "github.com/pelletier/go-toml/v2"
)

var log = logging.GetLogger("cache")

// Entry records one materialized deployment. Symlinked targets never get
// an entry: a symlink cannot drift from its source by construction.
type Entry struct {
	SourcePath   string `toml:"source_path"`
	SourceHash   string `toml:"source_hash"`
	DeployedPath string `toml:"deployed_path"`
	DeployedHash string `toml:"deployed_hash"`
	BuildTag     string `toml:"build_tag"`
}

// Cache is a flat map from canonical deployed-target path to Entry,
// loaded once per run and saved once at run end.
type Cache struct {
	path    string
	entries map[string]Entry
}

// Load reads the cache file at path. A missing file yields an empty cache.
func Load(path string) (*Cache, error) {
	c := &Cache{
		path:    path,
		entries: make(map[string]Entry),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", path).Msg("No cache file, starting empty")
			return c, nil
		}
		return nil, errors.Wrap(err, errors.ErrCacheLoad, "failed to read cache file").
			WithDetail("path", path)
	}

	if err := toml.Unmarshal(data, &c.entries); err != nil {
		return nil, errors.Wrap(err, errors.ErrCacheLoad, "failed to parse cache file").
			WithDetail("path", path)
	}

	log.Debug().Str("path", path).Int("entries", len(c.entries)).Msg("Cache loaded")
	return c, nil
}

// Get looks up the entry for a deployed target path.
func (c *Cache) Get(target string) (Entry, bool) {
	entry, ok := c.entries[CanonicalKey(target)]
	return entry, ok
}

// Upsert records an entry for a deployed target path, replacing any prior
// entry for the same canonical key.
func (c *Cache) Upsert(target string, entry Entry) {
	c.entries[CanonicalKey(target)] = entry
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Save writes the cache back to its backing file, creating parent
// directories as needed.
func (c *Cache) Save() error {
	data, err := toml.Marshal(c.entries)
	if err != nil {
		return errors.Wrap(err, errors.ErrCacheSave, "failed to serialize cache").
			WithDetail("path", c.path)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return errors.Wrap(err, errors.ErrCacheSave, "failed to create cache directory").
			WithDetail("path", c.path)
	}

	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return errors.Wrap(err, errors.ErrCacheSave, "failed to write cache file").
			WithDetail("path", c.path)
	}

	log.Debug().Str("path", c.path).Int("entries", len(c.entries)).Msg("Cache saved")
	return nil
}

// CanonicalKey resolves a target path to the canonical form used as the
// cache key, so two spellings of the same file collide intentionally.
// Ancestor symlinks are resolved when the path exists; a path that does
// not exist yet falls back to its cleaned absolute form.
func CanonicalKey(target string) string {
	abs, err := filepath.Abs(target)
	if err != nil {
		return filepath.Clean(target)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return filepath.Clean(abs)
}
