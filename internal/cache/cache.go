package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"fragment-generator/internal/decl"
	"fragment-generator/internal/pipeline"
)

// schemaVersion is bumped whenever the payload layout or the rendering of
// generated files changes.
const schemaVersion uint16 = 1

// Digest identifies one cached result.
type Digest [sha256.Size]byte

// String returns the hex form of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

type keyInput struct {
	Schema       uint16             `msgpack:"schema"`
	Config       pipeline.Config    `msgpack:"config"`
	Declarations []decl.Declaration `msgpack:"declarations"`
}

// Key digests the inputs of a pipeline run.
func Key(cfg pipeline.Config, decls []decl.Declaration) (Digest, error) {
	data, err := msgpack.Marshal(&keyInput{Schema: schemaVersion, Config: cfg, Declarations: decls})
	if err != nil {
		return Digest{}, fmt.Errorf("failed to encode cache key: %w", err)
	}

	return sha256.Sum256(data), nil
}

// Payload is the stored form of a pipeline result.
type Payload struct {
	Schema uint16           `msgpack:"schema"`
	Result *pipeline.Result `msgpack:"result"`
}

// DiskCache keeps payloads as msgpack files. A nil *DiskCache is a valid,
// always-missing cache. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// Open returns the cache under $XDG_CACHE_HOME/app, falling back to
// ~/.cache/app.
func Open(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to locate cache directory: %w", err)
		}

		base = filepath.Join(home, ".cache")
	}

	return New(filepath.Join(base, app))
}

// New returns a cache rooted at dir, creating it if needed.
func New(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}

	return c.dir
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "results", key.String()+".mp")
}

// Get returns the cached result for key. Entries written by another schema
// version count as misses.
func (c *DiskCache) Get(key Digest) (*pipeline.Result, bool, error) {
	if c == nil {
		return nil, false, nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	var payload Payload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return nil, false, fmt.Errorf("failed to decode cache entry %s: %w", key, err)
	}

	if payload.Schema != schemaVersion || payload.Result == nil {
		return nil, false, nil
	}

	return payload.Result, true, nil
}

// Put stores res under key. The file is written to a temporary name and
// renamed into place so readers never see a partial entry.
func (c *DiskCache) Put(key Digest, res *pipeline.Result) error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create cache entry: %w", err)
	}

	tmp := f.Name()

	err = msgpack.NewEncoder(f).Encode(&Payload{Schema: schemaVersion, Result: res})
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}

	if err == nil {
		err = os.Rename(tmp, p)
	}

	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write cache entry %s: %w", key, err)
	}

	return nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.RemoveAll(filepath.Join(c.dir, "results")); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	return nil
}
