// Package cache stores validation results on disk, keyed by a hash of the
// document content and the rule set that produced them.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/yaklabco/adoclint/pkg/lint"
)

// SchemaVersion is bumped whenever the entry layout changes; entries with a
// different schema are treated as misses.
const SchemaVersion uint16 = 1

const entriesDir = "results"

// Key identifies one cached result.
type Key [sha256.Size]byte

// String returns the hex encoding of the key.
func (k Key) String() string {
	return hex.EncodeToString(k[:])
}

// NewKey derives the key for content validated by the rule set described by
// signature.
func NewKey(signature string, content []byte) Key {
	h := sha256.New()

	var schema [2]byte
	binary.BigEndian.PutUint16(schema[:], SchemaVersion)
	h.Write(schema[:])

	// Length prefix keeps signature and content from running together.
	var size [8]byte
	binary.BigEndian.PutUint64(size[:], uint64(len(signature)))
	h.Write(size[:])
	h.Write([]byte(signature))
	h.Write(content)

	var key Key
	copy(key[:], h.Sum(nil))
	return key
}

// Entry is the on-disk payload.
type Entry struct {
	Schema      uint16            `msgpack:"schema"`
	Diagnostics []lint.Diagnostic `msgpack:"diagnostics"`
}

// Cache is a directory of msgpack-encoded entries.
// It is safe for concurrent use. A nil *Cache is valid and caches nothing.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Open returns a cache rooted at dir, creating it if needed.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Join(dir, entriesDir), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// OpenDefault opens the cache for app under $XDG_CACHE_HOME, falling back
// to ~/.cache.
func OpenDefault(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("locate cache dir: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return Open(filepath.Join(base, app))
}

// Dir returns the cache root directory.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *Cache) pathFor(key Key) string {
	return filepath.Join(c.dir, entriesDir, key.String()+".mp")
}

// Get returns the diagnostics stored under key. found is false on a miss,
// including entries written with another schema.
func (c *Cache) Get(key Key) ([]lint.Diagnostic, bool, error) {
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
		return nil, false, fmt.Errorf("read cache entry: %w", err)
	}

	var entry Entry
	if err := msgpack.Unmarshal(data, &entry); err != nil {
		return nil, false, fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	if entry.Schema != SchemaVersion {
		return nil, false, nil
	}

	if entry.Diagnostics == nil {
		entry.Diagnostics = []lint.Diagnostic{}
	}
	return entry.Diagnostics, true, nil
}

// Put stores diags under key. The entry is written to a temporary file and
// renamed into place.
func (c *Cache) Put(key Key, diags []lint.Diagnostic) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := msgpack.Marshal(&Entry{Schema: SchemaVersion, Diagnostics: diags})
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	path := c.pathFor(key)
	tmp, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return fmt.Errorf("create cache entry: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cache entry: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("commit cache entry: %w", err)
	}
	return nil
}

// Clear removes every entry.
func (c *Cache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	dir := filepath.Join(c.dir, entriesDir)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}
