package project

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.etcd.io/bbolt"

	"github.com/goex-lang/goex/internal/syntax"
)

var bucketUnits = []byte("units")

// CacheFile is the build cache location relative to the project root.
const CacheFile = ".goex/cache.db"

// Cache is the incremental build cache. Keys are unit paths; values pair
// a fingerprint of the unit's source and generation context with the
// generated output, so unchanged units skip regeneration.
type Cache struct {
	db *bbolt.DB
}

// OpenCache opens (or creates) the build cache at path.
func OpenCache(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketUnits)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{db: db}, nil
}

// Close closes the cache.
func (c *Cache) Close() error {
	return c.db.Close()
}

type cacheEntry struct {
	Hash   string `json:"hash"`
	Output string `json:"output"`
}

// Lookup returns the cached output for a unit if its fingerprint still
// matches.
func (c *Cache) Lookup(unitPath, hash string) (string, bool) {
	var out string
	var hit bool
	_ = c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketUnits).Get([]byte(unitPath))
		if data == nil {
			return nil
		}
		var entry cacheEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil
		}
		if entry.Hash == hash {
			out = entry.Output
			hit = true
		}
		return nil
	})
	return out, hit
}

// Store records the generated output for a unit under its fingerprint.
func (c *Cache) Store(unitPath, hash, output string) error {
	return c.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(cacheEntry{Hash: hash, Output: output})
		if err != nil {
			return err
		}
		return tx.Bucket(bucketUnits).Put([]byte(unitPath), data)
	})
}

// Fingerprint hashes a unit's source together with everything else that
// feeds generation: the module path and the project-wide class table.
// A change to any class shape invalidates every unit, which is coarse
// but safe.
func Fingerprint(source []byte, module string, classes map[string]*syntax.ClassDecl) string {
	h := sha256.New()
	h.Write(source)
	fmt.Fprintf(h, "|module=%s", module)

	names := make([]string, 0, len(classes))
	for name := range classes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := classes[name]
		fmt.Fprintf(h, "|class=%s:%s:%d:%d", name, c.Extends, len(c.Fields), len(c.Methods))
	}

	return hex.EncodeToString(h.Sum(nil))
}
