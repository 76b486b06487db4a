package query

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/lexibase/lexibase/internal/adapter/sqlite"
)

// DirCatalog implements Installed and Opener over one directory of database
// files. Handles are opened read-only on first use and cached; the catalog
// is safe for concurrent callers.
type DirCatalog struct {
	dir string

	mu      sync.Mutex
	handles map[string]*sql.DB
}

// NewDirCatalog creates a catalog over the given directory.
func NewDirCatalog(dir string) *DirCatalog {
	return &DirCatalog{dir: dir, handles: map[string]*sql.DB{}}
}

// Dictionaries lists the source languages with a dictionary file present.
func (c *DirCatalog) Dictionaries() []string {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil
	}

	var langs []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, sqlite.DictionaryPrefix) || !strings.HasSuffix(name, sqlite.DBSuffix) {
			continue
		}
		langs = append(langs, strings.TrimSuffix(strings.TrimPrefix(name, sqlite.DictionaryPrefix), sqlite.DBSuffix))
	}
	sort.Strings(langs)
	return langs
}

// TranslationTargets lists the target languages with a pair file present for
// the given source language.
func (c *DirCatalog) TranslationTargets(src string) []string {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil
	}

	prefix := sqlite.TranslationPrefix + src + "_"
	var targets []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, sqlite.DBSuffix) {
			continue
		}
		targets = append(targets, strings.TrimSuffix(strings.TrimPrefix(name, prefix), sqlite.DBSuffix))
	}
	sort.Strings(targets)
	return targets
}

// Dictionary returns a cached read-only handle for a dictionary file.
func (c *DirCatalog) Dictionary(lang string) (*sql.DB, error) {
	return c.open(sqlite.DictionaryFileName(lang))
}

// TranslationPair returns a cached read-only handle for a pair file.
func (c *DirCatalog) TranslationPair(src, tgt string) (*sql.DB, error) {
	return c.open(sqlite.TranslationFileName(src, tgt))
}

func (c *DirCatalog) open(name string) (*sql.DB, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if db, ok := c.handles[name]; ok {
		return db, nil
	}

	path := filepath.Join(c.dir, name)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database %s: %w", name, err)
	}

	db, err := sqlite.OpenReadOnly(path)
	if err != nil {
		return nil, err
	}
	c.handles[name] = db
	return db, nil
}

// Close closes every cached handle.
func (c *DirCatalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	for name, db := range c.handles {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close %s: %w", name, err)
		}
		delete(c.handles, name)
	}
	return firstErr
}
