// Package batch walks a directory tree of per-language raw/processed file
// pairs and frequency tables, invoking the ingestion builder per word.
// Words within a language and languages themselves are processed
// sequentially; the embedded storage engine serializes writers.
package batch

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/lexibase/lexibase/internal/adapter/sqlite"
	"github.com/lexibase/lexibase/internal/adapter/sqlite/dictionary"
	"github.com/lexibase/lexibase/internal/adapter/sqlite/translation"
	"github.com/lexibase/lexibase/internal/ingest"
)

// Roots holds the four input/output directory roots of the batch tool.
type Roots struct {
	// Raw is the raw-extraction root: <raw>/<lang>/<word>.json.
	Raw string
	// Processed is the processed language-card root: <processed>/<lang>/<word>.json.
	Processed string
	// Out receives the built database files.
	Out string
	// Frequency holds per-language rank lists: <frequency>/<lang>_words.txt.
	Frequency string
}

// Validate checks that every root exists. Called at startup; a missing root
// is fatal before any word is processed.
func (r Roots) Validate() error {
	for _, root := range []struct {
		name string
		path string
	}{
		{"raw", r.Raw},
		{"processed", r.Processed},
		{"output", r.Out},
		{"frequency", r.Frequency},
	} {
		if root.path == "" {
			return fmt.Errorf("%s root is required", root.name)
		}
		info, err := os.Stat(root.path)
		if err != nil {
			return fmt.Errorf("%s root: %w", root.name, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s root %s is not a directory", root.name, root.path)
		}
	}
	return nil
}

// Result is the outcome of one language's ingestion.
type Result struct {
	Language string
	Words    int
	Duration time.Duration
}

// Driver orchestrates per-language ingestion runs.
type Driver struct {
	log           *slog.Logger
	progressEvery int
}

// NewDriver creates a Driver. progressEvery controls progress log cadence.
func NewDriver(log *slog.Logger, progressEvery int) *Driver {
	return &Driver{log: log, progressEvery: progressEvery}
}

// Run processes every language found under the processed root. Per-language
// subfolders and frequency files missing on the other roots are fatal before
// that language starts; a builder error stops the run — the tool is expected
// to be re-run against fixed input, not to recover.
func (d *Driver) Run(ctx context.Context, roots Roots) ([]Result, error) {
	if err := roots.Validate(); err != nil {
		return nil, err
	}

	langs, err := subdirs(roots.Processed)
	if err != nil {
		return nil, fmt.Errorf("list processed root: %w", err)
	}
	if len(langs) == 0 {
		return nil, fmt.Errorf("processed root %s has no language folders", roots.Processed)
	}

	var results []Result
	for _, lang := range langs {
		start := time.Now()
		d.log.Info("starting language", slog.String("language", lang))

		words, err := d.runLanguage(ctx, roots, lang)
		if err != nil {
			return results, fmt.Errorf("language %s: %w", lang, err)
		}

		result := Result{Language: lang, Words: words, Duration: time.Since(start)}
		results = append(results, result)
		d.log.Info("language completed",
			slog.String("language", lang),
			slog.Int("words", result.Words),
			slog.Duration("duration", result.Duration),
		)
	}
	return results, nil
}

func (d *Driver) runLanguage(ctx context.Context, roots Roots, lang string) (int, error) {
	rawDir := filepath.Join(roots.Raw, lang)
	if _, err := os.Stat(rawDir); err != nil {
		return 0, fmt.Errorf("raw folder: %w", err)
	}

	freq, err := LoadFrequencyTable(filepath.Join(roots.Frequency, lang+"_words.txt"))
	if err != nil {
		return 0, err
	}

	dictDB, err := sqlite.Open(filepath.Join(roots.Out, sqlite.DictionaryFileName(lang)))
	if err != nil {
		return 0, err
	}
	defer dictDB.Close()
	if err := dictionary.EnsureSchema(ctx, dictDB); err != nil {
		return 0, err
	}
	dictRepo := dictionary.New(dictDB)

	pairs := newPairCache(roots.Out, lang)
	defer pairs.Close()

	builder := ingest.NewBuilder(d.log, dictRepo, pairs.Open, lang)

	files, err := filepath.Glob(filepath.Join(roots.Processed, lang, "*.json"))
	if err != nil {
		return 0, fmt.Errorf("list processed files: %w", err)
	}
	sort.Strings(files)

	words := 0
	for _, processedPath := range files {
		word := strings.TrimSuffix(filepath.Base(processedPath), ".json")

		card, err := ingest.ReadProcessedDocument(processedPath)
		if err != nil {
			return words, err
		}
		raw, err := ingest.ReadRawDocument(filepath.Join(rawDir, word+".json"))
		if err != nil {
			return words, err
		}

		if err := builder.BuildWord(ctx, ingest.WordInput{
			Raw:       raw,
			Card:      card,
			Frequency: freq.Score(card.Word),
		}); err != nil {
			return words, err
		}

		words++
		if words%d.progressEvery == 0 {
			d.log.Info("ingestion progress",
				slog.String("language", lang),
				slog.Int("words", words),
				slog.Int("total", len(files)),
			)
		}
	}
	return words, nil
}

// subdirs lists the immediate subdirectory names of root, sorted.
func subdirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// pairCache opens translation pair databases on first use and keeps them for
// the rest of the language run.
type pairCache struct {
	outDir string
	src    string

	dbs   map[string]*sql.DB
	repos map[string]*translation.Repo
}

func newPairCache(outDir, src string) *pairCache {
	return &pairCache{
		outDir: outDir,
		src:    src,
		dbs:    map[string]*sql.DB{},
		repos:  map[string]*translation.Repo{},
	}
}

// Open returns the repository for one target language, creating the pair
// database and its schema on first use.
func (c *pairCache) Open(ctx context.Context, target string) (*translation.Repo, error) {
	if repo, ok := c.repos[target]; ok {
		return repo, nil
	}

	db, err := sqlite.Open(filepath.Join(c.outDir, sqlite.TranslationFileName(c.src, target)))
	if err != nil {
		return nil, err
	}
	if err := translation.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	repo := translation.New(db)
	c.dbs[target] = db
	c.repos[target] = repo
	return repo, nil
}

// Close closes every open pair database.
func (c *pairCache) Close() {
	for _, db := range c.dbs {
		_ = db.Close()
	}
}
