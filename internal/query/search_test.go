package query

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/google/uuid"

	"github.com/lexibase/lexibase/internal/adapter/sqlite"
	"github.com/lexibase/lexibase/internal/adapter/sqlite/dictionary"
	"github.com/lexibase/lexibase/internal/adapter/sqlite/translation"
	"github.com/lexibase/lexibase/internal/domain"
)

// fakeCatalog implements Installed and Opener over in-memory databases.
type fakeCatalog struct {
	dicts map[string]*sql.DB
	pairs map[string]*sql.DB // key "src_tgt"
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{dicts: map[string]*sql.DB{}, pairs: map[string]*sql.DB{}}
}

func (c *fakeCatalog) Dictionaries() []string {
	var langs []string
	for lang := range c.dicts {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

func (c *fakeCatalog) TranslationTargets(src string) []string {
	prefix := src + "_"
	var targets []string
	for key := range c.pairs {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			targets = append(targets, key[len(prefix):])
		}
	}
	sort.Strings(targets)
	return targets
}

func (c *fakeCatalog) Dictionary(lang string) (*sql.DB, error) {
	db, ok := c.dicts[lang]
	if !ok {
		return nil, fmt.Errorf("no dictionary for %s", lang)
	}
	return db, nil
}

func (c *fakeCatalog) TranslationPair(src, tgt string) (*sql.DB, error) {
	db, ok := c.pairs[src+"_"+tgt]
	if !ok {
		return nil, fmt.Errorf("no pair for %s_%s", src, tgt)
	}
	return db, nil
}

func (c *fakeCatalog) addDictionary(t *testing.T, lang string) *dictionary.Repo {
	t.Helper()
	db, err := sqlite.OpenMemory()
	if err != nil {
		t.Fatalf("open dictionary: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := dictionary.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	c.dicts[lang] = db
	return dictionary.New(db)
}

func (c *fakeCatalog) addPair(t *testing.T, src, tgt string) *translation.Repo {
	t.Helper()
	db, err := sqlite.OpenMemory()
	if err != nil {
		t.Fatalf("open pair: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := translation.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	c.pairs[src+"_"+tgt] = db
	return translation.New(db)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seedLemma inserts a lemma with one part of speech and optional forms,
// returning the lemma and lemma_pos ids.
func seedLemma(t *testing.T, repo *dictionary.Repo, text string, pos domain.PartOfSpeech, forms ...string) (domain.LemmaID, domain.LemmaID) {
	t.Helper()
	ctx := context.Background()

	lemmaID := domain.LemmaID(uuid.New())
	if err := repo.InsertLemma(ctx, lemmaID, text, domain.NormalizeText(text), 0.1); err != nil {
		t.Fatalf("insert lemma %q: %v", text, err)
	}
	posID := domain.LemmaID(uuid.New())
	if err := repo.InsertLemmaPOS(ctx, posID, lemmaID, pos); err != nil {
		t.Fatalf("insert lemma_pos for %q: %v", text, err)
	}
	for _, form := range forms {
		if err := repo.UpsertForm(ctx, posID, form, domain.NormalizeText(form), nil); err != nil {
			t.Fatalf("insert form %q: %v", form, err)
		}
	}
	return lemmaID, posID
}

func TestSearchLemmaSuppressesOwnForms(t *testing.T) {
	catalog := newFakeCatalog()
	repo := catalog.addDictionary(t, "en")
	seedLemma(t, repo, "test", domain.PartOfSpeechNoun, "tests")

	r := NewRepository(testLogger(), catalog, catalog)
	items, err := r.Search(context.Background(), "test", nil, 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	// The prefix form stage finds "tests", but its base lemma "test" matched
	// directly, so only the lemma survives.
	if len(items) != 1 {
		t.Fatalf("expected one item, got %+v", items)
	}
	if items[0].Display != "test" || items[0].FormOf != "" {
		t.Errorf("unexpected item: %+v", items[0])
	}
	if len(items[0].PartsOfSpeech) != 1 || items[0].PartsOfSpeech[0] != domain.PartOfSpeechNoun {
		t.Errorf("parts of speech not attached: %+v", items[0])
	}
}

func TestSearchFormResolvesToLemma(t *testing.T) {
	catalog := newFakeCatalog()
	repo := catalog.addDictionary(t, "en")
	lemmaID, _ := seedLemma(t, repo, "go", domain.PartOfSpeechVerb, "went")

	r := NewRepository(testLogger(), catalog, catalog)
	items, err := r.Search(context.Background(), "went", nil, 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("expected one item, got %+v", items)
	}
	got := items[0]
	if got.Display != "went" || got.FormOf != "go" || got.LemmaID != lemmaID {
		t.Errorf("form item: %+v", got)
	}
}

func TestSearchNoDuplicateDisplays(t *testing.T) {
	catalog := newFakeCatalog()
	repo := catalog.addDictionary(t, "fr")
	seedLemma(t, repo, "café", domain.PartOfSpeechNoun)

	r := NewRepository(testLogger(), catalog, catalog)

	// "cafe" hits via the normalized stage and again via the normalized
	// prefix stage; the display must appear once.
	items, err := r.Search(context.Background(), "cafe", nil, 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(items) != 1 || items[0].Display != "café" {
		t.Fatalf("expected single café hit, got %+v", items)
	}
}

func TestSearchSpansInstalledLanguages(t *testing.T) {
	catalog := newFakeCatalog()
	seedLemma(t, catalog.addDictionary(t, "de"), "Name", domain.PartOfSpeechNoun)
	seedLemma(t, catalog.addDictionary(t, "en"), "name", domain.PartOfSpeechNoun)

	r := NewRepository(testLogger(), catalog, catalog)
	items, err := r.Search(context.Background(), "name", nil, 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected hits from both languages, got %+v", items)
	}
	if items[0].Language != "de" || items[1].Language != "en" {
		t.Errorf("language order: %+v", items)
	}

	// Restricting the language narrows the scan.
	lang := "en"
	items, err = r.Search(context.Background(), "name", &lang, 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(items) != 1 || items[0].Language != "en" {
		t.Fatalf("expected english-only hit, got %+v", items)
	}
}

func TestSearchTruncatesToMaxItems(t *testing.T) {
	catalog := newFakeCatalog()
	repo := catalog.addDictionary(t, "en")
	for _, word := range []string{"cat", "catalog", "catastrophe"} {
		seedLemma(t, repo, word, domain.PartOfSpeechNoun)
	}

	r := NewRepository(testLogger(), catalog, catalog)
	items, err := r.Search(context.Background(), "cat", nil, 2)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected truncation to 2 items, got %+v", items)
	}
	// The exact match ranks first regardless of insertion order.
	if items[0].Display != "cat" {
		t.Errorf("exact match not first: %+v", items)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.addDictionary(t, "en")

	r := NewRepository(testLogger(), catalog, catalog)
	items, err := r.Search(context.Background(), "   ", nil, 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no items, got %+v", items)
	}
}

func TestSearchSkipsUnavailableLanguage(t *testing.T) {
	catalog := newFakeCatalog()
	seedLemma(t, catalog.addDictionary(t, "en"), "name", domain.PartOfSpeechNoun)

	// A dictionary listed as installed but failing to open is skipped.
	broken := &brokenCatalog{fakeCatalog: catalog}

	r := NewRepository(testLogger(), broken, broken)
	items, err := r.Search(context.Background(), "name", nil, 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(items) != 1 || items[0].Language != "en" {
		t.Fatalf("expected surviving english hit, got %+v", items)
	}
}

// brokenCatalog reports an extra language whose dictionary cannot be opened.
type brokenCatalog struct {
	*fakeCatalog
}

func (c *brokenCatalog) Dictionaries() []string {
	return append([]string{"aa"}, c.fakeCatalog.Dictionaries()...)
}
