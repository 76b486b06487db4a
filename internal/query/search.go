package query

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/lexibase/lexibase/internal/adapter/sqlite/dictionary"
	"github.com/lexibase/lexibase/internal/domain"
)

// Search runs the staged lookup for a query string. When lang is non-nil
// only that dictionary is searched, otherwise every installed one. The
// result is truncated to maxItems total, in collection order: language
// order, then stage discovery order within each language. A dictionary that
// fails to open or read is skipped, not fatal.
func (r *Repository) Search(ctx context.Context, query string, lang *string, maxItems int) ([]domain.SearchItem, error) {
	query = strings.TrimSpace(query)
	if query == "" || maxItems <= 0 {
		return []domain.SearchItem{}, nil
	}

	languages := r.installed.Dictionaries()
	if lang != nil {
		languages = []string{*lang}
	}

	items := []domain.SearchItem{}
	for _, language := range languages {
		found, err := r.searchLanguage(ctx, language, query)
		if err != nil {
			r.log.Warn("dictionary unavailable for search",
				slog.String("language", language),
				slog.String("error", err.Error()),
			)
			continue
		}
		items = append(items, found...)
	}

	if len(items) > maxItems {
		items = items[:maxItems]
	}
	return items, nil
}

// collector accumulates one language's candidates with the two search
// invariants: no duplicate display string per language, and a base lemma
// match suppresses "form of" results for the same lemma.
type collector struct {
	language     string
	items        []domain.SearchItem
	seen         map[string]bool
	directLemmas map[string]bool
}

func newCollector(language string) *collector {
	return &collector{
		language:     language,
		seen:         map[string]bool{},
		directLemmas: map[string]bool{},
	}
}

func (c *collector) addLemma(hit dictionary.LemmaHit) {
	c.directLemmas[strings.ToLower(hit.Text)] = true
	if c.seen[hit.Text] {
		return
	}
	c.seen[hit.Text] = true

	id, err := uuid.Parse(hit.ID)
	if err != nil {
		return
	}
	c.items = append(c.items, domain.SearchItem{
		Language: c.language,
		Display:  hit.Text,
		LemmaID:  domain.LemmaID(id),
	})
}

func (c *collector) addForm(hit dictionary.FormHit) {
	// A base lemma match always takes precedence over its inflected forms.
	if c.directLemmas[strings.ToLower(hit.LemmaText)] {
		return
	}
	if c.seen[hit.FormText] {
		return
	}
	c.seen[hit.FormText] = true

	id, err := uuid.Parse(hit.LemmaID)
	if err != nil {
		return
	}
	c.items = append(c.items, domain.SearchItem{
		Language: c.language,
		Display:  hit.FormText,
		FormOf:   hit.LemmaText,
		LemmaID:  domain.LemmaID(id),
	})
}

// searchLanguage runs the eight stages against one dictionary in precedence
// order: exact lemma, exact normalized lemma, exact form, exact normalized
// form, then the four prefix variants. No global relevance re-ranking is
// applied beyond this staged precedence.
func (r *Repository) searchLanguage(ctx context.Context, language, query string) ([]domain.SearchItem, error) {
	db, err := r.opener.Dictionary(language)
	if err != nil {
		return nil, err
	}
	repo := dictionary.New(db)

	normalized := domain.NormalizeText(query)
	c := newCollector(language)

	lemmaStages := []func(context.Context, string) ([]dictionary.LemmaHit, error){
		repo.LemmasExact,
		repo.LemmasNormalized,
	}
	formStages := []func(context.Context, string) ([]dictionary.FormHit, error){
		repo.FormsExact,
		repo.FormsNormalized,
	}
	prefixLemmaStages := []func(context.Context, string) ([]dictionary.LemmaHit, error){
		repo.LemmasPrefix,
		repo.LemmasPrefixNormalized,
	}
	prefixFormStages := []func(context.Context, string) ([]dictionary.FormHit, error){
		repo.FormsPrefix,
		repo.FormsPrefixNormalized,
	}

	stageArg := func(i int) string {
		if i%2 == 0 {
			return query
		}
		return normalized
	}

	for i, stage := range lemmaStages {
		hits, err := stage(ctx, stageArg(i))
		if err != nil {
			return nil, err
		}
		for _, hit := range hits {
			c.addLemma(hit)
		}
	}
	for i, stage := range formStages {
		hits, err := stage(ctx, stageArg(i))
		if err != nil {
			return nil, err
		}
		for _, hit := range hits {
			c.addForm(hit)
		}
	}
	for i, stage := range prefixLemmaStages {
		hits, err := stage(ctx, stageArg(i))
		if err != nil {
			return nil, err
		}
		for _, hit := range hits {
			c.addLemma(hit)
		}
	}
	for i, stage := range prefixFormStages {
		hits, err := stage(ctx, stageArg(i))
		if err != nil {
			return nil, err
		}
		for _, hit := range hits {
			c.addForm(hit)
		}
	}

	if err := r.attachPartsOfSpeech(ctx, repo, c.items); err != nil {
		return nil, err
	}
	return c.items, nil
}

// attachPartsOfSpeech resolves the POS lists for all collected items in one
// batched query. Items sharing a lemma id all receive the full list.
func (r *Repository) attachPartsOfSpeech(ctx context.Context, repo *dictionary.Repo, items []domain.SearchItem) error {
	if len(items) == 0 {
		return nil
	}

	unique := map[string]bool{}
	ids := make([]string, 0, len(items))
	for _, item := range items {
		id := item.LemmaID.String()
		if !unique[id] {
			unique[id] = true
			ids = append(ids, id)
		}
	}

	pairs, err := repo.PartsOfSpeechByLemmaIDs(ctx, ids)
	if err != nil {
		return err
	}

	byLemma := map[string][]domain.PartOfSpeech{}
	for _, pair := range pairs {
		byLemma[pair.LemmaID] = append(byLemma[pair.LemmaID], domain.PartOfSpeech(pair.POS))
	}

	for i := range items {
		items[i].PartsOfSpeech = byLemma[items[i].LemmaID.String()]
	}
	return nil
}
