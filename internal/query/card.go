package query

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lexibase/lexibase/internal/adapter/sqlite/dictionary"
	"github.com/lexibase/lexibase/internal/adapter/sqlite/translation"
	"github.com/lexibase/lexibase/internal/domain"
)

// LanguageCard reconstructs the full card for a headword in one language.
// Returns nil (and no error) when no lemma resolves by exact or normalized
// text, or when every resolved lemma_pos produces zero entries. A failure to
// open or read the dictionary itself also yields a nil card — the language
// is treated as unavailable for this call. Failures on individual
// translation pair databases skip just that target language.
func (r *Repository) LanguageCard(ctx context.Context, lang, lemma string) (*domain.LanguageCard, error) {
	card, err := r.buildCard(ctx, lang, lemma)
	if err != nil {
		r.log.Warn("dictionary unavailable for card",
			slog.String("language", lang),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}
	return card, nil
}

func (r *Repository) buildCard(ctx context.Context, lang, lemma string) (*domain.LanguageCard, error) {
	db, err := r.opener.Dictionary(lang)
	if err != nil {
		return nil, err
	}
	repo := dictionary.New(db)

	hits, err := r.resolveLemmas(ctx, repo, lemma)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, nil
	}

	targets := r.openTargets(lang)

	card := &domain.LanguageCard{
		Language: lang,
		Lemma:    hits[0].Text,
	}

	for _, hit := range hits {
		lemmaRows, err := repo.LemmaPOSByLemmaID(ctx, hit.ID)
		if err != nil {
			return nil, fmt.Errorf("resolve lemma_pos for %q: %w", lemma, err)
		}

		for _, lp := range lemmaRows {
			entry, frequency, err := r.buildEntry(ctx, repo, targets, lp)
			if err != nil {
				return nil, err
			}
			card.Entries = append(card.Entries, *entry)
			// Last-seen frequency, not an aggregate. Preserved observed
			// behavior; see DESIGN.md.
			card.Frequency = frequency
		}
	}

	if len(card.Entries) == 0 {
		return nil, nil
	}
	return card, nil
}

// resolveLemmas returns the lemmas matching the headword by exact text plus
// normalized text, deduplicated with insertion order preserved.
func (r *Repository) resolveLemmas(ctx context.Context, repo *dictionary.Repo, lemma string) ([]dictionary.LemmaHit, error) {
	exact, err := repo.LemmasExact(ctx, lemma)
	if err != nil {
		return nil, err
	}
	normalized, err := repo.LemmasNormalized(ctx, domain.NormalizeText(lemma))
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	var hits []dictionary.LemmaHit
	for _, hit := range append(exact, normalized...) {
		if seen[hit.ID] {
			continue
		}
		seen[hit.ID] = true
		hits = append(hits, hit)
	}
	return hits, nil
}

// pairHandle is one open translation pair database for the card being built.
type pairHandle struct {
	lang string
	repo *translation.Repo
}

// openTargets opens every installed translation pair for the source
// language. Pairs that fail to open are skipped with a warning.
func (r *Repository) openTargets(src string) []pairHandle {
	var targets []pairHandle
	for _, tgt := range r.installed.TranslationTargets(src) {
		db, err := r.opener.TranslationPair(src, tgt)
		if err != nil {
			r.log.Warn("translation pair unavailable",
				slog.String("source", src),
				slog.String("target", tgt),
				slog.String("error", err.Error()),
			)
			continue
		}
		targets = append(targets, pairHandle{lang: tgt, repo: translation.New(db)})
	}
	return targets
}

// buildEntry assembles one POSEntry with its forms, senses and per-target
// translation data. Returns the parent lemma's frequency alongside.
func (r *Repository) buildEntry(ctx context.Context, repo *dictionary.Repo, targets []pairHandle, lp dictionary.LemmaPOSRow) (*domain.POSEntry, float64, error) {
	pos := domain.PartOfSpeech(lp.POS)
	if !pos.IsValid() {
		return nil, 0, fmt.Errorf("lemma_pos %s: part of speech %q: %w", lp.ID, lp.POS, domain.ErrUnknownEnum)
	}

	lemmaID, err := uuid.Parse(lp.LemmaID)
	if err != nil {
		return nil, 0, fmt.Errorf("lemma_pos %s: %w", lp.ID, domain.ErrMalformedID)
	}
	lemmaRow, err := repo.LemmaByID(ctx, domain.LemmaID(lemmaID))
	if err != nil {
		return nil, 0, err
	}

	entryID, err := uuid.Parse(lp.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("lemma_pos %s: %w", lp.ID, domain.ErrMalformedID)
	}
	entry := &domain.POSEntry{
		ID:           domain.LemmaID(entryID),
		PartOfSpeech: pos,
	}

	forms, err := r.buildForms(ctx, repo, lp.ID)
	if err != nil {
		return nil, 0, err
	}
	entry.Forms = forms

	senseRows, err := repo.SensesByLemmaPOS(ctx, lp.ID)
	if err != nil {
		return nil, 0, err
	}
	for _, row := range senseRows {
		sense, err := r.buildSense(ctx, repo, targets, row)
		if err != nil {
			return nil, 0, err
		}
		entry.Senses = append(entry.Senses, *sense)
	}

	return entry, lemmaRow.Frequency, nil
}

func (r *Repository) buildForms(ctx context.Context, repo *dictionary.Repo, lemmaPOSID string) ([]domain.Form, error) {
	rows, err := repo.FormsByLemmaPOS(ctx, lemmaPOSID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	tagRows, err := repo.TagsByFormIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	tagsByForm := map[string][]string{}
	for _, tr := range tagRows {
		tagsByForm[tr.FormID] = append(tagsByForm[tr.FormID], tr.Tag)
	}

	forms := make([]domain.Form, 0, len(rows))
	for _, row := range rows {
		id, err := uuid.Parse(row.ID)
		if err != nil {
			return nil, fmt.Errorf("form %s: %w", row.ID, domain.ErrMalformedID)
		}
		forms = append(forms, domain.Form{
			ID:             domain.LemmaID(id),
			Text:           row.Text,
			TextNormalized: row.TextNormalized,
			Tags:           tagsByForm[row.ID],
		})
	}
	return forms, nil
}

func (r *Repository) buildSense(ctx context.Context, repo *dictionary.Repo, targets []pairHandle, row dictionary.SenseRow) (*domain.Sense, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, fmt.Errorf("sense %s: %w", row.ID, domain.ErrMalformedID)
	}

	level := domain.Level(row.Level)
	band := domain.FrequencyBand(row.FrequencyBand)
	if !level.IsValid() || !band.IsValid() {
		return nil, fmt.Errorf("sense %s: %w", row.ID, domain.ErrUnknownEnum)
	}

	sense := &domain.Sense{
		ID:            domain.SenseID(id),
		Definition:    row.Definition,
		Level:         level,
		FrequencyBand: band,
		SemanticGroup: row.SemanticGroup,
	}
	if row.NameType != nil {
		nt := domain.NameType(*row.NameType)
		if !nt.IsValid() {
			return nil, fmt.Errorf("sense %s: name type %q: %w", row.ID, *row.NameType, domain.ErrUnknownEnum)
		}
		sense.NameType = &nt
	}

	if sense.Synonyms, err = repo.IndexedTextsBySenseID(ctx, "sense_synonym", row.ID); err != nil {
		return nil, err
	}
	if sense.Antonyms, err = repo.IndexedTextsBySenseID(ctx, "sense_antonym", row.ID); err != nil {
		return nil, err
	}
	if sense.Phrases, err = repo.IndexedTextsBySenseID(ctx, "sense_phrase", row.ID); err != nil {
		return nil, err
	}

	traitRows, err := repo.TraitsBySenseID(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	for _, tr := range traitRows {
		tt := domain.TraitType(tr.Trait)
		if !tt.IsValid() {
			return nil, fmt.Errorf("sense %s: trait %q: %w", row.ID, tr.Trait, domain.ErrUnknownEnum)
		}
		sense.Traits = append(sense.Traits, domain.Trait{Type: tt, Comment: tr.Comment})
	}

	exampleRows, err := repo.ExamplesBySenseID(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	for _, ex := range exampleRows {
		sense.Examples = append(sense.Examples, domain.Example{
			Index: ex.ExampleID,
			Text:  ex.Text,
		})
	}

	r.mergeTranslations(ctx, targets, sense)
	return sense, nil
}

// mergeTranslations fills the per-target-language maps of a sense from each
// open pair database. A read failure on one pair skips that target language
// only.
func (r *Repository) mergeTranslations(ctx context.Context, targets []pairHandle, sense *domain.Sense) {
	senseID := sense.ID.String()
	for _, target := range targets {
		def, found, err := target.repo.Definition(ctx, senseID)
		if err != nil {
			r.warnTarget(target.lang, err)
			continue
		}
		if found {
			if sense.TargetDefinitions == nil {
				sense.TargetDefinitions = map[string]string{}
			}
			sense.TargetDefinitions[target.lang] = def
		}

		rows, err := target.repo.Translations(ctx, senseID)
		if err != nil {
			r.warnTarget(target.lang, err)
			continue
		}
		if len(rows) > 0 {
			translations := make([]domain.Translation, 0, len(rows))
			for _, row := range rows {
				translations = append(translations, domain.Translation{
					Word:          row.Word,
					Clarification: row.Clarification,
				})
			}
			if sense.Translations == nil {
				sense.Translations = map[string][]domain.Translation{}
			}
			sense.Translations[target.lang] = translations
		}

		exRows, err := target.repo.ExampleTranslations(ctx, senseID)
		if err != nil {
			r.warnTarget(target.lang, err)
			continue
		}
		for _, exRow := range exRows {
			for i := range sense.Examples {
				if sense.Examples[i].Index != exRow.ExampleID {
					continue
				}
				if sense.Examples[i].Translations == nil {
					sense.Examples[i].Translations = map[string]string{}
				}
				sense.Examples[i].Translations[target.lang] = exRow.Text
			}
		}
	}
}

func (r *Repository) warnTarget(lang string, err error) {
	r.log.Warn("translation read failed",
		slog.String("target", lang),
		slog.String("error", err.Error()),
	)
}
