package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lexibase/lexibase/internal/adapter/sqlite/dictionary"
	"github.com/lexibase/lexibase/internal/adapter/sqlite/translation"
	"github.com/lexibase/lexibase/internal/domain"
)

// PairOpener returns the translation repository for one target language,
// opening (and creating) the pair database on first use. The driver caches
// handles; tests hand out in-memory databases.
type PairOpener func(ctx context.Context, target string) (*translation.Repo, error)

// Builder writes one headword's rows into the dictionary database and fans
// translations out into per-target-language pair databases.
type Builder struct {
	log   *slog.Logger
	dict  *dictionary.Repo
	pairs PairOpener
	// native lists the preferred upstream sources for form ingestion.
	native []string
}

// NewBuilder creates a Builder for one source language's dictionary database.
func NewBuilder(log *slog.Logger, dict *dictionary.Repo, pairs PairOpener, lang string) *Builder {
	return &Builder{
		log:    log,
		dict:   dict,
		pairs:  pairs,
		native: NativeSources(lang),
	}
}

// WordInput is one headword's worth of ingestion input.
type WordInput struct {
	Raw       *RawDocument
	Card      *ProcessedDocument
	Frequency float64
}

// BuildWord ingests one headword. Dictionary rows are written atomically in
// one transaction; each target language's translation rows commit in that
// pair database's own transaction. A dictionary commit followed by a
// translation failure leaves the lemma without translations — accepted
// at-most-once-per-run behavior, not cross-database atomicity.
func (b *Builder) BuildWord(ctx context.Context, in WordInput) error {
	corr, err := Correlate(in.Raw, in.Card)
	if err != nil {
		return fmt.Errorf("correlate %q: %w", in.Card.Word, err)
	}

	if err := b.dict.Tx().RunInTx(ctx, func(txCtx context.Context) error {
		return b.writeDictionary(txCtx, in, corr)
	}); err != nil {
		return fmt.Errorf("dictionary rows for %q: %w", in.Card.Word, err)
	}

	targets := in.Card.TargetLanguages()
	for _, target := range targets {
		repo, err := b.pairs(ctx, target)
		if err != nil {
			return fmt.Errorf("open pair database for target %s: %w", target, err)
		}
		if err := repo.Tx().RunInTx(ctx, func(txCtx context.Context) error {
			return writeTranslations(txCtx, repo, in.Card, target)
		}); err != nil {
			return fmt.Errorf("translation rows for %q target %s: %w", in.Card.Word, target, err)
		}
	}

	b.log.Debug("word ingested",
		slog.String("word", in.Card.Word),
		slog.Int("targets", len(targets)),
	)
	return nil
}

// writeDictionary writes the lemma, lemma_pos, form, sense and word-family
// rows for one headword. Runs inside the dictionary transaction.
func (b *Builder) writeDictionary(ctx context.Context, in WordInput, corr *Correlation) error {
	lemmaID := domain.LemmaID(uuid.New())
	if err := b.dict.InsertLemma(ctx, lemmaID,
		in.Card.Word, domain.NormalizeText(in.Card.Word), in.Frequency); err != nil {
		return err
	}

	for _, src := range sortedKeys(in.Raw.Sources) {
		for _, entry := range in.Raw.Sources[src] {
			for _, member := range entry.WordFamily {
				if err := b.dict.InsertWordFamilyMember(ctx, lemmaID, member); err != nil {
					return err
				}
			}
		}
	}

	// One lemma_pos per distinct processed POS. The first occurrence creates
	// the row; repeats of the same POS reuse it.
	lemmaPOSByPOS := map[domain.PartOfSpeech]domain.LemmaID{}
	for _, pe := range in.Card.POSEntries {
		pos := corr.POSFor[pe.POS]
		if _, ok := lemmaPOSByPOS[pos]; ok {
			continue
		}

		lpID, ok := corr.EntryIDByPOS[pos]
		if !ok {
			lpID = domain.LemmaID(uuid.New())
		}
		if err := b.dict.InsertLemmaPOS(ctx, lpID, lemmaID, pos); err != nil {
			return err
		}
		lemmaPOSByPOS[pos] = lpID
	}

	// Forms come from the native sources when those carry any, otherwise
	// from every entry. Entries whose POS the processed document never
	// referenced contribute nothing.
	for _, entry := range formEntries(in.Raw, b.native) {
		pos, ok := corr.POSByEntryID[entry.ID]
		if !ok {
			continue
		}
		lpID := lemmaPOSByPOS[pos]
		for _, form := range entry.Forms {
			if err := b.dict.UpsertForm(ctx, lpID,
				form.Form, domain.NormalizeText(form.Form), form.Tags); err != nil {
				return err
			}
		}
	}

	// Senses and their sub-records, positioned within each lemma_pos.
	positions := map[domain.PartOfSpeech]int{}
	for _, pe := range in.Card.POSEntries {
		pos := corr.POSFor[pe.POS]
		lpID := lemmaPOSByPOS[pos]

		for _, sense := range pe.Senses {
			if err := b.writeSense(ctx, lpID, sense, positions[pos]); err != nil {
				return err
			}
			positions[pos]++
		}
	}

	return nil
}

func (b *Builder) writeSense(ctx context.Context, lemmaPOSID domain.LemmaID, sense ProcessedSense, position int) error {
	senseID, err := domain.CoerceSenseID(sense.ID)
	if err != nil {
		return err
	}

	level, err := domain.ParseLevel(sense.Level)
	if err != nil {
		return fmt.Errorf("sense %s: %w", senseID, err)
	}
	band, err := domain.ParseFrequencyBand(sense.Frequency)
	if err != nil {
		return fmt.Errorf("sense %s: %w", senseID, err)
	}

	var nameType *string
	if sense.NameType != "" {
		nt, err := domain.ParseNameType(sense.NameType)
		if err != nil {
			return fmt.Errorf("sense %s: %w", senseID, err)
		}
		s := nt.String()
		nameType = &s
	}

	if err := b.dict.InsertSense(ctx, dictionary.SenseRow{
		ID:            senseID.String(),
		LemmaPOSID:    lemmaPOSID.String(),
		Definition:    sense.Definition,
		Level:         level.String(),
		FrequencyBand: band.String(),
		SemanticGroup: sense.SemanticGroup,
		NameType:      nameType,
		Position:      position,
	}); err != nil {
		return err
	}

	traits := make([]domain.Trait, 0, len(sense.Traits))
	for _, t := range sense.Traits {
		tt, err := domain.ParseTraitType(t.Type)
		if err != nil {
			return fmt.Errorf("sense %s: %w", senseID, err)
		}
		traits = append(traits, domain.Trait{Type: tt, Comment: t.Comment})
	}
	if err := b.dict.InsertTraits(ctx, senseID, traits); err != nil {
		return err
	}

	if err := b.dict.InsertIndexedTexts(ctx, "sense_synonym", senseID, sense.Synonyms); err != nil {
		return err
	}
	if err := b.dict.InsertIndexedTexts(ctx, "sense_antonym", senseID, sense.Antonyms); err != nil {
		return err
	}
	if err := b.dict.InsertIndexedTexts(ctx, "sense_phrase", senseID, sense.Phrases); err != nil {
		return err
	}

	for i, ex := range sense.Examples {
		if err := b.dict.InsertExample(ctx, senseID, i, ex.Text); err != nil {
			return err
		}
	}

	return nil
}

// writeTranslations writes one target language's rows for every sense of the
// card. Runs inside the pair database's transaction.
func writeTranslations(ctx context.Context, repo *translation.Repo, card *ProcessedDocument, target string) error {
	for _, pe := range card.POSEntries {
		for _, sense := range pe.Senses {
			senseID, err := domain.CoerceSenseID(sense.ID)
			if err != nil {
				return err
			}

			if def, ok := sense.Definitions[target]; ok {
				if err := repo.InsertDefinition(ctx, senseID, def); err != nil {
					return err
				}
			}

			if list, ok := sense.Translations[target]; ok {
				translations := make([]domain.Translation, 0, len(list))
				for _, tr := range list {
					translations = append(translations, domain.Translation{
						Word:          tr.Word,
						Clarification: tr.Clarification,
					})
				}
				if err := repo.InsertTranslations(ctx, senseID, translations); err != nil {
					return err
				}
			}

			for i, ex := range sense.Examples {
				text, ok := ex.Translations[target]
				if !ok {
					continue
				}
				if err := repo.InsertExampleTranslation(ctx, senseID, i, text); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
