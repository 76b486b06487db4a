package ingest

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexibase/lexibase/internal/adapter/sqlite"
	"github.com/lexibase/lexibase/internal/adapter/sqlite/dictionary"
	"github.com/lexibase/lexibase/internal/adapter/sqlite/translation"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testPairs hands out in-memory translation databases keyed by target
// language, standing in for the batch driver's file-backed cache.
type testPairs struct {
	t     *testing.T
	repos map[string]*translation.Repo
}

func newTestPairs(t *testing.T) *testPairs {
	return &testPairs{t: t, repos: map[string]*translation.Repo{}}
}

func (p *testPairs) Open(ctx context.Context, target string) (*translation.Repo, error) {
	if repo, ok := p.repos[target]; ok {
		return repo, nil
	}
	db, err := sqlite.OpenMemory()
	if err != nil {
		return nil, err
	}
	p.t.Cleanup(func() { db.Close() })
	if err := translation.EnsureSchema(ctx, db); err != nil {
		return nil, err
	}
	repo := translation.New(db)
	p.repos[target] = repo
	return repo, nil
}

func newTestDictRepo(t *testing.T) *dictionary.Repo {
	t.Helper()
	db, err := sqlite.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, dictionary.EnsureSchema(context.Background(), db))
	return dictionary.New(db)
}

func fullTestInput() WordInput {
	clar := "orthographic accent"
	return WordInput{
		Raw: &RawDocument{
			Word: "test",
			Sources: map[string][]RawEntry{
				"en_wiktionary": {
					{
						ID:  entryNounID,
						POS: "noun",
						Forms: []RawForm{
							{Form: "tests", Tags: []string{"plural"}},
						},
						Senses:     []RawSense{{ID: senseNounID}},
						WordFamily: []string{"tester", "testing"},
					},
					{
						ID:  entryVerbID,
						POS: "verb",
						Forms: []RawForm{
							{Form: "tested", Tags: []string{"past"}},
							{Form: "tests", Tags: []string{"third-person"}},
						},
						Senses: []RawSense{{ID: senseVerbID}},
					},
				},
				"de_wiktionary": {
					{
						ID:         "77777777-7777-4777-8777-777777777777",
						POS:        "noun",
						Senses:     []RawSense{{ID: senseNounID}},
						WordFamily: []string{"tester"},
					},
				},
			},
		},
		Card: &ProcessedDocument{
			Word: "test",
			POSEntries: []ProcessedPOS{
				{
					POS: "noun",
					Senses: []ProcessedSense{
						{
							ID:            senseNounID,
							Definition:    "a procedure for critical evaluation",
							Level:         "A2",
							Frequency:     "VERY_HIGH",
							SemanticGroup: "evaluation",
							Synonyms:      []string{"trial", "examination"},
							Traits: []ProcessedTrait{
								{Type: "formal", Comment: "in technical writing"},
							},
							Examples: []ProcessedExample{
								{
									Text:         "The test took an hour.",
									Translations: map[string]string{"ru": "Тест занял час."},
								},
							},
							Definitions: map[string]string{"ru": "процедура проверки"},
							Translations: map[string][]ProcessedTranslation{
								"ru": {
									{Word: "тест", Clarification: &clar},
									{Word: "проверка"},
								},
							},
						},
					},
				},
				{
					POS: "verb",
					Senses: []ProcessedSense{
						{
							ID:         senseVerbID,
							Definition: "to challenge or try out",
							Level:      "B1",
							Frequency:  "HIGH",
							Translations: map[string][]ProcessedTranslation{
								"de": {{Word: "testen"}},
							},
						},
					},
				},
			},
		},
		Frequency: 0.01,
	}
}

func TestBuildWord_EndToEnd(t *testing.T) {
	ctx := context.Background()
	dict := newTestDictRepo(t)
	pairs := newTestPairs(t)

	builder := NewBuilder(discardLogger(), dict, pairs.Open, "en")
	require.NoError(t, builder.BuildWord(ctx, fullTestInput()))

	// The headword is findable and carries both parts of speech.
	hits, err := dict.LemmasExact(ctx, "test")
	require.NoError(t, err)
	require.Len(t, hits, 1)

	posRows, err := dict.LemmaPOSByLemmaID(ctx, hits[0].ID)
	require.NoError(t, err)
	require.Len(t, posRows, 2)
	assert.Equal(t, "NOUN", posRows[0].POS)
	assert.Equal(t, "VERB", posRows[1].POS)

	// The raw noun entry's id survives as the lemma_pos id.
	assert.Equal(t, entryNounID, posRows[0].ID)

	// Noun forms attach under the noun lemma_pos only.
	forms, err := dict.FormsByLemmaPOS(ctx, posRows[0].ID)
	require.NoError(t, err)
	require.Len(t, forms, 1)
	assert.Equal(t, "tests", forms[0].Text)

	verbForms, err := dict.FormsByLemmaPOS(ctx, posRows[1].ID)
	require.NoError(t, err)
	assert.Len(t, verbForms, 2)

	// Senses land under their lemma_pos in card order.
	senses, err := dict.SensesByLemmaPOS(ctx, posRows[0].ID)
	require.NoError(t, err)
	require.Len(t, senses, 1)
	assert.Equal(t, "a procedure for critical evaluation", senses[0].Definition)
	assert.Equal(t, "A2", senses[0].Level)
	assert.Equal(t, "VERY_HIGH", senses[0].FrequencyBand)

	synonyms, err := dict.IndexedTextsBySenseID(ctx, "sense_synonym", senses[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"trial", "examination"}, synonyms)

	// Translation fan-out: the Russian pair database holds the definition,
	// the ordered list, and the example translation.
	ruRepo := pairs.repos["ru"]
	require.NotNil(t, ruRepo, "russian pair database never opened")

	def, found, err := ruRepo.Definition(ctx, senses[0].ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "процедура проверки", def)

	trs, err := ruRepo.Translations(ctx, senses[0].ID)
	require.NoError(t, err)
	require.Len(t, trs, 2)
	assert.Equal(t, "тест", trs[0].Word)
	assert.Equal(t, "проверка", trs[1].Word)

	exTrs, err := ruRepo.ExampleTranslations(ctx, senses[0].ID)
	require.NoError(t, err)
	require.Len(t, exTrs, 1)
	assert.Equal(t, "Тест занял час.", exTrs[0].Text)

	// German pair database only has the verb sense's list.
	deRepo := pairs.repos["de"]
	require.NotNil(t, deRepo, "german pair database never opened")

	verbSenses, err := dict.SensesByLemmaPOS(ctx, posRows[1].ID)
	require.NoError(t, err)
	require.Len(t, verbSenses, 1)

	deTrs, err := deRepo.Translations(ctx, verbSenses[0].ID)
	require.NoError(t, err)
	require.Len(t, deTrs, 1)
	assert.Equal(t, "testen", deTrs[0].Word)
}

func TestBuildWord_DeduplicatesWordFamily(t *testing.T) {
	dict := newTestDictRepo(t)
	builder := NewBuilder(discardLogger(), dict, newTestPairs(t).Open, "en")

	// "tester" appears in two sources; ingestion must tolerate the repeat.
	require.NoError(t, builder.BuildWord(context.Background(), fullTestInput()))
}

func TestFormEntries_PrefersNativeSources(t *testing.T) {
	raw := &RawDocument{
		Sources: map[string][]RawEntry{
			"en_wiktionary": {{ID: "a", Forms: []RawForm{{Form: "x"}}}},
			"de_wiktionary": {{ID: "b", Forms: []RawForm{{Form: "y"}}}},
		},
	}

	entries := formEntries(raw, []string{"en_wiktionary"})
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].ID)

	// When the native sources carry no forms, every source contributes.
	raw.Sources["en_wiktionary"][0].Forms = nil
	entries = formEntries(raw, []string{"en_wiktionary"})
	assert.Len(t, entries, 2)
}

func TestBuildWord_UnknownLevelFails(t *testing.T) {
	ctx := context.Background()
	dict := newTestDictRepo(t)
	builder := NewBuilder(discardLogger(), dict, newTestPairs(t).Open, "en")

	in := fullTestInput()
	in.Card.POSEntries[0].Senses[0].Level = "Z9"

	require.Error(t, builder.BuildWord(ctx, in))

	// The dictionary transaction rolled back: nothing is visible.
	hits, err := dict.LemmasExact(ctx, "test")
	require.NoError(t, err)
	assert.Empty(t, hits)
}
