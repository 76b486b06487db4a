package ingest

import (
	"errors"
	"testing"

	"github.com/lexibase/lexibase/internal/domain"
)

const (
	entryNounID = "11111111-1111-4111-8111-111111111111"
	entryVerbID = "22222222-2222-4222-8222-222222222222"
	senseNounID = "33333333-3333-4333-8333-333333333333"
	senseVerbID = "44444444-4444-4444-8444-444444444444"
)

func testRaw() *RawDocument {
	return &RawDocument{
		Word: "test",
		Sources: map[string][]RawEntry{
			"en_wiktionary": {
				{
					ID:     entryNounID,
					POS:    "noun",
					Senses: []RawSense{{ID: senseNounID}},
				},
				{
					ID:     entryVerbID,
					POS:    "noun", // raw mislabels; processed wins
					Senses: []RawSense{{ID: senseVerbID}},
				},
			},
		},
	}
}

func testCard() *ProcessedDocument {
	return &ProcessedDocument{
		Word: "test",
		POSEntries: []ProcessedPOS{
			{POS: "noun", Senses: []ProcessedSense{{ID: senseNounID}}},
			{POS: "verb", Senses: []ProcessedSense{{ID: senseVerbID}}},
		},
	}
}

func TestCorrelateTrustsProcessedPOS(t *testing.T) {
	corr, err := Correlate(testRaw(), testCard())
	if err != nil {
		t.Fatalf("correlate: %v", err)
	}

	// The verb entry is raw-labeled "noun" but its sense lives under the
	// processed verb group, so the processed grouping decides.
	if got := corr.POSByEntryID[entryVerbID]; got != domain.PartOfSpeechVerb {
		t.Errorf("entry %s: got %s, want VERB", entryVerbID, got)
	}
	if got := corr.POSByEntryID[entryNounID]; got != domain.PartOfSpeechNoun {
		t.Errorf("entry %s: got %s, want NOUN", entryNounID, got)
	}

	if got := corr.EntryIDByPOS[domain.PartOfSpeechNoun].String(); got != entryNounID {
		t.Errorf("noun lemma_pos id: got %s, want %s", got, entryNounID)
	}
	if got := corr.EntryIDByPOS[domain.PartOfSpeechVerb].String(); got != entryVerbID {
		t.Errorf("verb lemma_pos id: got %s, want %s", got, entryVerbID)
	}
}

func TestCorrelateCoercesTruncatedIDs(t *testing.T) {
	raw := testRaw()
	card := testCard()

	// The processed pipeline sometimes truncates identifiers; both sides
	// must land on the same padded value.
	truncated := "33333333-3333-4333-8333-3333"
	raw.Sources["en_wiktionary"][0].Senses[0].ID = truncated
	card.POSEntries[0].Senses[0].ID = truncated

	corr, err := Correlate(raw, card)
	if err != nil {
		t.Fatalf("correlate: %v", err)
	}
	if _, ok := corr.POSByEntryID[entryNounID]; !ok {
		t.Error("padded sense ids did not correlate")
	}
}

func TestCorrelateUnknownPOSFails(t *testing.T) {
	card := testCard()
	card.POSEntries[0].POS = "gerundive"

	_, err := Correlate(testRaw(), card)
	if !errors.Is(err, domain.ErrUnknownEnum) {
		t.Fatalf("expected ErrUnknownEnum, got %v", err)
	}
}

func TestCorrelateMalformedIDFails(t *testing.T) {
	card := testCard()
	card.POSEntries[0].Senses[0].ID = "not-a-uuid-at-all!"

	_, err := Correlate(testRaw(), card)
	if !errors.Is(err, domain.ErrMalformedID) {
		t.Fatalf("expected ErrMalformedID, got %v", err)
	}
}

func TestCorrelateUnreferencedEntrySkipped(t *testing.T) {
	raw := testRaw()
	raw.Sources["en_wiktionary"] = append(raw.Sources["en_wiktionary"], RawEntry{
		ID:     "55555555-5555-4555-8555-555555555555",
		POS:    "adj",
		Senses: []RawSense{{ID: "66666666-6666-4666-8666-666666666666"}},
	})

	corr, err := Correlate(raw, testCard())
	if err != nil {
		t.Fatalf("correlate: %v", err)
	}
	if _, ok := corr.POSByEntryID["55555555-5555-4555-8555-555555555555"]; ok {
		t.Error("entry with no processed sense should not be correlated")
	}
}
