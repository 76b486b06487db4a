package ingest

import (
	"fmt"

	"github.com/lexibase/lexibase/internal/domain"
)

// Correlation is the explicit mapping between the two input documents,
// produced before any row is written. The heuristic is: trust the processed
// document's POS grouping over the raw document's own POS labels, because
// the two pipelines can disagree or be misaligned.
type Correlation struct {
	// POSFor maps each processed POS label (in document order) to its parsed
	// enum value.
	POSFor map[string]domain.PartOfSpeech

	// EntryIDByPOS maps a processed POS to a raw entry identifier already
	// associated with it, reused as the lemma_pos id for traceability.
	// A POS absent from this map gets a freshly generated identifier.
	EntryIDByPOS map[domain.PartOfSpeech]domain.LemmaID

	// POSByEntryID records, for each raw entry, the POS the processed
	// document assigned to one of its senses. Raw entries absent from this
	// map were never referenced by the processed document; their forms are
	// skipped.
	POSByEntryID map[string]domain.PartOfSpeech
}

// Correlate reconciles the raw extraction with the processed card by sense
// identity. It is a pure function: no writes, no side effects. Malformed
// identifiers and unknown POS labels fail the whole call.
func Correlate(raw *RawDocument, card *ProcessedDocument) (*Correlation, error) {
	// Index every raw sense id to its owning entry. The raw entry's own POS
	// label is deliberately ignored here.
	// Sources are walked in sorted order so a sense shared by several
	// sources always resolves to the same entry.
	entryBySense := map[domain.SenseID]*RawEntry{}
	for _, source := range sortedKeys(raw.Sources) {
		entries := raw.Sources[source]
		for i := range entries {
			entry := &entries[i]
			for _, sense := range entry.Senses {
				id, err := domain.CoerceSenseID(sense.ID)
				if err != nil {
					return nil, fmt.Errorf("raw sense in %s: %w", source, err)
				}
				entryBySense[id] = entry
			}
		}
	}

	corr := &Correlation{
		POSFor:       map[string]domain.PartOfSpeech{},
		EntryIDByPOS: map[domain.PartOfSpeech]domain.LemmaID{},
		POSByEntryID: map[string]domain.PartOfSpeech{},
	}

	for _, pe := range card.POSEntries {
		pos, err := domain.ParsePartOfSpeech(pe.POS)
		if err != nil {
			return nil, err
		}
		corr.POSFor[pe.POS] = pos

		for _, sense := range pe.Senses {
			senseID, err := domain.CoerceSenseID(sense.ID)
			if err != nil {
				return nil, fmt.Errorf("processed sense: %w", err)
			}

			entry, ok := entryBySense[senseID]
			if !ok {
				continue
			}

			corr.POSByEntryID[entry.ID] = pos

			if _, taken := corr.EntryIDByPOS[pos]; !taken {
				entryID, err := domain.CoerceID(entry.ID)
				if err != nil {
					return nil, fmt.Errorf("raw entry: %w", err)
				}
				corr.EntryIDByPOS[pos] = domain.LemmaID(entryID)
			}
		}
	}

	return corr, nil
}
