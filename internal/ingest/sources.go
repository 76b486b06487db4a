package ingest

import "sort"

// nativeSources lists, per language, the upstream extraction files whose form
// data is preferred. The first listed source is the language's own wiktionary
// edition; entries from other editions tend to have sparser form tables.
var nativeSources = map[string][]string{
	"en": {"en_wiktionary"},
	"de": {"de_wiktionary", "en_wiktionary"},
	"fr": {"fr_wiktionary", "en_wiktionary"},
	"es": {"es_wiktionary", "en_wiktionary"},
	"pl": {"pl_wiktionary", "en_wiktionary"},
	"ru": {"ru_wiktionary", "en_wiktionary"},
	"da": {"da_wiktionary", "en_wiktionary"},
	"nl": {"nl_wiktionary", "en_wiktionary"},
}

// NativeSources returns the preferred upstream source names for a language.
// Unknown languages fall back to the English edition.
func NativeSources(lang string) []string {
	if srcs, ok := nativeSources[lang]; ok {
		return srcs
	}
	return []string{"en_wiktionary"}
}

// formEntries selects the raw entries used for form ingestion: the native
// sources' entries if at least one of them lists a form, otherwise every
// entry across all sources. The curated source is preferred, but empty form
// tables must not lose data the other extractors have.
func formEntries(raw *RawDocument, native []string) []RawEntry {
	var preferred []RawEntry
	hasForms := false
	for _, src := range native {
		for _, entry := range raw.Sources[src] {
			preferred = append(preferred, entry)
			if len(entry.Forms) > 0 {
				hasForms = true
			}
		}
	}
	if hasForms {
		return preferred
	}

	var all []RawEntry
	for _, src := range sortedKeys(raw.Sources) {
		all = append(all, raw.Sources[src]...)
	}
	return all
}

func sortedKeys(m map[string][]RawEntry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
