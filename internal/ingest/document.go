// Package ingest builds dictionary and translation databases from a pair of
// JSON documents per headword: the raw lexical extraction and the processed
// language card. The two are produced independently and correlated here by
// sense identity.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// RawDocument is one raw-extraction file. Entries are grouped by the
// upstream source file they were extracted from; different extractors
// disagree on form completeness, so the source name matters.
type RawDocument struct {
	Word    string                `json:"word"`
	Sources map[string][]RawEntry `json:"sources"`
}

// RawEntry is one word entry from one upstream source.
type RawEntry struct {
	ID         string     `json:"id"`
	POS        string     `json:"pos"`
	Forms      []RawForm  `json:"forms,omitempty"`
	Senses     []RawSense `json:"senses,omitempty"`
	WordFamily []string   `json:"word_family,omitempty"`
}

// RawForm is an inflected or variant form reported by the extractor.
type RawForm struct {
	Form string   `json:"form"`
	Tags []string `json:"tags,omitempty"`
}

// RawSense is a sense stub from the raw extraction. Only the identifier is
// used for correlation; sense semantics come from the processed document.
type RawSense struct {
	ID      string   `json:"id"`
	Glosses []string `json:"glosses,omitempty"`
}

// ProcessedDocument is the curated language-card file: the source of truth
// for sense semantics, grouped by part of speech.
type ProcessedDocument struct {
	Word       string         `json:"word"`
	POSEntries []ProcessedPOS `json:"pos_entries"`
}

// ProcessedPOS groups the senses of one part of speech.
type ProcessedPOS struct {
	POS    string           `json:"pos"`
	Senses []ProcessedSense `json:"senses"`
}

// ProcessedSense carries the annotated sense data written to the dictionary
// database, plus per-target-language material fanned out to translation
// databases.
type ProcessedSense struct {
	ID            string             `json:"id"`
	Definition    string             `json:"definition"`
	Level         string             `json:"level"`
	Frequency     string             `json:"frequency"`
	SemanticGroup string             `json:"semantic_group,omitempty"`
	NameType      string             `json:"name_type,omitempty"`
	Synonyms      []string           `json:"synonyms,omitempty"`
	Antonyms      []string           `json:"antonyms,omitempty"`
	Phrases       []string           `json:"common_phrases,omitempty"`
	Traits        []ProcessedTrait   `json:"traits,omitempty"`
	Examples      []ProcessedExample `json:"examples,omitempty"`

	// Definitions maps target language code to the sense definition in that
	// language.
	Definitions map[string]string `json:"definitions,omitempty"`
	// Translations maps target language code to the ordered translation list.
	Translations map[string][]ProcessedTranslation `json:"translations,omitempty"`
}

// ProcessedTrait is a usage annotation with optional free-text comment.
type ProcessedTrait struct {
	Type    string `json:"type"`
	Comment string `json:"comment,omitempty"`
}

// ProcessedExample is an example sentence with optional translations keyed
// by target language code.
type ProcessedExample struct {
	Text         string            `json:"text"`
	Translations map[string]string `json:"translations,omitempty"`
}

// ProcessedTranslation is one target-language word with an optional
// disambiguating clarification.
type ProcessedTranslation struct {
	Word          string  `json:"word"`
	Clarification *string `json:"clarification,omitempty"`
}

// ReadRawDocument loads and decodes a raw-extraction file.
func ReadRawDocument(path string) (*RawDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read raw document: %w", err)
	}
	var doc RawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode raw document %s: %w", path, err)
	}
	return &doc, nil
}

// ReadProcessedDocument loads and decodes a processed language-card file.
func ReadProcessedDocument(path string) (*ProcessedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read processed document: %w", err)
	}
	var doc ProcessedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode processed document %s: %w", path, err)
	}
	return &doc, nil
}

// TargetLanguages collects every target language code referenced anywhere in
// the document: sense definitions, translation lists, or example
// translations. The result is sorted for deterministic fan-out order.
func (d *ProcessedDocument) TargetLanguages() []string {
	seen := map[string]bool{}
	for _, pe := range d.POSEntries {
		for _, s := range pe.Senses {
			for lang := range s.Definitions {
				seen[lang] = true
			}
			for lang := range s.Translations {
				seen[lang] = true
			}
			for _, ex := range s.Examples {
				for lang := range ex.Translations {
					seen[lang] = true
				}
			}
		}
	}

	langs := make([]string, 0, len(seen))
	for lang := range seen {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
