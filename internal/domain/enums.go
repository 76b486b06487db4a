package domain

import (
	"fmt"
	"strings"
)

// PartOfSpeech represents the grammatical category of a lemma.
type PartOfSpeech string

const (
	PartOfSpeechNoun         PartOfSpeech = "NOUN"
	PartOfSpeechVerb         PartOfSpeech = "VERB"
	PartOfSpeechAdjective    PartOfSpeech = "ADJECTIVE"
	PartOfSpeechAdverb       PartOfSpeech = "ADVERB"
	PartOfSpeechPronoun      PartOfSpeech = "PRONOUN"
	PartOfSpeechPreposition  PartOfSpeech = "PREPOSITION"
	PartOfSpeechConjunction  PartOfSpeech = "CONJUNCTION"
	PartOfSpeechInterjection PartOfSpeech = "INTERJECTION"
	PartOfSpeechNumeral      PartOfSpeech = "NUMERAL"
	PartOfSpeechDeterminer   PartOfSpeech = "DETERMINER"
	PartOfSpeechParticle     PartOfSpeech = "PARTICLE"
	PartOfSpeechPhrase       PartOfSpeech = "PHRASE"
	PartOfSpeechOther        PartOfSpeech = "OTHER"
)

func (p PartOfSpeech) String() string { return string(p) }

func (p PartOfSpeech) IsValid() bool {
	switch p {
	case PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective, PartOfSpeechAdverb,
		PartOfSpeechPronoun, PartOfSpeechPreposition, PartOfSpeechConjunction,
		PartOfSpeechInterjection, PartOfSpeechNumeral, PartOfSpeechDeterminer,
		PartOfSpeechParticle, PartOfSpeechPhrase, PartOfSpeechOther:
		return true
	}
	return false
}

// posLabels maps lowercase source labels (both short wiktextract-style and
// full names) to PartOfSpeech values.
var posLabels = map[string]PartOfSpeech{
	"noun":         PartOfSpeechNoun,
	"verb":         PartOfSpeechVerb,
	"adj":          PartOfSpeechAdjective,
	"adjective":    PartOfSpeechAdjective,
	"adv":          PartOfSpeechAdverb,
	"adverb":       PartOfSpeechAdverb,
	"pron":         PartOfSpeechPronoun,
	"pronoun":      PartOfSpeechPronoun,
	"prep":         PartOfSpeechPreposition,
	"preposition":  PartOfSpeechPreposition,
	"conj":         PartOfSpeechConjunction,
	"conjunction":  PartOfSpeechConjunction,
	"intj":         PartOfSpeechInterjection,
	"interjection": PartOfSpeechInterjection,
	"num":          PartOfSpeechNumeral,
	"numeral":      PartOfSpeechNumeral,
	"det":          PartOfSpeechDeterminer,
	"determiner":   PartOfSpeechDeterminer,
	"particle":     PartOfSpeechParticle,
	"phrase":       PartOfSpeechPhrase,
	"other":        PartOfSpeechOther,
}

// ParsePartOfSpeech converts a source POS label to the PartOfSpeech enum.
// The lookup is case-insensitive. Unknown labels are a hard failure — the
// caller must abort rather than guess a category.
func ParsePartOfSpeech(label string) (PartOfSpeech, error) {
	if pos, ok := posLabels[strings.ToLower(strings.TrimSpace(label))]; ok {
		return pos, nil
	}
	return "", fmt.Errorf("part of speech %q: %w", label, ErrUnknownEnum)
}

// Level represents the CEFR learner difficulty level of a sense.
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
	LevelC2 Level = "C2"
)

func (l Level) String() string { return string(l) }

func (l Level) IsValid() bool {
	switch l {
	case LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2:
		return true
	}
	return false
}

// ParseLevel converts a source label to a Level. Case-insensitive.
func ParseLevel(label string) (Level, error) {
	l := Level(strings.ToUpper(strings.TrimSpace(label)))
	if !l.IsValid() {
		return "", fmt.Errorf("level %q: %w", label, ErrUnknownEnum)
	}
	return l, nil
}

// FrequencyBand represents how common a sense is in the source corpus.
type FrequencyBand string

const (
	FrequencyVeryHigh FrequencyBand = "VERY_HIGH"
	FrequencyHigh     FrequencyBand = "HIGH"
	FrequencyMedium   FrequencyBand = "MEDIUM"
	FrequencyLow      FrequencyBand = "LOW"
	FrequencyVeryLow  FrequencyBand = "VERY_LOW"
)

func (f FrequencyBand) String() string { return string(f) }

func (f FrequencyBand) IsValid() bool {
	switch f {
	case FrequencyVeryHigh, FrequencyHigh, FrequencyMedium, FrequencyLow, FrequencyVeryLow:
		return true
	}
	return false
}

// ParseFrequencyBand converts a source label to a FrequencyBand.
func ParseFrequencyBand(label string) (FrequencyBand, error) {
	f := FrequencyBand(strings.ToUpper(strings.TrimSpace(label)))
	if !f.IsValid() {
		return "", fmt.Errorf("frequency band %q: %w", label, ErrUnknownEnum)
	}
	return f, nil
}

// NameType classifies proper-noun senses.
type NameType string

const (
	NameTypePerson       NameType = "PERSON"
	NameTypePlace        NameType = "PLACE"
	NameTypeOrganization NameType = "ORGANIZATION"
	NameTypeOther        NameType = "OTHER"
)

func (n NameType) String() string { return string(n) }

func (n NameType) IsValid() bool {
	switch n {
	case NameTypePerson, NameTypePlace, NameTypeOrganization, NameTypeOther:
		return true
	}
	return false
}

// ParseNameType converts a source label to a NameType.
func ParseNameType(label string) (NameType, error) {
	n := NameType(strings.ToUpper(strings.TrimSpace(label)))
	if !n.IsValid() {
		return "", fmt.Errorf("name type %q: %w", label, ErrUnknownEnum)
	}
	return n, nil
}

// TraitType annotates a sense with a register or usage restriction.
type TraitType string

const (
	TraitDated      TraitType = "DATED"
	TraitColloquial TraitType = "COLLOQUIAL"
	TraitArchaic    TraitType = "ARCHAIC"
	TraitFormal     TraitType = "FORMAL"
	TraitVulgar     TraitType = "VULGAR"
	TraitRegional   TraitType = "REGIONAL"
	TraitFigurative TraitType = "FIGURATIVE"
	TraitRare       TraitType = "RARE"
)

func (t TraitType) String() string { return string(t) }

func (t TraitType) IsValid() bool {
	switch t {
	case TraitDated, TraitColloquial, TraitArchaic, TraitFormal,
		TraitVulgar, TraitRegional, TraitFigurative, TraitRare:
		return true
	}
	return false
}

// ParseTraitType converts a source label to a TraitType.
func ParseTraitType(label string) (TraitType, error) {
	t := TraitType(strings.ToUpper(strings.TrimSpace(label)))
	if !t.IsValid() {
		return "", fmt.Errorf("trait type %q: %w", label, ErrUnknownEnum)
	}
	return t, nil
}
