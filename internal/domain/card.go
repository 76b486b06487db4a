package domain

// SearchItem is one row of a staged search result. Items are unique per
// (Language, Display) pair within a result list.
type SearchItem struct {
	Language string
	// Display is the string shown to the user: the lemma text for direct
	// matches, the form text for "form of" matches.
	Display string
	// FormOf carries the base lemma text when the match was an inflected
	// form, empty for direct lemma matches.
	FormOf string
	// LemmaID is the matched (or parent) lemma.
	LemmaID LemmaID
	// PartsOfSpeech lists every POS registered for the lemma, attached in a
	// batched pass after candidate collection.
	PartsOfSpeech []PartOfSpeech
}

// Form is an inflected or variant surface form of a lemma.
type Form struct {
	ID             LemmaID
	Text           string
	TextNormalized string
	Tags           []string
}

// Trait annotates a sense with a usage restriction and optional comment.
type Trait struct {
	Type    TraitType
	Comment string
}

// Translation is one target-language rendering of a sense. Order within a
// sense is semantically meaningful and round-trips exactly.
type Translation struct {
	Word          string
	Clarification *string
}

// Sense is one meaning of a lemma. Translations for every installed target
// language are keyed by language code.
type Sense struct {
	ID            SenseID
	Definition    string
	Level         Level
	FrequencyBand FrequencyBand
	SemanticGroup string
	NameType      *NameType
	Synonyms      []string
	Antonyms      []string
	Phrases       []string
	Traits        []Trait
	Examples      []Example

	// TargetDefinitions maps target language code to the sense definition in
	// that language. At most one per target language.
	TargetDefinitions map[string]string
	// Translations maps target language code to the ordered translation list.
	Translations map[string][]Translation
}

// Example is an example sentence, addressed inside its sense by a stable
// integer index so translation databases can reference it without knowing
// dictionary row identifiers.
type Example struct {
	Index int
	Text  string
	// Translations maps target language code to the translated sentence.
	Translations map[string]string
}

// POSEntry groups the forms and senses of one (lemma, part of speech) pair.
type POSEntry struct {
	ID           LemmaID
	PartOfSpeech PartOfSpeech
	Forms        []Form
	Senses       []Sense
}

// LanguageCard is the fully materialized view of a headword in one language.
// It is assembled fresh on every query and never persisted.
type LanguageCard struct {
	Language  string
	Lemma     string
	Frequency float64
	Entries   []POSEntry
}
