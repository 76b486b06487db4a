package dictionary

// Row structs mirror table columns. Scanned via scany's sqlscan.

// LemmaRow is one row of the lemma table.
type LemmaRow struct {
	ID             string  `db:"id"`
	Text           string  `db:"text"`
	TextNormalized string  `db:"text_normalized"`
	Frequency      float64 `db:"frequency"`
}

// LemmaPOSRow pairs a lemma with one of its parts of speech.
type LemmaPOSRow struct {
	ID      string `db:"id"`
	LemmaID string `db:"lemma_id"`
	POS     string `db:"pos"`
}

// FormRow is one row of the form table.
type FormRow struct {
	ID             string `db:"id"`
	LemmaPOSID     string `db:"lemma_pos_id"`
	Text           string `db:"text"`
	TextNormalized string `db:"text_normalized"`
}

// SenseRow is one row of the sense table.
type SenseRow struct {
	ID            string  `db:"id"`
	LemmaPOSID    string  `db:"lemma_pos_id"`
	Definition    string  `db:"definition"`
	Level         string  `db:"level"`
	FrequencyBand string  `db:"frequency_band"`
	SemanticGroup string  `db:"semantic_group"`
	NameType      *string `db:"name_type"`
	Position      int     `db:"position"`
}

// TraitRow is one row of sense_trait.
type TraitRow struct {
	SenseID string `db:"sense_id"`
	Trait   string `db:"trait"`
	Comment string `db:"comment"`
}

// IndexedTextRow is one row of sense_synonym / sense_antonym / sense_phrase.
type IndexedTextRow struct {
	SenseID string `db:"sense_id"`
	Idx     int    `db:"idx"`
	Text    string `db:"text"`
}

// ExampleRow is one row of sense_example. ExampleID is the stable per-sense
// index referenced by translation databases.
type ExampleRow struct {
	SenseID   string `db:"sense_id"`
	ExampleID int    `db:"example_id"`
	Text      string `db:"text"`
}

// TagRow is one row of form_tag.
type TagRow struct {
	FormID string `db:"form_id"`
	Tag    string `db:"tag"`
}

// LemmaHit is a lemma matched directly by a search stage.
type LemmaHit struct {
	ID   string `db:"id"`
	Text string `db:"text"`
}

// FormHit is a form matched by a search stage, joined with its parent lemma.
type FormHit struct {
	FormText  string `db:"form_text"`
	LemmaID   string `db:"lemma_id"`
	LemmaText string `db:"lemma_text"`
}

// POSPair associates a lemma id with one registered part of speech.
type POSPair struct {
	LemmaID string `db:"lemma_id"`
	POS     string `db:"pos"`
}
