// Package dictionary implements the per-language dictionary database:
// POS-scoped lemmas, deduplicated forms, senses and their sub-records.
// One database file per source language (dictionary_<lang>.db).
package dictionary

import (
	"context"
	"fmt"
	"strings"

	"github.com/lexibase/lexibase/internal/adapter/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS lemma (
    id              TEXT PRIMARY KEY,
    text            TEXT NOT NULL,
    text_normalized TEXT NOT NULL,
    frequency       REAL NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_lemma_text ON lemma (text COLLATE NOCASE);
CREATE INDEX IF NOT EXISTS idx_lemma_text_normalized ON lemma (text_normalized);

CREATE TABLE IF NOT EXISTS lemma_pos (
    id       TEXT PRIMARY KEY,
    lemma_id TEXT NOT NULL REFERENCES lemma (id),
    pos      TEXT NOT NULL,
    UNIQUE (lemma_id, pos)
);

CREATE TABLE IF NOT EXISTS form (
    id              TEXT PRIMARY KEY,
    lemma_pos_id    TEXT NOT NULL REFERENCES lemma_pos (id),
    text            TEXT NOT NULL,
    text_normalized TEXT NOT NULL,
    UNIQUE (lemma_pos_id, text_normalized)
);
CREATE INDEX IF NOT EXISTS idx_form_text ON form (text COLLATE NOCASE);
CREATE INDEX IF NOT EXISTS idx_form_text_normalized ON form (text_normalized);

CREATE TABLE IF NOT EXISTS form_tag (
    form_id TEXT NOT NULL REFERENCES form (id),
    tag     TEXT NOT NULL,
    UNIQUE (form_id, tag)
);

CREATE TABLE IF NOT EXISTS sense (
    id             TEXT PRIMARY KEY,
    lemma_pos_id   TEXT NOT NULL REFERENCES lemma_pos (id),
    definition     TEXT NOT NULL,
    level          TEXT NOT NULL,
    frequency_band TEXT NOT NULL,
    semantic_group TEXT NOT NULL DEFAULT '',
    name_type      TEXT,
    position       INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sense_lemma_pos ON sense (lemma_pos_id);

CREATE TABLE IF NOT EXISTS sense_trait (
    sense_id TEXT NOT NULL REFERENCES sense (id),
    trait    TEXT NOT NULL,
    comment  TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS sense_synonym (
    sense_id TEXT NOT NULL REFERENCES sense (id),
    idx      INTEGER NOT NULL,
    text     TEXT NOT NULL,
    PRIMARY KEY (sense_id, idx)
);

CREATE TABLE IF NOT EXISTS sense_antonym (
    sense_id TEXT NOT NULL REFERENCES sense (id),
    idx      INTEGER NOT NULL,
    text     TEXT NOT NULL,
    PRIMARY KEY (sense_id, idx)
);

CREATE TABLE IF NOT EXISTS sense_phrase (
    sense_id TEXT NOT NULL REFERENCES sense (id),
    idx      INTEGER NOT NULL,
    text     TEXT NOT NULL,
    PRIMARY KEY (sense_id, idx)
);

CREATE TABLE IF NOT EXISTS sense_example (
    sense_id   TEXT NOT NULL REFERENCES sense (id),
    example_id INTEGER NOT NULL,
    text       TEXT NOT NULL,
    PRIMARY KEY (sense_id, example_id)
);

CREATE TABLE IF NOT EXISTS word_family (
    lemma_id TEXT NOT NULL REFERENCES lemma (id),
    member   TEXT NOT NULL,
    UNIQUE (lemma_id, member)
);
`

// EnsureSchema creates the dictionary tables if they do not exist.
func EnsureSchema(ctx context.Context, q sqlite.Querier) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := q.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("dictionary schema: %w", err)
		}
	}
	return nil
}
