// Package translation implements the per-language-pair translation database
// (translation_<src>_<tgt>.db). It holds only target-language-derived
// content keyed by sense id — sense text itself lives in the source
// language's dictionary database.
package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/lexibase/lexibase/internal/adapter/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS sense_definition (
    sense_id   TEXT PRIMARY KEY,
    definition TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sense_translation (
    sense_id      TEXT NOT NULL,
    idx           INTEGER NOT NULL,
    word          TEXT NOT NULL,
    clarification TEXT,
    PRIMARY KEY (sense_id, idx)
);

CREATE TABLE IF NOT EXISTS example_translation (
    sense_id   TEXT NOT NULL,
    example_id INTEGER NOT NULL,
    text       TEXT NOT NULL,
    PRIMARY KEY (sense_id, example_id)
);
`

// EnsureSchema creates the translation tables if they do not exist.
func EnsureSchema(ctx context.Context, q sqlite.Querier) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := q.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("translation schema: %w", err)
		}
	}
	return nil
}
