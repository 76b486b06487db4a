package translation

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/lexibase/lexibase/internal/adapter/sqlite"
	"github.com/lexibase/lexibase/internal/domain"
)

// TranslationRow is one row of sense_translation. Idx preserves the input
// order of the translation list; ordered reads never re-sort by any other key.
type TranslationRow struct {
	SenseID       string  `db:"sense_id"`
	Idx           int     `db:"idx"`
	Word          string  `db:"word"`
	Clarification *string `db:"clarification"`
}

// ExampleTranslationRow is one row of example_translation, keyed by the
// per-sense example index assigned by the dictionary database.
type ExampleTranslationRow struct {
	SenseID   string `db:"sense_id"`
	ExampleID int    `db:"example_id"`
	Text      string `db:"text"`
}

// Repo provides access to one translation database file.
type Repo struct {
	db  *sql.DB
	txm *sqlite.TxManager
}

// New creates a repository over an open translation database.
func New(db *sql.DB) *Repo {
	return &Repo{db: db, txm: sqlite.NewTxManager(db)}
}

// Tx returns the transaction manager for this database.
func (r *Repo) Tx() *sqlite.TxManager { return r.txm }

// ---------------------------------------------------------------------------
// Write operations (ingestion fan-out)
// ---------------------------------------------------------------------------

// InsertDefinition stores the target-language definition of a sense.
// At most one per sense.
func (r *Repo) InsertDefinition(ctx context.Context, senseID domain.SenseID, definition string) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	if _, err := q.ExecContext(ctx,
		`INSERT INTO sense_definition (sense_id, definition) VALUES (?, ?)`,
		senseID.String(), definition,
	); err != nil {
		return sqlite.MapError(err, "sense_definition", senseID)
	}
	return nil
}

// InsertTranslations stores the ordered translation list of a sense. The
// explicit idx column preserves input order exactly.
func (r *Repo) InsertTranslations(ctx context.Context, senseID domain.SenseID, translations []domain.Translation) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	for i, tr := range translations {
		sqlStr, args, err := sq.Insert("sense_translation").
			Columns("sense_id", "idx", "word", "clarification").
			Values(senseID.String(), i, tr.Word, tr.Clarification).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert translation: %w", err)
		}
		if _, err := q.ExecContext(ctx, sqlStr, args...); err != nil {
			return sqlite.MapError(err, "sense_translation", senseID)
		}
	}
	return nil
}

// InsertExampleTranslation stores the translation of one example sentence,
// keyed by (sense, example index).
func (r *Repo) InsertExampleTranslation(ctx context.Context, senseID domain.SenseID, exampleID int, text string) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	if _, err := q.ExecContext(ctx,
		`INSERT INTO example_translation (sense_id, example_id, text) VALUES (?, ?, ?)`,
		senseID.String(), exampleID, text,
	); err != nil {
		return sqlite.MapError(err, "example_translation", senseID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations (card reconstruction)
// ---------------------------------------------------------------------------

// Definition returns the target-language definition of a sense, or "" with
// found=false when none is stored.
func (r *Repo) Definition(ctx context.Context, senseID string) (string, bool, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	var definition string
	err := q.QueryRowContext(ctx,
		`SELECT definition FROM sense_definition WHERE sense_id = ?`,
		senseID,
	).Scan(&definition)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select definition for sense %s: %w", senseID, err)
	}
	return definition, true, nil
}

// Translations returns the translation list of a sense in stored order.
func (r *Repo) Translations(ctx context.Context, senseID string) ([]TranslationRow, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	var rows []TranslationRow
	if err := sqlscan.Select(ctx, q, &rows,
		`SELECT sense_id, idx, word, clarification FROM sense_translation WHERE sense_id = ? ORDER BY idx`,
		senseID,
	); err != nil {
		return nil, fmt.Errorf("select translations for sense %s: %w", senseID, err)
	}
	return rows, nil
}

// ExampleTranslations returns the example translations of a sense keyed by
// example index.
func (r *Repo) ExampleTranslations(ctx context.Context, senseID string) ([]ExampleTranslationRow, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	var rows []ExampleTranslationRow
	if err := sqlscan.Select(ctx, q, &rows,
		`SELECT sense_id, example_id, text FROM example_translation WHERE sense_id = ? ORDER BY example_id`,
		senseID,
	); err != nil {
		return nil, fmt.Errorf("select example translations for sense %s: %w", senseID, err)
	}
	return rows, nil
}
