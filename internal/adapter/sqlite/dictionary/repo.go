package dictionary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/lexibase/lexibase/internal/adapter/sqlite"
	"github.com/lexibase/lexibase/internal/domain"
)

// Repo provides access to one dictionary database file.
type Repo struct {
	db  *sql.DB
	txm *sqlite.TxManager
}

// New creates a repository over an open dictionary database.
func New(db *sql.DB) *Repo {
	return &Repo{db: db, txm: sqlite.NewTxManager(db)}
}

// Tx returns the transaction manager for this database.
func (r *Repo) Tx() *sqlite.TxManager { return r.txm }

// ---------------------------------------------------------------------------
// Write operations (ingestion)
// ---------------------------------------------------------------------------

// InsertLemma inserts a lemma row. Text is normalized by the caller.
func (r *Repo) InsertLemma(ctx context.Context, id domain.LemmaID, text, normalized string, frequency float64) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	sqlStr, args, err := sq.Insert("lemma").
		Columns("id", "text", "text_normalized", "frequency").
		Values(id.String(), text, normalized, frequency).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert lemma: %w", err)
	}

	if _, err := q.ExecContext(ctx, sqlStr, args...); err != nil {
		return sqlite.MapError(err, "lemma", id)
	}
	return nil
}

// InsertLemmaPOS registers one part of speech for a lemma. At most one row
// per (lemma, pos) pair exists; a second insert for the same pair fails with
// domain.ErrAlreadyExists.
func (r *Repo) InsertLemmaPOS(ctx context.Context, id, lemmaID domain.LemmaID, pos domain.PartOfSpeech) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	sqlStr, args, err := sq.Insert("lemma_pos").
		Columns("id", "lemma_id", "pos").
		Values(id.String(), lemmaID.String(), pos.String()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert lemma_pos: %w", err)
	}

	if _, err := q.ExecContext(ctx, sqlStr, args...); err != nil {
		return sqlite.MapError(err, "lemma_pos", id)
	}
	return nil
}

// UpsertForm inserts a form under a lemma_pos, deduplicating by
// (lemma_pos, normalized text). When the form already exists, the first-seen
// surface text is kept and only the tag set grows: the stored tags become
// the union of all contributing sources.
func (r *Repo) UpsertForm(ctx context.Context, lemmaPOSID domain.LemmaID, text, normalized string, tags []string) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	var formID string
	err := q.QueryRowContext(ctx,
		`SELECT id FROM form WHERE lemma_pos_id = ? AND text_normalized = ?`,
		lemmaPOSID.String(), normalized,
	).Scan(&formID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		formID = uuid.NewString()
		sqlStr, args, buildErr := sq.Insert("form").
			Columns("id", "lemma_pos_id", "text", "text_normalized").
			Values(formID, lemmaPOSID.String(), text, normalized).
			ToSql()
		if buildErr != nil {
			return fmt.Errorf("build insert form: %w", buildErr)
		}
		if _, err := q.ExecContext(ctx, sqlStr, args...); err != nil {
			return sqlite.MapError(err, "form", lemmaPOSID)
		}
	case err != nil:
		return sqlite.MapError(err, "form", lemmaPOSID)
	}

	for _, tag := range tags {
		if _, err := q.ExecContext(ctx,
			`INSERT OR IGNORE INTO form_tag (form_id, tag) VALUES (?, ?)`,
			formID, tag,
		); err != nil {
			return sqlite.MapError(err, "form_tag", lemmaPOSID)
		}
	}
	return nil
}

// InsertSense inserts a sense row with its position inside the lemma_pos.
func (r *Repo) InsertSense(ctx context.Context, row SenseRow) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	sqlStr, args, err := sq.Insert("sense").
		Columns("id", "lemma_pos_id", "definition", "level", "frequency_band", "semantic_group", "name_type", "position").
		Values(row.ID, row.LemmaPOSID, row.Definition, row.Level, row.FrequencyBand, row.SemanticGroup, row.NameType, row.Position).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert sense: %w", err)
	}

	if _, err := q.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("insert sense %s: %w", row.ID, err)
	}
	return nil
}

// InsertTraits inserts trait annotations for a sense.
func (r *Repo) InsertTraits(ctx context.Context, senseID domain.SenseID, traits []domain.Trait) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	for _, t := range traits {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO sense_trait (sense_id, trait, comment) VALUES (?, ?, ?)`,
			senseID.String(), t.Type.String(), t.Comment,
		); err != nil {
			return fmt.Errorf("insert trait for sense %s: %w", senseID, err)
		}
	}
	return nil
}

// InsertIndexedTexts inserts an ordered string list (synonyms, antonyms or
// common phrases) for a sense. Input order is preserved via the idx column.
func (r *Repo) InsertIndexedTexts(ctx context.Context, table string, senseID domain.SenseID, texts []string) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	for i, text := range texts {
		sqlStr, args, err := sq.Insert(table).
			Columns("sense_id", "idx", "text").
			Values(senseID.String(), i, text).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert %s: %w", table, err)
		}
		if _, err := q.ExecContext(ctx, sqlStr, args...); err != nil {
			return fmt.Errorf("insert %s for sense %s: %w", table, senseID, err)
		}
	}
	return nil
}

// InsertExample inserts one example sentence addressed by its per-sense index.
func (r *Repo) InsertExample(ctx context.Context, senseID domain.SenseID, exampleID int, text string) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	if _, err := q.ExecContext(ctx,
		`INSERT INTO sense_example (sense_id, example_id, text) VALUES (?, ?, ?)`,
		senseID.String(), exampleID, text,
	); err != nil {
		return fmt.Errorf("insert example %d for sense %s: %w", exampleID, senseID, err)
	}
	return nil
}

// InsertWordFamilyMember records a word-family member for a lemma. Duplicate
// inserts are ignored — this is the one table that must tolerate re-ingestion.
func (r *Repo) InsertWordFamilyMember(ctx context.Context, lemmaID domain.LemmaID, member string) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	if _, err := q.ExecContext(ctx,
		`INSERT OR IGNORE INTO word_family (lemma_id, member) VALUES (?, ?)`,
		lemmaID.String(), member,
	); err != nil {
		return sqlite.MapError(err, "word_family", lemmaID)
	}
	return nil
}
