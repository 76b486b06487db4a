package dictionary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"

	"github.com/lexibase/lexibase/internal/adapter/sqlite"
	"github.com/lexibase/lexibase/internal/domain"
)

// ---------------------------------------------------------------------------
// Search queries (staged lookup by lemma and by form)
// ---------------------------------------------------------------------------

const formHitSQL = `
SELECT DISTINCT f.text AS form_text, l.id AS lemma_id, l.text AS lemma_text
FROM form f
JOIN lemma_pos lp ON f.lemma_pos_id = lp.id
JOIN lemma l ON lp.lemma_id = l.id
WHERE `

// LemmasExact returns lemmas whose text equals the query, case-insensitively.
func (r *Repo) LemmasExact(ctx context.Context, text string) ([]LemmaHit, error) {
	return r.lemmaHits(ctx, `text = ? COLLATE NOCASE`, text)
}

// LemmasNormalized returns lemmas whose normalized text equals the query.
func (r *Repo) LemmasNormalized(ctx context.Context, normalized string) ([]LemmaHit, error) {
	return r.lemmaHits(ctx, `text_normalized = ?`, normalized)
}

// LemmasPrefix returns lemmas whose text starts with the query, case-insensitively.
func (r *Repo) LemmasPrefix(ctx context.Context, prefix string) ([]LemmaHit, error) {
	return r.lemmaHits(ctx, `text LIKE ? COLLATE NOCASE`, prefix+"%")
}

// LemmasPrefixNormalized returns lemmas whose normalized text starts with the query.
func (r *Repo) LemmasPrefixNormalized(ctx context.Context, prefix string) ([]LemmaHit, error) {
	return r.lemmaHits(ctx, `text_normalized LIKE ?`, prefix+"%")
}

func (r *Repo) lemmaHits(ctx context.Context, where string, arg string) ([]LemmaHit, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	var hits []LemmaHit
	query := `SELECT id, text FROM lemma WHERE ` + where + ` ORDER BY rowid`
	if err := sqlscan.Select(ctx, q, &hits, query, arg); err != nil {
		return nil, fmt.Errorf("select lemmas: %w", err)
	}
	return hits, nil
}

// FormsExact returns forms whose text equals the query, case-insensitively,
// joined with their parent lemma.
func (r *Repo) FormsExact(ctx context.Context, text string) ([]FormHit, error) {
	return r.formHits(ctx, `f.text = ? COLLATE NOCASE`, text)
}

// FormsNormalized returns forms whose normalized text equals the query.
func (r *Repo) FormsNormalized(ctx context.Context, normalized string) ([]FormHit, error) {
	return r.formHits(ctx, `f.text_normalized = ?`, normalized)
}

// FormsPrefix returns forms whose text starts with the query, case-insensitively.
func (r *Repo) FormsPrefix(ctx context.Context, prefix string) ([]FormHit, error) {
	return r.formHits(ctx, `f.text LIKE ? COLLATE NOCASE`, prefix+"%")
}

// FormsPrefixNormalized returns forms whose normalized text starts with the query.
func (r *Repo) FormsPrefixNormalized(ctx context.Context, prefix string) ([]FormHit, error) {
	return r.formHits(ctx, `f.text_normalized LIKE ?`, prefix+"%")
}

func (r *Repo) formHits(ctx context.Context, where string, arg string) ([]FormHit, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	var hits []FormHit
	if err := sqlscan.Select(ctx, q, &hits, formHitSQL+where+` ORDER BY f.rowid`, arg); err != nil {
		return nil, fmt.Errorf("select forms: %w", err)
	}
	return hits, nil
}

// PartsOfSpeechByLemmaIDs returns every (lemma, pos) association for the
// given lemmas in one batched query.
func (r *Repo) PartsOfSpeechByLemmaIDs(ctx context.Context, lemmaIDs []string) ([]POSPair, error) {
	if len(lemmaIDs) == 0 {
		return []POSPair{}, nil
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)

	sqlStr, args, err := sq.Select("lemma_id", "pos").
		From("lemma_pos").
		Where(sq.Eq{"lemma_id": lemmaIDs}).
		OrderBy("rowid").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select lemma_pos: %w", err)
	}

	var pairs []POSPair
	if err := sqlscan.Select(ctx, q, &pairs, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("select lemma pos pairs: %w", err)
	}
	return pairs, nil
}

// ---------------------------------------------------------------------------
// Card reconstruction queries
// ---------------------------------------------------------------------------

// LemmaByID returns a single lemma row.
func (r *Repo) LemmaByID(ctx context.Context, id domain.LemmaID) (*LemmaRow, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	var row LemmaRow
	err := q.QueryRowContext(ctx,
		`SELECT id, text, text_normalized, frequency FROM lemma WHERE id = ?`,
		id.String(),
	).Scan(&row.ID, &row.Text, &row.TextNormalized, &row.Frequency)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("lemma %s: %w", id, domain.ErrNotFound)
		}
		return nil, sqlite.MapError(err, "lemma", id)
	}
	return &row, nil
}

// LemmaPOSByLemmaID returns the lemma_pos rows for a lemma in insertion order.
func (r *Repo) LemmaPOSByLemmaID(ctx context.Context, lemmaID string) ([]LemmaPOSRow, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	var rows []LemmaPOSRow
	if err := sqlscan.Select(ctx, q, &rows,
		`SELECT id, lemma_id, pos FROM lemma_pos WHERE lemma_id = ? ORDER BY rowid`,
		lemmaID,
	); err != nil {
		return nil, fmt.Errorf("select lemma_pos for lemma %s: %w", lemmaID, err)
	}
	return rows, nil
}

// FormsByLemmaPOS returns the forms of one lemma_pos in insertion order.
func (r *Repo) FormsByLemmaPOS(ctx context.Context, lemmaPOSID string) ([]FormRow, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	var rows []FormRow
	if err := sqlscan.Select(ctx, q, &rows,
		`SELECT id, lemma_pos_id, text, text_normalized FROM form WHERE lemma_pos_id = ? ORDER BY rowid`,
		lemmaPOSID,
	); err != nil {
		return nil, fmt.Errorf("select forms for lemma_pos %s: %w", lemmaPOSID, err)
	}
	return rows, nil
}

// TagsByFormIDs returns form tags for a set of forms in one batched query.
func (r *Repo) TagsByFormIDs(ctx context.Context, formIDs []string) ([]TagRow, error) {
	if len(formIDs) == 0 {
		return []TagRow{}, nil
	}

	q := sqlite.QuerierFromCtx(ctx, r.db)

	sqlStr, args, err := sq.Select("form_id", "tag").
		From("form_tag").
		Where(sq.Eq{"form_id": formIDs}).
		OrderBy("rowid").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select form_tag: %w", err)
	}

	var rows []TagRow
	if err := sqlscan.Select(ctx, q, &rows, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("select form tags: %w", err)
	}
	return rows, nil
}

// SensesByLemmaPOS returns the senses of one lemma_pos ordered by position.
func (r *Repo) SensesByLemmaPOS(ctx context.Context, lemmaPOSID string) ([]SenseRow, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	var rows []SenseRow
	if err := sqlscan.Select(ctx, q, &rows,
		`SELECT id, lemma_pos_id, definition, level, frequency_band, semantic_group, name_type, position
		 FROM sense WHERE lemma_pos_id = ? ORDER BY position`,
		lemmaPOSID,
	); err != nil {
		return nil, fmt.Errorf("select senses for lemma_pos %s: %w", lemmaPOSID, err)
	}
	return rows, nil
}

// TraitsBySenseID returns the trait annotations of one sense.
func (r *Repo) TraitsBySenseID(ctx context.Context, senseID string) ([]TraitRow, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	var rows []TraitRow
	if err := sqlscan.Select(ctx, q, &rows,
		`SELECT sense_id, trait, comment FROM sense_trait WHERE sense_id = ? ORDER BY rowid`,
		senseID,
	); err != nil {
		return nil, fmt.Errorf("select traits for sense %s: %w", senseID, err)
	}
	return rows, nil
}

// IndexedTextsBySenseID returns the ordered string list of one sense from
// sense_synonym, sense_antonym or sense_phrase.
func (r *Repo) IndexedTextsBySenseID(ctx context.Context, table, senseID string) ([]string, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	var rows []IndexedTextRow
	query := fmt.Sprintf(`SELECT sense_id, idx, text FROM %s WHERE sense_id = ? ORDER BY idx`, table)
	if err := sqlscan.Select(ctx, q, &rows, query, senseID); err != nil {
		return nil, fmt.Errorf("select %s for sense %s: %w", table, senseID, err)
	}

	texts := make([]string, 0, len(rows))
	for _, row := range rows {
		texts = append(texts, row.Text)
	}
	return texts, nil
}

// ExamplesBySenseID returns the examples of one sense ordered by example index.
func (r *Repo) ExamplesBySenseID(ctx context.Context, senseID string) ([]ExampleRow, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	var rows []ExampleRow
	if err := sqlscan.Select(ctx, q, &rows,
		`SELECT sense_id, example_id, text FROM sense_example WHERE sense_id = ? ORDER BY example_id`,
		senseID,
	); err != nil {
		return nil, fmt.Errorf("select examples for sense %s: %w", senseID, err)
	}
	return rows, nil
}
