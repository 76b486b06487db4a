// Package query is the read side: staged text search over installed
// dictionaries and full language-card reconstruction across a dictionary
// database and its translation pair databases.
package query

import (
	"database/sql"
	"log/slog"
)

// Installed reports which dictionaries and translation pairs are available.
// It is injected rather than read from global state so the repository can be
// tested against a fake set of installed languages.
type Installed interface {
	// Dictionaries returns the source language codes with an installed
	// dictionary database.
	Dictionaries() []string
	// TranslationTargets returns the target language codes with an installed
	// pair database for the given source language.
	TranslationTargets(src string) []string
}

// Opener hands out database handles for installed files. The files are
// expected to be materialized locally already; download is a concern of the
// surrounding application.
type Opener interface {
	Dictionary(lang string) (*sql.DB, error)
	TranslationPair(src, tgt string) (*sql.DB, error)
}

// Repository provides search and card reconstruction. It holds no mutable
// state of its own; calls may run concurrently.
type Repository struct {
	log       *slog.Logger
	installed Installed
	opener    Opener
}

// NewRepository creates a read repository over the given capabilities.
func NewRepository(log *slog.Logger, installed Installed, opener Opener) *Repository {
	return &Repository{log: log, installed: installed, opener: opener}
}
