package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// SenseID identifies a sense. It is the sole correlation key between a
// dictionary database and any translation database — translation rows carry
// a SenseID and never embed sense content.
type SenseID uuid.UUID

func (id SenseID) String() string { return uuid.UUID(id).String() }

// LemmaID identifies a lemma row inside one dictionary database.
type LemmaID uuid.UUID

func (id LemmaID) String() string { return uuid.UUID(id).String() }

const canonicalUUIDLen = 36

// idPadChar is appended to truncated identifiers until they reach canonical
// UUID length. Upstream tooling abbreviates trailing zero groups.
const idPadChar = '0'

// CoerceID parses s as a UUID. If parsing fails and s is shorter than the
// canonical 36-character form, it is right-padded with '0' and parsed again.
// The result is deterministic: the same input always yields the same UUID.
// A final parse failure wraps ErrMalformedID.
func CoerceID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err == nil {
		return id, nil
	}

	if len(s) < canonicalUUIDLen {
		padded := make([]byte, canonicalUUIDLen)
		copy(padded, s)
		for i := len(s); i < canonicalUUIDLen; i++ {
			padded[i] = idPadChar
		}
		if id, err = uuid.Parse(string(padded)); err == nil {
			return id, nil
		}
	}

	return uuid.Nil, fmt.Errorf("identifier %q: %w", s, ErrMalformedID)
}

// CoerceSenseID is CoerceID returning the SenseID newtype.
func CoerceSenseID(s string) (SenseID, error) {
	id, err := CoerceID(s)
	return SenseID(id), err
}
