package domain

import (
	"errors"
	"testing"
)

func TestCoerceID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "full uuid",
			input: "a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d",
			want:  "a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d",
		},
		{
			name:  "truncated tail recovered by padding",
			input: "a1b2c3d4-e5f6-4a7b-8c9d-",
			want:  "a1b2c3d4-e5f6-4a7b-8c9d-000000000000",
		},
		{
			name:  "truncated mid-group recovered by padding",
			input: "a1b2c3d4-e5f6-4a7b-8c9d-0e1f",
			want:  "a1b2c3d4-e5f6-4a7b-8c9d-0e1f00000000",
		},
		{
			name:    "garbage fails even padded",
			input:   "not-a-uuid-at-all",
			wantErr: true,
		},
		{
			name:    "empty fails",
			input:   "",
			wantErr: true,
		},
		{
			name:    "too long fails",
			input:   "a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d-extra",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := CoerceID(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("CoerceID(%q) = %v, want error", tt.input, got)
				}
				if !errors.Is(err, ErrMalformedID) {
					t.Errorf("CoerceID(%q) error = %v, want ErrMalformedID", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CoerceID(%q): %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("CoerceID(%q) = %s, want %s", tt.input, got, tt.want)
			}

			// Deterministic: repeated coercion yields the same UUID.
			again, err := CoerceID(tt.input)
			if err != nil || again != got {
				t.Errorf("CoerceID(%q) not deterministic: %s vs %s", tt.input, got, again)
			}
		})
	}
}

func TestParsePartOfSpeechUnknown(t *testing.T) {
	t.Parallel()

	if _, err := ParsePartOfSpeech("gerundive"); !errors.Is(err, ErrUnknownEnum) {
		t.Errorf("ParsePartOfSpeech(gerundive) error = %v, want ErrUnknownEnum", err)
	}
	pos, err := ParsePartOfSpeech("Noun")
	if err != nil || pos != PartOfSpeechNoun {
		t.Errorf("ParsePartOfSpeech(Noun) = %v, %v", pos, err)
	}
}
