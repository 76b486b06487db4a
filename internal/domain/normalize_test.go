package domain

import "testing"

func TestNormalizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase", input: "Hello", want: "hello"},
		{name: "diacritics stripped", input: "Café", want: "cafe"},
		{name: "ligature ae", input: "Ærø", want: "aero"},
		{name: "ligature oe", input: "Œuvre", want: "oeuvre"},
		{name: "barred l", input: "Łódź", want: "lodz"},
		{name: "barred d", input: "Đakovo", want: "dakovo"},
		{name: "eszett preserved", input: "GroßeSS", want: "großess"},
		{name: "cyrillic untouched", input: "Программа", want: "программа"},
		{name: "cyrillic short i keeps breve", input: "Йогурт", want: "йогурт"},
		{name: "decomposed input", input: "Café", want: "cafe"},
		{name: "mixed scripts", input: "Résumé-резюме", want: "resume-резюме"},
		{name: "empty string", input: "", want: ""},
		{name: "plain ascii", input: "abandon", want: "abandon"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := NormalizeText(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := NormalizeText(got); again != got {
				t.Errorf("NormalizeText not idempotent: %q -> %q -> %q", tt.input, got, again)
			}
		})
	}
}
