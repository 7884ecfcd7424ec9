package vocab

import "testing"

func TestCleanWord(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"Plain word", "Hund", "Hund"},
		{"Masculine article", "der Hund", "Hund"},
		{"Feminine article", "die Katze", "Katze"},
		{"Neuter article", "das Haus", "Haus"},
		{"Indefinite article", "ein Buch", "Buch"},
		{"Indefinite feminine article", "eine Frau", "Frau"},
		{"Article without following word stays", "der", "der"},
		{"Parenthetical annotation removed", "laufen (gehen)", "laufen"},
		{"Article and annotation", "die Lampe (elektrisch)", "Lampe"},
		{"Only annotation", "(veraltet)", ""},
		{"Whitespace trimmed", "  der Hund  ", "Hund"},
		{"Empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cleanWord(tc.input); got != tc.expected {
				t.Errorf("cleanWord(%q) = %q, want %q", tc.input, got, tc.expected)
			}
		})
	}
}
