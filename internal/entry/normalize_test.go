package entry

import "testing"

func TestNormalizeString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "Deep Learning", "deep learning"},
		{"punctuation stripped", "Attention, Please: A Survey!", "attention please a survey"},
		{"whitespace collapsed", "  too   many\tspaces  ", "too many spaces"},
		{"hyphens become separators", "state-of-the-art", "state of the art"},
		{"digits kept", "GPT-4 in 2024", "gpt 4 in 2024"},
		{"empty", "", ""},
		{"only punctuation", "?!...", ""},
		{"unicode letters kept", "Étude Café", "étude café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeString(tt.input); got != tt.want {
				t.Errorf("NormalizeString(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeStringDeterministic(t *testing.T) {
	input := "A Very Long: Title, with Punctuation!"
	first := NormalizeString(input)
	for i := 0; i < 3; i++ {
		if got := NormalizeString(input); got != first {
			t.Fatalf("NormalizeString not deterministic: %q then %q", first, got)
		}
	}
}

func TestNormalizeDOI(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"10.1234/ABC", "10.1234/abc"},
		{"https://doi.org/10.1234/abc", "10.1234/abc"},
		{"http://doi.org/10.1234/abc", "10.1234/abc"},
		{"doi.org/10.1234/abc", "10.1234/abc"},
		{"doi:10.1234/abc", "10.1234/abc"},
		{"  10.1234/abc  ", "10.1234/abc"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeDOI(tt.input); got != tt.want {
				t.Errorf("NormalizeDOI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEntryFieldPresence(t *testing.T) {
	e := New("smith2021", "article")
	if e.HasTitle() || e.HasYear() || e.HasDOI() || e.HasVenue() {
		t.Error("fresh entry should have no known optional fields")
	}

	e.Title = "A Title"
	e.Year = 2021
	e.DOI = "10.1/x"
	e.Venue = "A Venue"
	if !e.HasTitle() || !e.HasYear() || !e.HasDOI() || !e.HasVenue() {
		t.Error("populated entry should report all fields known")
	}
}
