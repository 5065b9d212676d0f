package bibtex

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleBib = `% comment line
@article{smith2021,
  title = {Deep Learning for {Image} Classification},
  author = {Smith, John and Lee, Amy},
  journal = {Journal of Testing},
  year = {2021},
  doi = {https://doi.org/10.1234/TEST},
}

@inproceedings{park2020,
  title = "Something Else Entirely",
  author = {Kim Park},
  booktitle = {Proceedings of Things},
  year = {2020}
}

@book{incomplete,
  title = {No Year Here},
}
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "refs.bib")
	if err := os.WriteFile(path, []byte(sampleBib), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFile(t *testing.T) {
	entries, err := ParseFile(writeSample(t))
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	article := entries[0]
	if article.ID != "smith2021" || article.Type != "article" {
		t.Errorf("identity = %q/%q", article.ID, article.Type)
	}
	if article.Title != "Deep Learning for Image Classification" {
		t.Errorf("protective braces should be stripped, got %q", article.Title)
	}
	if len(article.Authors) != 2 || article.Authors[0] != "John Smith" || article.Authors[1] != "Amy Lee" {
		t.Errorf(`"Last, First" should flip to "First Last", got %v`, article.Authors)
	}
	if article.Year != 2021 {
		t.Errorf("year = %d", article.Year)
	}
	if article.DOI != "10.1234/test" {
		t.Errorf("DOI should be normalized, got %q", article.DOI)
	}
	if article.Venue != "Journal of Testing" {
		t.Errorf("venue = %q", article.Venue)
	}

	proc := entries[1]
	if proc.Type != "inproceedings" {
		t.Errorf("type = %q", proc.Type)
	}
	if proc.Title != "Something Else Entirely" {
		t.Errorf("quoted values should parse, got %q", proc.Title)
	}
	if len(proc.Authors) != 1 || proc.Authors[0] != "Kim Park" {
		t.Errorf("authors = %v", proc.Authors)
	}
	if proc.Venue != "Proceedings of Things" {
		t.Errorf("booktitle should become the venue, got %q", proc.Venue)
	}

	book := entries[2]
	if book.HasYear() || book.HasDOI() || len(book.Authors) != 0 {
		t.Errorf("missing fields should stay unknown, got %+v", book)
	}
}

func TestParseFileMissing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "nope.bib")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestSplitAuthors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain names", "John Smith and Amy Lee", []string{"John Smith", "Amy Lee"}},
		{"comma form", "Smith, John and Lee, Amy", []string{"John Smith", "Amy Lee"}},
		{"single", "Kim Park", []string{"Kim Park"}},
		{"last name only after comma", "Smith,", []string{"Smith"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitAuthors(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("splitAuthors(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("author %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
