package matcher

import (
	"math"
	"testing"

	"github.com/matsen/bibval/internal/entry"
)

func TestTitleSimilarity(t *testing.T) {
	m := New()

	a := testEntry("Deep Learning for Image Classification", 0)
	b := testEntry("Deep Learning for Image Classification", 0)

	if sim := m.TitleSimilarity(a, b); sim != 1.0 {
		t.Errorf("identical titles should score 1.0, got %f", sim)
	}

	// Punctuation and case differences vanish under normalization
	b.Title = "Deep Learning, for Image Classification!"
	if sim := m.TitleSimilarity(a, b); sim != 1.0 {
		t.Errorf("normalization-equal titles should score 1.0, got %f", sim)
	}

	b.Title = "Deep Learning for Image Recognition"
	if sim := m.TitleSimilarity(a, b); sim <= 0.85 {
		t.Errorf("near-identical titles should score above 0.85, got %f", sim)
	}

	b.Title = "Quantum Computing in Finance"
	if sim := m.TitleSimilarity(a, b); sim >= 0.7 {
		t.Errorf("unrelated titles should score below 0.7, got %f", sim)
	}

	b.Title = ""
	if sim := m.TitleSimilarity(a, b); sim != 0.0 {
		t.Errorf("unknown title should score 0.0, got %f", sim)
	}
}

func TestYearsCompatible(t *testing.T) {
	m := New()

	tests := []struct {
		name  string
		yearA int
		yearB int
		want  bool
	}{
		{"equal", 2020, 2020, true},
		{"within tolerance", 2020, 2022, true},
		{"within tolerance reversed", 2022, 2020, true},
		{"just outside", 2020, 2023, false},
		{"just outside reversed", 2023, 2020, false},
		{"far apart", 1990, 2020, false},
		{"a unknown", 0, 2020, true},
		{"b unknown", 2020, 0, true},
		{"both unknown", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testEntry("x", tt.yearA)
			b := testEntry("x", tt.yearB)
			if got := m.YearsCompatible(a, b); got != tt.want {
				t.Errorf("YearsCompatible(%d, %d) = %v, want %v", tt.yearA, tt.yearB, got, tt.want)
			}
		})
	}
}

func TestAuthorOverlap(t *testing.T) {
	m := New()

	t.Run("vacuous when either list is empty", func(t *testing.T) {
		a := testEntry("x", 0)
		b := testEntry("x", 0)
		b.Authors = []string{"John Smith"}

		if got := m.AuthorOverlap(a, b); got != 1.0 {
			t.Errorf("empty local list should give 1.0, got %f", got)
		}
		if got := m.AuthorOverlap(b, a); got != 1.0 {
			t.Errorf("empty remote list should give 1.0, got %f", got)
		}
	})

	t.Run("abbreviated first names match by last name", func(t *testing.T) {
		a := testEntry("x", 0)
		a.Authors = []string{"John Smith", "Amy Lee"}
		b := testEntry("x", 0)
		b.Authors = []string{"J. Smith", "Amy Lee", "Kim Park"}

		if got := m.AuthorOverlap(a, b); got != 1.0 {
			t.Errorf("both local authors should match, got %f", got)
		}
	})

	t.Run("partial overlap", func(t *testing.T) {
		a := testEntry("x", 0)
		a.Authors = []string{"John Smith", "Grzegorz Brzeczyszczykiewicz"}
		b := testEntry("x", 0)
		b.Authors = []string{"John Smith"}

		if got := m.AuthorOverlap(a, b); math.Abs(got-0.5) > 1e-9 {
			t.Errorf("one of two local authors matches, want 0.5, got %f", got)
		}
	})
}

func TestMatchScoreHardFilters(t *testing.T) {
	m := New()

	t.Run("dissimilar titles", func(t *testing.T) {
		target := testEntry("Deep Learning for Image Classification", 2020)
		candidate := testEntry("Quantum Computing in Finance", 2020)

		if score := m.MatchScore(target, candidate); score != 0.0 {
			t.Errorf("title hard filter should force 0.0, got %f", score)
		}
	})

	t.Run("incompatible years", func(t *testing.T) {
		target := testEntry("Deep Learning for Image Classification", 2015)
		candidate := testEntry("Deep Learning for Image Classification", 2020)

		if score := m.MatchScore(target, candidate); score != 0.0 {
			t.Errorf("year hard filter should force 0.0, got %f", score)
		}
	})

	t.Run("insufficient author overlap", func(t *testing.T) {
		target := testEntry("Deep Learning for Image Classification", 2020)
		target.Authors = []string{"Jane Doe", "Erik Nordstrom", "Hiroshi Tanaka", "Lucia Vergara"}
		candidate := testEntry("Deep Learning for Image Classification", 2020)
		candidate.Authors = []string{"Wilhelmina Ostrowski"}

		if score := m.MatchScore(target, candidate); score != 0.0 {
			t.Errorf("author overlap hard filter should force 0.0, got %f", score)
		}
	})

	t.Run("empty author list disables the overlap filter", func(t *testing.T) {
		target := testEntry("Deep Learning for Image Classification", 2020)
		target.Authors = []string{"Jane Doe"}
		candidate := testEntry("Deep Learning for Image Classification", 2020)

		if score := m.MatchScore(target, candidate); score <= 0.0 {
			t.Errorf("no candidate authors means no overlap filter, got %f", score)
		}
	})
}

func TestMatchScoreDOIShortcut(t *testing.T) {
	m := New()

	target := testEntry("Deep Learning for Image Classification", 2020)
	target.Authors = []string{"John Smith", "Amy Lee", "Kim Park"}
	target.DOI = "10.1234/ABC"
	candidate := testEntry("Deep Learning for Image Classification", 2020)
	candidate.Authors = []string{"Kim Park", "Wilhelmina Ostrowski", "Erik Nordstrom"}
	candidate.DOI = "10.1234/abc"

	// Without the shortcut the blend would sit below 1.0
	if score := m.MatchScore(target, candidate); score != 1.0 {
		t.Errorf("equal DOIs (case-insensitive) should score exactly 1.0, got %f", score)
	}

	// Same entries minus DOIs fall back to the weighted blend
	target.DOI = ""
	candidate.DOI = ""
	score := m.MatchScore(target, candidate)
	want := 1.0*0.7 + (1.0/3.0)*0.3
	if math.Abs(score-want) > 1e-9 {
		t.Errorf("blend = %f, want %f", score, want)
	}
}

func TestMatchScoreDifferentDOIsUseBlend(t *testing.T) {
	m := New()

	target := testEntry("Deep Learning for Image Classification", 2020)
	target.DOI = "10.1234/abc"
	candidate := testEntry("Deep Learning for Image Classification", 2020)
	candidate.DOI = "10.9999/zzz"

	score := m.MatchScore(target, candidate)
	want := 1.0*0.7 + 1.0*0.3 // vacuous author overlap
	if math.Abs(score-want) > 1e-9 {
		t.Errorf("differing DOIs should not shortcut, got %f want %f", score, want)
	}
}

func TestFindBestMatch(t *testing.T) {
	m := New()

	target := testEntry("Deep Learning for Image Classification", 2020)

	t.Run("no candidates", func(t *testing.T) {
		if best := m.FindBestMatch(target, nil); best != nil {
			t.Errorf("expected no match, got %+v", best)
		}
	})

	t.Run("all candidates filtered out", func(t *testing.T) {
		candidates := []entry.Entry{
			testEntry("Quantum Computing in Finance", 2020),
			testEntry("Deep Learning for Image Classification", 1995),
		}
		if best := m.FindBestMatch(target, candidates); best != nil {
			t.Errorf("expected no match, got %+v", best)
		}
	})

	t.Run("highest score wins", func(t *testing.T) {
		exact := testEntry("Deep Learning for Image Classification", 2020)
		near := testEntry("Deep Learning for Image Recognition", 2020)
		candidates := []entry.Entry{near, exact}

		best := m.FindBestMatch(target, candidates)
		if best == nil {
			t.Fatal("expected a match")
		}
		if best.Entry.Title != exact.Title {
			t.Errorf("expected exact title to win, got %q", best.Entry.Title)
		}
		if math.Abs(best.Score-1.0) > 1e-9 {
			t.Errorf("unexpected best score %f", best.Score)
		}
	})

	t.Run("ties keep the first candidate", func(t *testing.T) {
		first := testEntry("Deep Learning for Image Classification", 2020)
		first.ID = "first"
		second := testEntry("Deep Learning for Image Classification", 2020)
		second.ID = "second"

		best := m.FindBestMatch(target, []entry.Entry{first, second})
		if best == nil {
			t.Fatal("expected a match")
		}
		if best.Entry.ID != "first" {
			t.Errorf("stable scan should keep the first candidate, got %q", best.Entry.ID)
		}
	})
}
