package matcher

// Thresholds holds the policy constants for entry comparison and scoring.
// They are configuration, not derived values; tune them without touching
// comparator logic.
type Thresholds struct {
	// TitleMatch is the minimum title similarity for a plausible match.
	// Below it, CompareEntries reports an Error and MatchScore hard-filters.
	TitleMatch float64 `yaml:"title_match"`

	// TitleWarning is the title similarity below which CompareEntries
	// reports a Warning (titles slightly different).
	TitleWarning float64 `yaml:"title_warning"`

	// AuthorMatch is the minimum full-name similarity for two author
	// names to be considered the same person.
	AuthorMatch float64 `yaml:"author_match"`

	// LastNameMatch is the minimum last-name similarity accepted when the
	// full names diverge ("John Smith" vs "J. Smith").
	LastNameMatch float64 `yaml:"last_name_match"`

	// VenueMatch is the venue similarity below which an Info discrepancy
	// is reported. Venue naming varies widely, so it never rises above Info.
	VenueMatch float64 `yaml:"venue_match"`

	// MinAuthorOverlap is the minimum author overlap ratio for a valid
	// match when both entries carry author lists.
	MinAuthorOverlap float64 `yaml:"min_author_overlap"`

	// MaxYearDifference is the maximum absolute year difference for two
	// entries to be considered compatible.
	MaxYearDifference int `yaml:"max_year_difference"`

	// TitleWeight and AuthorWeight blend title similarity and author
	// overlap into the combined match score.
	TitleWeight  float64 `yaml:"title_weight"`
	AuthorWeight float64 `yaml:"author_weight"`
}

// DefaultThresholds returns the standard comparison policy.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TitleMatch:        0.85,
		TitleWarning:      0.90,
		AuthorMatch:       0.80,
		LastNameMatch:     0.90,
		VenueMatch:        0.70,
		MinAuthorOverlap:  0.30,
		MaxYearDifference: 2,
		TitleWeight:       0.7,
		AuthorWeight:      0.3,
	}
}
