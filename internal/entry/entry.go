// Package entry defines the core domain types for bibliographic entries.
package entry

// Entry represents a single bibliographic record, either authored locally
// or fetched from an external source. Optional fields use their zero value
// ("" or 0) to mean "unknown"; comparators treat unknown fields as
// non-comparable rather than as mismatches.
type Entry struct {
	// Identity
	ID   string `json:"id"`   // Stable identifier within its origin; may be empty for transient records
	Type string `json:"type"` // Record kind: article, book, inproceedings, ... (informational only)

	// Metadata
	Title   string   `json:"title,omitempty"`
	Year    int      `json:"year,omitempty"`
	Authors []string `json:"authors,omitempty"` // Citation order; compared as an unordered set
	DOI     string   `json:"doi,omitempty"`
	Venue   string   `json:"venue,omitempty"` // Journal, conference, or publisher
}

// New creates an Entry with the given identity and record kind.
func New(id, entryType string) Entry {
	return Entry{ID: id, Type: entryType}
}

// HasTitle reports whether the title is known.
func (e Entry) HasTitle() bool { return e.Title != "" }

// HasYear reports whether the publication year is known.
func (e Entry) HasYear() bool { return e.Year != 0 }

// HasDOI reports whether the DOI is known.
func (e Entry) HasDOI() bool { return e.DOI != "" }

// HasVenue reports whether the venue is known.
func (e Entry) HasVenue() bool { return e.Venue != "" }

// Field identifies which entry field a discrepancy applies to.
type Field string

const (
	FieldTitle   Field = "title"
	FieldYear    Field = "year"
	FieldAuthors Field = "authors"
	FieldDOI     Field = "doi"
	FieldVenue   Field = "venue"
)

// Severity ranks discrepancies by operational importance.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Discrepancy is one detected difference between a local and a remote entry.
// Local and remote values are human-readable renderings of the compared
// field, not necessarily the raw field type.
type Discrepancy struct {
	Field       Field    `json:"field"`
	Severity    Severity `json:"severity"`
	LocalValue  string   `json:"local_value"`
	RemoteValue string   `json:"remote_value"`
	Message     string   `json:"message"`
}
