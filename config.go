package daregister

// CommentURL is the constant contact reference attached to every record.
const CommentURL = "mailto:admin@wakefieldrc.sa.gov.au"

// DescriptionPlaceholder fills the description field when the register
// leaves it blank.
const DescriptionPlaceholder = "No description provided"

const (
	// lotOnlyPrefix marks an address value that carries a lot reference
	// instead of a street address.
	lotOnlyPrefix = "LOT:"

	// noAddressPrefix marks the register's placeholder for applications
	// without a residential address.
	noAddressPrefix = "NO RESIDENTIAL ADDRESS"

	// receivedDateLayout is the register's date rendering: a one or two
	// digit day, two digit month, four digit year.
	receivedDateLayout = "2/01/2006"

	// isoDateLayout is the calendar format stored on records.
	isoDateLayout = "2006-01-02"
)

// Config controls extraction behavior.
type Config struct {
	// OverlapThreshold is the minimum percentage of a fragment's own area
	// that must fall inside a field region for the fragment to qualify.
	// Deliberately permissive: anchor widths are themselves estimates, so
	// a low bar avoids dropping legitimate values over minor geometric
	// error (default: 10).
	OverlapThreshold float64

	// MaxPages caps page iteration regardless of the page count the
	// document reports, guarding against malformed or misreported counts
	// (default: 500).
	MaxPages int

	// MemoryHints requests a garbage collection pass after each page's
	// resources are released. Advisory only (default: false).
	MemoryHints bool

	// VerboseLogging dumps every fragment of a skipped page for layout
	// diagnosis (default: false).
	VerboseLogging bool
}

// DefaultConfig returns the default extraction configuration.
func DefaultConfig() Config {
	return Config{
		OverlapThreshold: 10,
		MaxPages:         500,
	}
}

// ReferenceTables provides the static street, suburb and hundred name
// lists loaded at startup. The assembler accepts them as an optional
// collaborator; they are reserved for a future address-matching
// enhancement and not consulted during extraction.
type ReferenceTables interface {
	Streets() []string
	Suburbs() []string
	Hundreds() []string
}
