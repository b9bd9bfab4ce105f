package daregister

import (
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrAnchorMissing reports that a heading required to locate a page's
	// record could not be found. The page is skipped, not the document.
	ErrAnchorMissing = errors.New("required heading anchor not found")

	// ErrRecordIncomplete reports that a required field was empty after
	// formatting, so no record exists for the page.
	ErrRecordIncomplete = errors.New("record missing required field")
)

// Application is one validated development application record extracted
// from a register page.
type Application struct {
	ApplicationNumber string
	Address           string
	Description       string
	InformationURL    string
	CommentURL        string
	DateScraped       string
	DateReceived      string
	LegalDescription  string
}

// Assembler turns a page's sorted fragments into a validated Application.
type Assembler struct {
	config    Config
	reference ReferenceTables // optional; reserved for address matching
	now       func() time.Time
}

// NewAssembler creates an assembler. reference may be nil; it is an
// optional enrichment collaborator and extraction does not depend on it.
func NewAssembler(config Config, reference ReferenceTables) *Assembler {
	return &Assembler{
		config:    config,
		reference: reference,
		now:       time.Now,
	}
}

// Assemble locates the heading anchors among the page's fragments, computes
// each field's search region, selects the overlapping values and builds a
// validated record. infoURL is recorded as the document the record came
// from. Returns ErrAnchorMissing or ErrRecordIncomplete (wrapped) when the
// page yields no record; neither is fatal to the document.
func (a *Assembler) Assemble(elements []Element, infoURL string) (*Application, error) {
	found := findAnchors(elements)
	if _, ok := found[headingApplicationNumber]; !ok {
		return nil, errors.Wrap(ErrAnchorMissing, "application number heading")
	}

	value := func(field fieldKey) string {
		rule := fieldRules[field]
		region, ok := computeRegion(found, rule)
		if !ok {
			return ""
		}
		if rule.multiLine {
			return selectCombined(elements, region, a.config.OverlapThreshold)
		}
		return selectFirst(elements, region, a.config.OverlapThreshold)
	}

	applicationNumber := strings.TrimSpace(value(fieldApplicationNumber))
	if applicationNumber == "" {
		return nil, errors.Wrap(ErrRecordIncomplete, "application number")
	}

	address := formatAddress(strings.Join([]string{
		value(fieldHouseNumber),
		value(fieldStreet),
		value(fieldSuburb),
	}, " "))
	if address == "" {
		return nil, errors.Wrap(ErrRecordIncomplete, "address")
	}

	description := collapseWhitespace(value(fieldDescription))
	if description == "" {
		description = DescriptionPlaceholder
	}

	return &Application{
		ApplicationNumber: applicationNumber,
		Address:           address,
		Description:       description,
		InformationURL:    infoURL,
		CommentURL:        CommentURL,
		DateScraped:       a.now().Format(isoDateLayout),
		DateReceived:      parseReceivedDate(value(fieldReceivedDate)),
		LegalDescription: buildLegalDescription(
			value(fieldLotNumber),
			value(fieldSectionNumber),
			value(fieldPlanID),
			value(fieldTitle),
			value(fieldHundredOf),
		),
	}, nil
}

// houseNumberComma matches a one or two digit house number with a spurious
// thousands-style comma inserted before its last three digits. An artifact
// of the register's number rendering, not an actual thousands separator.
var houseNumberComma = regexp.MustCompile(`^(\d{1,2}),(\d{3})\b`)

// formatAddress normalizes an assembled address. Lot-only values and the
// register's "no residential address" placeholder format to "", which
// rejects the record.
func formatAddress(address string) string {
	address = collapseWhitespace(address)
	upper := strings.ToUpper(address)
	if strings.HasPrefix(upper, lotOnlyPrefix) || strings.HasPrefix(upper, noAddressPrefix) {
		return ""
	}
	return houseNumberComma.ReplaceAllString(address, "$1$2")
}

// receivedDatePattern is the register's strict date rendering: one or two
// digit day, two digit month, four digit year.
var receivedDatePattern = regexp.MustCompile(`\b\d{1,2}/\d{2}/\d{4}\b`)

// parseReceivedDate extracts the received date from a fragment's text and
// returns it in ISO format. A missing or unparsable value yields "" rather
// than an error or a guessed date.
func parseReceivedDate(s string) string {
	match := receivedDatePattern.FindString(s)
	if match == "" {
		return ""
	}
	t, err := time.Parse(receivedDateLayout, match)
	if err != nil {
		return ""
	}
	return t.Format(isoDateLayout)
}

// buildLegalDescription joins the labelled legal reference parts, omitting
// the ones the page did not carry. The result may be empty.
func buildLegalDescription(lot, section, plan, title, hundred string) string {
	var parts []string
	add := func(label, value string) {
		if value = strings.TrimSpace(value); value != "" {
			parts = append(parts, label+" "+value)
		}
	}
	add("Lot", lot)
	add("Section", section)
	add("Plan", plan)
	add("Title", title)
	add("Hundred of", hundred)
	return strings.Join(parts, " ")
}
