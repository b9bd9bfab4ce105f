package daregister

import (
	"strings"
	"unicode"
)

// headingKey identifies one of the register's canonical column headings.
type headingKey string

const (
	headingApplicationNumber       headingKey = "application-number"
	headingFullDevelopmentApproval headingKey = "full-development-approval"
	headingApplicationReceived     headingKey = "application-received"
	headingDevelopmentDescription  headingKey = "development-description"
	headingRelevantAuthority       headingKey = "relevant-authority"
	headingHouseNumber             headingKey = "house-number"
	headingLotNumber               headingKey = "lot-number"
	headingSectionNumber           headingKey = "section-number"
	headingPlanID                  headingKey = "plan-id"
	headingPropertyStreet          headingKey = "property-street"
	headingPropertySuburb          headingKey = "property-suburb"
	headingTitle                   headingKey = "title"
	headingHundredOf               headingKey = "hundred-of"
)

// headingSpec describes how a canonical heading is matched on a page.
// Labels are pre-normalized and tried in priority order; the first label
// matched anywhere on the page wins.
type headingSpec struct {
	key      headingKey
	labels   []string
	byPrefix bool
}

// headingSpecs covers every labeled field on a register page. The
// application number heading matches by prefix to tolerate trailing
// punctuation or digits in the rendered label.
var headingSpecs = []headingSpec{
	{key: headingApplicationNumber, labels: []string{"applicationno"}, byPrefix: true},
	{key: headingFullDevelopmentApproval, labels: []string{"fulldevelopmentapproval"}},
	{key: headingApplicationReceived, labels: []string{"applicationreceived", "applicationrdate"}},
	{key: headingDevelopmentDescription, labels: []string{"developmentdescription"}},
	{key: headingRelevantAuthority, labels: []string{"relevantauthority"}},
	{key: headingHouseNumber, labels: []string{"propertyhouseno"}},
	{key: headingLotNumber, labels: []string{"lot"}},
	{key: headingSectionNumber, labels: []string{"section"}},
	{key: headingPlanID, labels: []string{"plan"}},
	{key: headingPropertyStreet, labels: []string{"propertystreet"}},
	{key: headingPropertySuburb, labels: []string{"propertysuburb"}},
	{key: headingTitle, labels: []string{"title"}},
	{key: headingHundredOf, labels: []string{"hundredof"}},
}

// anchors maps each heading found on a page to the fragment that carries it.
type anchors map[headingKey]Element

// normalizeHeading case-folds a fragment's text and strips all whitespace,
// so matching survives the register's inconsistent label spacing.
func normalizeHeading(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// findAnchors locates the canonical heading fragments on a page. Fragments
// are scanned in reading order and the first match per label wins. Headings
// absent from the page are simply absent from the result; the caller
// decides which ones are required.
func findAnchors(elements []Element) anchors {
	found := make(anchors, len(headingSpecs))

	for _, spec := range headingSpecs {
	labels:
		for _, label := range spec.labels {
			for _, el := range elements {
				norm := normalizeHeading(el.Text)
				if norm == label || (spec.byPrefix && strings.HasPrefix(norm, label)) {
					found[spec.key] = el
					break labels
				}
			}
		}
	}

	return found
}
