package daregister

// fieldKey identifies an extracted field of an application record.
type fieldKey string

const (
	fieldApplicationNumber fieldKey = "applicationNumber"
	fieldReceivedDate      fieldKey = "receivedDate"
	fieldDescription       fieldKey = "description"
	fieldHouseNumber       fieldKey = "houseNumber"
	fieldLotNumber         fieldKey = "lotNumber"
	fieldSectionNumber     fieldKey = "sectionNumber"
	fieldPlanID            fieldKey = "planID"
	fieldStreet            fieldKey = "street"
	fieldSuburb            fieldKey = "suburb"
	fieldTitle             fieldKey = "title"
	fieldHundredOf         fieldKey = "hundredOf"
)

// regionRule describes where a field's value sits relative to the headings
// detected on the current page. Regions are always anchored to headings
// actually found, so the rules tolerate modest layout drift between
// register revisions without absolute coordinates.
type regionRule struct {
	// anchor is the heading the value region hangs off. The region starts
	// at the anchor's right edge.
	anchor headingKey

	// rightBound, when found on the page, marks the region's right edge.
	// Without it the region width falls back to twice the anchor width,
	// an arbitrary but stable bound on the horizontal search.
	rightBound headingKey

	// belowBound, when found on the page, marks the bottom edge of a
	// multi-line region. Without it the height falls back to twice the
	// anchor height.
	belowBound headingKey

	// multiLine selects the taller region shape and multi-fragment value
	// assembly.
	multiLine bool
}

// fieldRules is the layout policy for every field, evaluated uniformly by
// computeRegion. The property fields are each bounded by the next heading
// to their right in the register's property block.
var fieldRules = map[fieldKey]regionRule{
	fieldApplicationNumber: {anchor: headingApplicationNumber, rightBound: headingFullDevelopmentApproval},
	fieldReceivedDate:      {anchor: headingApplicationReceived, rightBound: headingFullDevelopmentApproval},
	fieldDescription: {
		anchor:     headingDevelopmentDescription,
		rightBound: headingFullDevelopmentApproval,
		belowBound: headingRelevantAuthority,
		multiLine:  true,
	},
	fieldHouseNumber:   {anchor: headingHouseNumber, rightBound: headingLotNumber},
	fieldLotNumber:     {anchor: headingLotNumber, rightBound: headingSectionNumber},
	fieldSectionNumber: {anchor: headingSectionNumber, rightBound: headingPlanID},
	fieldPlanID:        {anchor: headingPlanID},
	fieldStreet:        {anchor: headingPropertyStreet, rightBound: headingPropertySuburb},
	fieldSuburb:        {anchor: headingPropertySuburb, rightBound: headingTitle},
	fieldTitle:         {anchor: headingTitle, rightBound: headingHundredOf},
	fieldHundredOf:     {anchor: headingHundredOf},
}

// computeRegion derives the search rectangle for a field from the headings
// found on the page. Returns false when the field's anchor heading is not
// present, in which case the field has no value on this page.
func computeRegion(found anchors, rule regionRule) (Rect, bool) {
	a, ok := found[rule.anchor]
	if !ok {
		return Rect{}, false
	}

	region := Rect{
		X:      a.Rect.Right(),
		Y:      a.Rect.Y,
		Width:  2 * a.Rect.Width,
		Height: a.Rect.Height,
	}

	if rule.rightBound != "" {
		if r, ok := found[rule.rightBound]; ok {
			region.Width = r.Rect.X - a.Rect.X - a.Rect.Width
		}
	}

	if rule.multiLine {
		region.Height = 2 * a.Rect.Height
		if rule.belowBound != "" {
			if b, ok := found[rule.belowBound]; ok {
				region.Height = b.Rect.Y - a.Rect.Y
			}
		}
	}

	return region, true
}
