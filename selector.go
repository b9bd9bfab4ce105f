package daregister

import "strings"

// qualifyingElements returns the fragments whose overlap with the region
// exceeds the threshold percentage, preserving the input order.
func qualifyingElements(elements []Element, region Rect, threshold float64) []Element {
	var qualified []Element
	for _, el := range elements {
		if OverlapPercentage(el.Rect, region) > threshold {
			qualified = append(qualified, el)
		}
	}
	return qualified
}

// selectFirst picks the first fragment in reading order that qualifies for
// the region. Returns "" when no fragment qualifies.
func selectFirst(elements []Element, region Rect, threshold float64) string {
	qualified := qualifyingElements(elements, region, threshold)
	if len(qualified) == 0 {
		return ""
	}
	return qualified[0].Text
}

// selectCombined concatenates every qualifying fragment's text in reading
// order, collapsing whitespace runs and trimming the ends.
func selectCombined(elements []Element, region Rect, threshold float64) string {
	qualified := qualifyingElements(elements, region, threshold)
	parts := make([]string, 0, len(qualified))
	for _, el := range qualified {
		parts = append(parts, el.Text)
	}
	return collapseWhitespace(strings.Join(parts, " "))
}

// collapseWhitespace reduces any whitespace run to a single space and trims
// leading and trailing whitespace.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
