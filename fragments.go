package daregister

import (
	"math"
	"strings"
	"unicode"
)

// pageChar is a single positioned character prior to fragment grouping.
type pageChar struct {
	text     rune
	box      Rect
	fontSize float64
}

// transformHeight derives a character height from the vertical scale
// column of its positioning matrix: fontSize × √(c² + d²). Reported char
// box heights are unreliable for some register documents, so the transform
// is trusted instead. Returns 0 for a degenerate matrix; the caller keeps
// the reported height in that case.
func transformHeight(fontSize, c, d float64) float64 {
	return fontSize * math.Sqrt(c*c+d*d)
}

// groupFragments merges a page's characters into positioned text
// fragments. A fragment breaks on a line-break character, on a baseline
// jump of more than half the running height, or on a horizontal gap wider
// than the current font size. Interior spaces are kept so multi-word
// headings like "Development Description" stay one fragment.
func groupFragments(chars []pageChar) []Element {
	var elements []Element
	var run []pageChar

	flush := func() {
		if len(run) == 0 {
			return
		}
		if el, ok := buildElement(run); ok {
			elements = append(elements, el)
		}
		run = nil
	}

	for _, c := range chars {
		if c.text == '\n' || c.text == '\r' {
			flush()
			continue
		}

		if len(run) > 0 {
			prev := run[len(run)-1]
			baselineJump := math.Abs(c.box.Y-prev.box.Y) > prev.box.Height/2
			gap := c.box.X - prev.box.Right()
			if baselineJump || gap > c.fontSize {
				flush()
			}
		}

		// Never start a fragment on whitespace.
		if len(run) == 0 && unicode.IsSpace(c.text) {
			continue
		}

		run = append(run, c)
	}
	flush()

	return elements
}

// buildElement aggregates a run of characters into one Element, expanding
// the bounding box over every character. Runs that carry no visible text
// are dropped.
func buildElement(run []pageChar) (Element, bool) {
	var b strings.Builder
	box := run[0].box
	for _, c := range run {
		b.WriteRune(c.text)
		box = Union(box, c.box)
	}

	text := strings.TrimRightFunc(b.String(), unicode.IsSpace)
	if text == "" {
		return Element{}, false
	}
	return Element{Text: text, Rect: box}, true
}
