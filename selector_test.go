package daregister

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectFirst(t *testing.T) {
	region := Rect{X: 90, Y: 10, Width: 210, Height: 12}
	elements := []Element{
		{Text: "outside", Rect: Rect{X: 500, Y: 10, Width: 40, Height: 12}},
		{Text: "580/1990/25", Rect: Rect{X: 95, Y: 10, Width: 60, Height: 12}},
		{Text: "later", Rect: Rect{X: 200, Y: 10, Width: 40, Height: 12}},
	}

	assert.Equal(t, "580/1990/25", selectFirst(elements, region, 10))
}

func TestSelectFirst_NoQualifyingFragment(t *testing.T) {
	region := Rect{X: 90, Y: 10, Width: 210, Height: 12}
	elements := []Element{
		{Text: "outside", Rect: Rect{X: 500, Y: 10, Width: 40, Height: 12}},
	}

	assert.Equal(t, "", selectFirst(elements, region, 10))
}

func TestSelectFirst_ThresholdExcludesGrazingFragments(t *testing.T) {
	region := Rect{X: 0, Y: 0, Width: 100, Height: 10}
	// Only 5% of this fragment's area falls inside the region.
	grazing := Element{Text: "grazing", Rect: Rect{X: 95, Y: 0, Width: 100, Height: 10}}

	assert.Equal(t, "", selectFirst([]Element{grazing}, region, 10))
	assert.Equal(t, "grazing", selectFirst([]Element{grazing}, region, 4))
}

func TestSelectCombined_JoinsInReadingOrderAndCollapsesWhitespace(t *testing.T) {
	region := Rect{X: 110, Y: 50, Width: 190, Height: 30}
	elements := []Element{
		{Text: "Verandah  and", Rect: Rect{X: 115, Y: 50, Width: 80, Height: 10}},
		{Text: " carport ", Rect: Rect{X: 115, Y: 62, Width: 50, Height: 10}},
		{Text: "Council", Rect: Rect{X: 115, Y: 90, Width: 50, Height: 10}},
	}

	assert.Equal(t, "Verandah and carport", selectCombined(elements, region, 10))
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", collapseWhitespace("  a \t b\n\nc  "))
	assert.Equal(t, "", collapseWhitespace("   "))
}
