package daregister

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRegion_SingleLineWithRightBound(t *testing.T) {
	found := anchors{
		headingApplicationNumber:       {Text: "Application No", Rect: Rect{X: 10, Y: 10, Width: 80, Height: 12}},
		headingFullDevelopmentApproval: {Text: "Full Development Approval", Rect: Rect{X: 300, Y: 10, Width: 120, Height: 12}},
	}

	region, ok := computeRegion(found, fieldRules[fieldApplicationNumber])

	require.True(t, ok)
	assert.Equal(t, Rect{X: 90, Y: 10, Width: 210, Height: 12}, region)
}

func TestComputeRegion_FallbackWidthWithoutRightBound(t *testing.T) {
	found := anchors{
		headingApplicationNumber: {Text: "Application No", Rect: Rect{X: 10, Y: 10, Width: 80, Height: 12}},
	}

	region, ok := computeRegion(found, fieldRules[fieldApplicationNumber])

	require.True(t, ok)
	// Fallback: twice the anchor width.
	assert.Equal(t, Rect{X: 90, Y: 10, Width: 160, Height: 12}, region)
}

func TestComputeRegion_MultiLineBoundedBelow(t *testing.T) {
	found := anchors{
		headingDevelopmentDescription: {Rect: Rect{X: 10, Y: 50, Width: 100, Height: 10}},
		headingRelevantAuthority:      {Rect: Rect{X: 10, Y: 80, Width: 90, Height: 10}},
	}

	region, ok := computeRegion(found, fieldRules[fieldDescription])

	require.True(t, ok)
	assert.Equal(t, 50.0, region.Y)
	assert.Equal(t, 30.0, region.Height)
}

func TestComputeRegion_MultiLineFallbackHeight(t *testing.T) {
	found := anchors{
		headingDevelopmentDescription: {Rect: Rect{X: 10, Y: 50, Width: 100, Height: 10}},
	}

	region, ok := computeRegion(found, fieldRules[fieldDescription])

	require.True(t, ok)
	// Fallback: twice the anchor height.
	assert.Equal(t, 20.0, region.Height)
}

func TestComputeRegion_MissingAnchor(t *testing.T) {
	_, ok := computeRegion(anchors{}, fieldRules[fieldApplicationNumber])
	assert.False(t, ok)
}

func TestFieldRules_AnchorsAreKnownHeadings(t *testing.T) {
	known := make(map[headingKey]bool, len(headingSpecs))
	for _, spec := range headingSpecs {
		known[spec.key] = true
	}

	for field, rule := range fieldRules {
		assert.True(t, known[rule.anchor], "field %s anchor %s", field, rule.anchor)
		if rule.rightBound != "" {
			assert.True(t, known[rule.rightBound], "field %s right bound %s", field, rule.rightBound)
		}
		if rule.belowBound != "" {
			assert.True(t, known[rule.belowBound], "field %s below bound %s", field, rule.belowBound)
		}
	}
}
