package daregister

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHeading(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Application No", "applicationno"},
		{"  Full  Development\tApproval ", "fulldevelopmentapproval"},
		{"Hundred of", "hundredof"},
		{"LOT", "lot"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, normalizeHeading(tt.in))
	}
}

func TestFindAnchors_ExactMatch(t *testing.T) {
	elements := []Element{
		{Text: "Development Description", Rect: Rect{X: 10, Y: 50, Width: 100, Height: 10}},
		{Text: "Relevant Authority", Rect: Rect{X: 10, Y: 80, Width: 90, Height: 10}},
	}

	found := findAnchors(elements)

	desc, ok := found[headingDevelopmentDescription]
	require.True(t, ok)
	assert.Equal(t, 50.0, desc.Rect.Y)

	_, ok = found[headingApplicationNumber]
	assert.False(t, ok)
}

func TestFindAnchors_ApplicationNumberByPrefix(t *testing.T) {
	// The rendered label carries trailing punctuation the exact match
	// would miss.
	elements := []Element{
		{Text: "Application No.", Rect: Rect{X: 10, Y: 10, Width: 80, Height: 10}},
	}

	found := findAnchors(elements)

	_, ok := found[headingApplicationNumber]
	assert.True(t, ok)
}

func TestFindAnchors_SynonymPriority(t *testing.T) {
	// Both received-date labels present: the higher-priority synonym wins
	// even when the lower-priority one appears first on the page.
	elements := []Element{
		{Text: "Application r Date", Rect: Rect{X: 10, Y: 10, Width: 80, Height: 10}},
		{Text: "Application received", Rect: Rect{X: 10, Y: 30, Width: 90, Height: 10}},
	}

	found := findAnchors(elements)

	received, ok := found[headingApplicationReceived]
	require.True(t, ok)
	assert.Equal(t, 30.0, received.Rect.Y)
}

func TestFindAnchors_SynonymFallback(t *testing.T) {
	elements := []Element{
		{Text: "Application r Date", Rect: Rect{X: 10, Y: 10, Width: 80, Height: 10}},
	}

	found := findAnchors(elements)

	received, ok := found[headingApplicationReceived]
	require.True(t, ok)
	assert.Equal(t, 10.0, received.Rect.Y)
}

func TestFindAnchors_FirstOccurrenceWins(t *testing.T) {
	elements := []Element{
		{Text: "Lot", Rect: Rect{X: 200, Y: 100, Width: 30, Height: 10}},
		{Text: "Lot", Rect: Rect{X: 200, Y: 300, Width: 30, Height: 10}},
	}

	found := findAnchors(elements)

	lot, ok := found[headingLotNumber]
	require.True(t, ok)
	assert.Equal(t, 100.0, lot.Rect.Y)
}
