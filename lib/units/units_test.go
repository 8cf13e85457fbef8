package units

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "Grams", expected: "g"},
		{input: "milliliters", expected: "ml"},
		{input: "Tablespoons", expected: "tbsp"},
		{input: "tbs", expected: "tbsp"},
		{input: "pcs", expected: "piece"},
		{input: "cups", expected: "cup"},
		{input: "ounces", expected: "oz"},
		{input: "lbs.", expected: "lb"},
		{input: "furlong", expected: "furlong"},
		{input: "  KG ", expected: "kg"},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, Normalize(test.input), test.input)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Grams", "tablespoons", "pieces", "FL OZ", "mystery"}
	for _, in := range inputs {
		once := Normalize(in)
		require.Equal(t, once, Normalize(once), in)
	}
}

func TestMatch(t *testing.T) {
	require.True(t, Match("grams", "G"))
	require.True(t, Match("tbs", "tablespoon"))
	require.False(t, Match("g", "ml"))
	require.False(t, Match("", ""))
	require.False(t, Match("g", ""))
}

func TestConvert(t *testing.T) {
	testCases := []struct {
		qty      float64
		from     string
		to       string
		expected float64
		ok       bool
	}{
		{qty: 1, from: "cup", to: "ml", expected: 240, ok: true},
		{qty: 2, from: "tbsp", to: "ml", expected: 30, ok: true},
		{qty: 1, from: "l", to: "ml", expected: 1000, ok: true},
		{qty: 1, from: "lb", to: "g", expected: 453.6, ok: true},
		{qty: 1, from: "kg", to: "g", expected: 1000, ok: true},
		// pint chains through cup before reaching ml
		{qty: 1, from: "pint", to: "ml", expected: 480, ok: true},
		{qty: 1, from: "pint", to: "cup", expected: 2, ok: true},
		{qty: 240, from: "ml", to: "cup", expected: 1, ok: true},
		{qty: 3, from: "tsp", to: "tbsp", expected: 1, ok: true},
		{qty: 5, from: "g", to: "g", expected: 5, ok: true},
		// mass and volume do not share an anchor
		{qty: 1, from: "g", to: "ml", ok: false},
		{qty: 1, from: "cup", to: "kg", ok: false},
		{qty: 1, from: "piece", to: "g", ok: false},
	}
	for _, test := range testCases {
		got, ok := Convert(test.qty, test.from, test.to)
		require.Equal(t, test.ok, ok, "%s -> %s", test.from, test.to)
		if test.ok {
			require.InDelta(t, test.expected, got, 1e-9, "%s -> %s", test.from, test.to)
		}
	}
}

func TestConvertRoundTrip(t *testing.T) {
	pairs := [][2]string{
		{"cup", "ml"},
		{"tbsp", "tsp"},
		{"lb", "g"},
		{"quart", "ml"},
		{"gallon", "cup"},
	}
	for _, p := range pairs {
		forward, ok := Convert(3.5, p[0], p[1])
		require.True(t, ok)
		back, ok := Convert(forward, p[1], p[0])
		require.True(t, ok)
		require.InDelta(t, 3.5, back, 1e-9, "%s <-> %s", p[0], p[1])
	}
}
