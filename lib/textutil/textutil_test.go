package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSingularize(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "Potatoes", expected: "potato"},
		{input: "tomatoes", expected: "tomato"},
		{input: "eggs", expected: "egg"},
		{input: "banana", expected: "banana"},
		{input: "peas", expected: "pea"},
		{input: "tbs", expected: "tbs"},
		{input: "gas", expected: "gas"},
		{input: "  Carrots ", expected: "carrot"},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, Singularize(test.input), test.input)
	}
}

func TestParseQuantity(t *testing.T) {
	testCases := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{input: "2", expected: 2, ok: true},
		{input: "1.5", expected: 1.5, ok: true},
		{input: "3/4", expected: 0.75, ok: true},
		{input: "1 1/2", expected: 1.5, ok: true},
		{input: "½", expected: 0.5, ok: true},
		{input: "1½", expected: 1.5, ok: true},
		{input: "", ok: false},
		{input: "a pinch", ok: false},
		{input: "1/0", ok: false},
	}
	for _, test := range testCases {
		got, ok := ParseQuantity(test.input)
		require.Equal(t, test.ok, ok, test.input)
		if test.ok {
			require.InDelta(t, test.expected, got, 1e-9, test.input)
		}
	}
}

func TestFormatQuantity(t *testing.T) {
	testCases := []struct {
		input    float64
		expected string
	}{
		{input: 2, expected: "2"},
		{input: 0.5, expected: "0.5"},
		{input: 1.25, expected: "1.25"},
		{input: 0.333333, expected: "0.33"},
		{input: 10.10, expected: "10.1"},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, FormatQuantity(test.input))
	}
}

func TestReplaceFractions(t *testing.T) {
	require.Equal(t, "1 1/2 cups flour", ReplaceFractions("1½ cups flour"))
	require.Equal(t, "3/4 tsp salt", ReplaceFractions("¾ tsp salt"))
	require.Equal(t, "plain text", ReplaceFractions("plain text"))
}
