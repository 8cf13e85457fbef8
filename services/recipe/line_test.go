package recipe

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParseIngredient(t *testing.T) {
	testCases := []struct {
		line     string
		expected Ingredient
		ok       bool
	}{
		{
			line: "[2 tbsp] olive oil",
			ok:   true,
			expected: Ingredient{
				Name: "olive oil", Quantity: 2, HasQuantity: true, Unit: "tbsp",
			},
		},
		{
			line: "[100 g] flour, sifted",
			ok:   true,
			expected: Ingredient{
				Name: "flour", Quantity: 100, HasQuantity: true, Unit: "g",
				Observation: "sifted",
			},
		},
		{
			line: "[2] eggs",
			ok:   true,
			expected: Ingredient{
				Name: "eggs", Quantity: 2, HasQuantity: true, Unit: "piece",
			},
		},
		{
			line: "[1 1/2 cup] milk (whole)",
			ok:   true,
			expected: Ingredient{
				Name: "milk", Quantity: 1.5, HasQuantity: true, Unit: "cup",
				Observation: "whole",
			},
		},
		{
			line: "2 tbsp olive oil",
			ok:   true,
			expected: Ingredient{
				Name: "olive oil", Quantity: 2, HasQuantity: true, Unit: "tbsp",
			},
		},
		{
			line: "1 can of chickpeas, drained",
			ok:   true,
			expected: Ingredient{
				Name: "chickpeas", Quantity: 1, HasQuantity: true, Unit: "can",
				Observation: "drained",
			},
		},
		{
			line: "2 cups of flour",
			ok:   true,
			expected: Ingredient{
				Name: "flour", Quantity: 2, HasQuantity: true, Unit: "cup",
			},
		},
		{
			line: "3 eggs",
			ok:   true,
			expected: Ingredient{
				Name: "eggs", Quantity: 3, HasQuantity: true, Unit: "piece",
			},
		},
		{
			line: "½ tsp salt",
			ok:   true,
			expected: Ingredient{
				Name: "salt", Quantity: 0.5, HasQuantity: true, Unit: "tsp",
			},
		},
		{
			line:     "salt to taste",
			ok:       true,
			expected: Ingredient{Name: "salt to taste"},
		},
		{
			line: "fresh basil (a few leaves), chopped",
			ok:   true,
			expected: Ingredient{
				Name: "fresh basil", Observation: "chopped, a few leaves",
			},
		},
		{line: "", ok: false},
		{line: "# a comment", ok: false},
	}

	for _, test := range testCases {
		got, ok := ParseIngredient(test.line)
		require.Equal(t, test.ok, ok, test.line)
		if !test.ok {
			continue
		}
		diff := cmp.Diff(test.expected, got)
		if diff != "" {
			t.Fatalf("%s:\n%s", test.line, diff)
		}
	}
}

func TestIngredientLineRoundTrip(t *testing.T) {
	lines := []string{
		"[2 tbsp] olive oil",
		"[100 g] flour, sifted",
		"[2 piece] eggs",
		"[0.5 tsp] salt",
		"[1 can] chickpeas, drained",
		"salt to taste",
	}
	for _, line := range lines {
		ing, ok := ParseIngredient(line)
		require.True(t, ok, line)
		require.Equal(t, line, ing.Line(), line)

		again, ok := ParseIngredient(ing.Line())
		require.True(t, ok, line)
		diff := cmp.Diff(ing, again)
		if diff != "" {
			t.Fatalf("%s:\n%s", line, diff)
		}
	}
}

func TestIngredientKey(t *testing.T) {
	testCases := []struct {
		name     string
		expected string
	}{
		{name: "Potatoes", expected: "potato"},
		{name: "olive oil", expected: "olive oil"},
		{name: "Eggs", expected: "egg"},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, Ingredient{Name: test.name}.Key())
	}
}
