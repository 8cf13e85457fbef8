package recipe

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const pancakesDoc = `=== Pancakes ===
Servings: 2
Time: 20 min
Difficulty: Easy
Category: Breakfast

[2] eggs
[100 g] flour
[200 ml] milk

Steps:
1. Whisk the eggs.
2. Fold in the flour.
3. Fry in a hot pan.
`

func TestParseDocumentPancakes(t *testing.T) {
	recipes := ParseDocument(pancakesDoc)
	require.Len(t, recipes, 1)

	expected := Recipe{
		Title:      "Pancakes",
		Servings:   2,
		Time:       20,
		Difficulty: "Easy",
		Category:   "Breakfast",
		Groups: []IngredientGroup{
			{
				Name: "",
				Ingredients: []Ingredient{
					{Name: "eggs", Quantity: 2, HasQuantity: true, Unit: "piece"},
					{Name: "flour", Quantity: 100, HasQuantity: true, Unit: "g"},
					{Name: "milk", Quantity: 200, HasQuantity: true, Unit: "ml"},
				},
			},
		},
		Steps: []Instruction{
			{Text: "Whisk the eggs."},
			{Text: "Fold in the flour."},
			{Text: "Fry in a hot pan."},
		},
	}
	diff := cmp.Diff(expected, recipes[0])
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestParseDocumentGroupsAndComments(t *testing.T) {
	doc := `=== Lasagna ===
Servings: 4

# pantry staples below
[1] onion

[sauce]
[400 g] tomatoes, crushed
[2 tbsp] olive oil

[topping]
[50 g] parmesan

Steps:
Sauce:
1. Soften the onion.
2. Add the tomatoes.
Assembly:
3. Layer everything.
`
	recipes := ParseDocument(doc)
	require.Len(t, recipes, 1)
	r := recipes[0]

	require.Len(t, r.Groups, 3)
	require.Equal(t, "", r.Groups[0].Name)
	require.Equal(t, "sauce", r.Groups[1].Name)
	require.Equal(t, "topping", r.Groups[2].Name)
	require.Len(t, r.Groups[1].Ingredients, 2)

	require.Equal(t, []Instruction{
		{Text: "Sauce", IsHeader: true},
		{Text: "Soften the onion."},
		{Text: "Add the tomatoes."},
		{Text: "Assembly", IsHeader: true},
		{Text: "Layer everything."},
	}, r.Steps)
}

func TestParseDocumentNumberedGroups(t *testing.T) {
	doc := `=== Pancakes ===
Servings: 2

[1]
[200 g] flour
[2 dl] milk

[2]
[1] banana

Steps:
1. Mix it.
`
	recipes := ParseDocument(doc)
	require.Len(t, recipes, 1)
	r := recipes[0]

	require.Len(t, r.Groups, 2)
	require.Equal(t, "1", r.Groups[0].Name)
	require.Equal(t, "2", r.Groups[1].Name)
	require.Len(t, r.Groups[0].Ingredients, 2)
	require.Equal(t, []Ingredient{
		{Name: "banana", Quantity: 1, HasQuantity: true, Unit: "piece"},
	}, r.Groups[1].Ingredients)
}

func TestParseDocumentTimeFormats(t *testing.T) {
	testCases := []struct {
		input    string
		expected int
	}{
		{input: "20", expected: 20},
		{input: "20 min", expected: 20},
		{input: "about 45 minutes", expected: 45},
		{input: "soonish", expected: 0},
	}
	for _, test := range testCases {
		doc := "=== Toast ===\nTime: " + test.input + "\n\n[2] bread slices\n"
		recipes := ParseDocument(doc)
		require.Len(t, recipes, 1, test.input)
		require.Equal(t, test.expected, recipes[0].Time, test.input)
	}
}

func TestParseDocumentMultipleAndMalformed(t *testing.T) {
	doc := `garbage preamble

=== First ===
[1] apple

=== Empty ===
Servings: 4

=== Second ===
[2] pears
`
	recipes := ParseDocument(doc)
	require.Len(t, recipes, 2)
	require.Equal(t, "First", recipes[0].Title)
	require.Equal(t, "Second", recipes[1].Title)
}

func TestParseDocumentJunkSteps(t *testing.T) {
	doc := `=== Toast ===
[2] bread slices

Steps:
1. Toast the bread.
Enjoy!
Nutrition:
`
	recipes := ParseDocument(doc)
	require.Len(t, recipes, 1)
	require.Equal(t, []Instruction{{Text: "Toast the bread."}}, recipes[0].Steps)
}

func TestFormatDocumentRoundTrip(t *testing.T) {
	original := ParseDocument(pancakesDoc)
	require.Len(t, original, 1)

	formatted := FormatDocument(original)
	reparsed := ParseDocument(formatted)
	require.Len(t, reparsed, 1)

	diff := cmp.Diff(original[0], reparsed[0])
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestFormatDocumentDeduplicates(t *testing.T) {
	r := Recipe{
		Title:    "Salad",
		Servings: 1,
		Groups: []IngredientGroup{
			{
				Ingredients: []Ingredient{
					{Name: "tomatoes", Quantity: 2, HasQuantity: true, Unit: "piece"},
					{Name: "Tomato", Quantity: 3, HasQuantity: true, Unit: "piece"},
				},
			},
		},
		Steps: []Instruction{{Text: "Chop."}},
	}
	out := FormatDocument([]Recipe{r})
	require.Equal(t, 1, strings.Count(strings.ToLower(out), "tomato"))
}

func TestNormalizeDifficulty(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
		ok       bool
	}{
		{input: "Easy", expected: "Easy", ok: true},
		{input: "easy", expected: "Easy", ok: true},
		{input: "MODERATE", expected: "Moderate", ok: true},
		{input: "Hard", ok: false},
		{input: "", ok: false},
	}
	for _, test := range testCases {
		got, ok := NormalizeDifficulty(test.input)
		require.Equal(t, test.ok, ok, test.input)
		require.Equal(t, test.expected, got, test.input)
	}
}

func TestMapCategory(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{input: "dinner", expected: "Dinner"},
		{input: "Dessert", expected: "Snack"},
		{input: "main course", expected: "Dinner"},
		{input: "breakfast and brunch", expected: "Breakfast"},
		{input: "smoothie bowl", expected: "Smoothie Bowl"},
		{input: "", expected: "Dinner"},
		{input: "soup", expected: "Soup"},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, MapCategory(test.input), test.input)
	}
}
