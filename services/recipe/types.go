// Package recipe holds the recipe document model along with the parsers
// and serializers for the plain-text interchange format.
package recipe

import (
	"strings"

	"recipevault/lib/textutil"
)

type Recipe struct {
	Title    string
	Servings int
	Slices   int
	// Time is the preparation time in minutes.
	Time       int
	Difficulty string
	Category   string
	Favorite   bool
	Link       string
	Image      string
	Groups     []IngredientGroup
	Steps      []Instruction
	Notes      []string
}

// IngredientGroup is a named section of a recipe's ingredient list. The
// unnamed group collects ingredients that appear before any marker.
type IngredientGroup struct {
	Name        string
	Ingredients []Ingredient
}

type Ingredient struct {
	Name     string
	Quantity float64
	// HasQuantity distinguishes "no amount given" from a zero amount.
	HasQuantity bool
	Unit        string
	Observation string
}

// Key is the identity of an ingredient within the grocery catalog,
// the lowercased singular form of its name.
func (i Ingredient) Key() string {
	return textutil.Singularize(strings.ToLower(strings.TrimSpace(i.Name)))
}

// Instruction is a single preparation step, or a section header that
// groups the steps after it.
type Instruction struct {
	Text     string
	IsHeader bool
}

// AllIngredients flattens the recipe's groups in order.
func (r Recipe) AllIngredients() []Ingredient {
	var out []Ingredient
	for _, g := range r.Groups {
		out = append(out, g.Ingredients...)
	}
	return out
}

const (
	DifficultyEasy     = "Easy"
	DifficultyModerate = "Moderate"
)

// Difficulties is the closed list accepted by the recipe database.
var Difficulties = []string{DifficultyEasy, DifficultyModerate}

// NormalizeDifficulty folds a free-form difficulty onto the closed
// list, reporting false for values outside it.
func NormalizeDifficulty(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, d := range Difficulties {
		if strings.EqualFold(trimmed, d) {
			return d, true
		}
	}
	return "", false
}

// Categories is the closed list accepted by the recipe database.
var Categories = []string{
	"Breakfast",
	"Lunch",
	"Dinner",
	"Snack",
	"Smoothie",
	"Smoothie Bowl",
	"Soup",
	"High Protein",
	"Receipt",
	"Extra",
}

// MapCategory folds a free-form category onto the closed list. Desserts
// land in Snack, anything unrecognized defaults to Dinner.
func MapCategory(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return "Dinner"
	}
	for _, c := range Categories {
		if strings.ToLower(c) == normalized {
			return c
		}
	}
	switch {
	case strings.Contains(normalized, "dessert"):
		return "Snack"
	case strings.Contains(normalized, "breakfast") || strings.Contains(normalized, "brunch"):
		return "Breakfast"
	case strings.Contains(normalized, "lunch"):
		return "Lunch"
	case strings.Contains(normalized, "snack") || strings.Contains(normalized, "appetizer"):
		return "Snack"
	case strings.Contains(normalized, "smoothie bowl"):
		return "Smoothie Bowl"
	case strings.Contains(normalized, "smoothie") || strings.Contains(normalized, "drink"):
		return "Smoothie"
	case strings.Contains(normalized, "soup") || strings.Contains(normalized, "stew"):
		return "Soup"
	}
	return "Dinner"
}
