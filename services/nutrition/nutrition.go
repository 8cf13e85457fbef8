// Package nutrition resolves macro values for grocery items, first from
// a local table of common foods and optionally from the USDA FoodData
// Central API.
package nutrition

import (
	"strings"

	"recipevault/lib/textutil"
)

// Facts holds macros per 100 grams of the food.
type Facts struct {
	Kcal    float64
	Carbs   float64
	Fat     float64
	Protein float64
}

var localTable = map[string]Facts{
	"banana":         {Kcal: 89, Carbs: 23, Fat: 0.3, Protein: 1.1},
	"apple":          {Kcal: 52, Carbs: 14, Fat: 0.2, Protein: 0.3},
	"egg":            {Kcal: 155, Carbs: 1.1, Fat: 11, Protein: 13},
	"milk":           {Kcal: 61, Carbs: 4.8, Fat: 3.3, Protein: 3.2},
	"flour":          {Kcal: 364, Carbs: 76, Fat: 1, Protein: 10},
	"sugar":          {Kcal: 387, Carbs: 100, Fat: 0, Protein: 0},
	"butter":         {Kcal: 717, Carbs: 0.1, Fat: 81, Protein: 0.9},
	"olive oil":      {Kcal: 884, Carbs: 0, Fat: 100, Protein: 0},
	"chicken breast": {Kcal: 165, Carbs: 0, Fat: 3.6, Protein: 31},
	"beef":           {Kcal: 250, Carbs: 0, Fat: 15, Protein: 26},
	"salmon":         {Kcal: 208, Carbs: 0, Fat: 13, Protein: 20},
	"rice":           {Kcal: 130, Carbs: 28, Fat: 0.3, Protein: 2.7},
	"pasta":          {Kcal: 131, Carbs: 25, Fat: 1.1, Protein: 5},
	"oats":           {Kcal: 389, Carbs: 66, Fat: 6.9, Protein: 17},
	"potato":         {Kcal: 77, Carbs: 17, Fat: 0.1, Protein: 2},
	"tomato":         {Kcal: 18, Carbs: 3.9, Fat: 0.2, Protein: 0.9},
	"onion":          {Kcal: 40, Carbs: 9.3, Fat: 0.1, Protein: 1.1},
	"carrot":         {Kcal: 41, Carbs: 9.6, Fat: 0.2, Protein: 0.9},
	"broccoli":       {Kcal: 34, Carbs: 6.6, Fat: 0.4, Protein: 2.8},
	"spinach":        {Kcal: 23, Carbs: 3.6, Fat: 0.4, Protein: 2.9},
	"avocado":        {Kcal: 160, Carbs: 8.5, Fat: 15, Protein: 2},
	"cheese":         {Kcal: 402, Carbs: 1.3, Fat: 33, Protein: 25},
	"yogurt":         {Kcal: 59, Carbs: 3.6, Fat: 0.4, Protein: 10},
	"honey":          {Kcal: 304, Carbs: 82, Fat: 0, Protein: 0.3},
	"peanut butter":  {Kcal: 588, Carbs: 20, Fat: 50, Protein: 25},
	"almond":         {Kcal: 579, Carbs: 22, Fat: 50, Protein: 21},
	"chickpea":       {Kcal: 164, Carbs: 27, Fat: 2.6, Protein: 8.9},
	"lentil":         {Kcal: 116, Carbs: 20, Fat: 0.4, Protein: 9},
	"tofu":           {Kcal: 76, Carbs: 1.9, Fat: 4.8, Protein: 8},
	"bread":          {Kcal: 265, Carbs: 49, Fat: 3.2, Protein: 9},
	"chocolate":      {Kcal: 546, Carbs: 61, Fat: 31, Protein: 4.9},
}

// Lookup finds macros for an ingredient name in the local table. The
// name is singularized first, and a word-level match backs up the exact
// one so "ripe banana" still resolves.
func Lookup(name string) (Facts, bool) {
	key := textutil.Singularize(strings.ToLower(strings.TrimSpace(name)))
	if facts, ok := localTable[key]; ok {
		return facts, true
	}

	words := strings.Fields(key)
	for i := len(words) - 1; i >= 0; i-- {
		if facts, ok := localTable[textutil.Singularize(words[i])]; ok {
			return facts, true
		}
	}
	return Facts{}, false
}
