package recipe

import (
	"fmt"
	"regexp"
	"strings"

	"recipevault/lib/textutil"
	"recipevault/lib/units"
)

// non-catalog units that still count as a measurement word when they
// follow a quantity.
var looseUnits = map[string]bool{
	"pinch":   true,
	"handful": true,
	"slice":   true,
	"clove":   true,
	"bunch":   true,
	"sprig":   true,
	"stick":   true,
	"dash":    true,
	"drop":    true,
	"scoop":   true,
	"fillet":  true,
}

// packaging words that act as the unit in lines like "1 can of beans".
var containerWords = map[string]bool{
	"can":       true,
	"jar":       true,
	"pack":      true,
	"package":   true,
	"bag":       true,
	"box":       true,
	"bottle":    true,
	"tin":       true,
	"container": true,
	"carton":    true,
}

func isUnitWord(word string) bool {
	singular := textutil.Singularize(word)
	if looseUnits[singular] {
		return true
	}
	normalized := units.Normalize(word)
	switch normalized {
	case units.Milliliter, units.Liter, units.Gram, units.Kilogram,
		units.Piece, units.Tablespoon, units.Teaspoon, units.Cup,
		"oz", "lb", "fl oz", "pint", "quart", "gallon":
		return true
	}
	return false
}

var (
	bracketRegex    = regexp.MustCompile(`^\[\s*([0-9 ./]+?)\s*([a-zA-Z][a-zA-Z .]*)?\]\s*(.*)$`)
	parenRegex      = regexp.MustCompile(`\(([^)]*)\)`)
	leadingQtyRegex = regexp.MustCompile(`^(\d+\s+\d+/\d+|\d+/\d+|\d+(?:\.\d+)?)\s+(.*)$`)
)

// splitNameObservation separates the descriptive tail of an ingredient
// from its name. Parenthetical remarks and everything after the first
// comma become the observation, the name is what remains.
func splitNameObservation(text string) (string, string) {
	var obsParts []string
	for _, m := range parenRegex.FindAllStringSubmatch(text, -1) {
		remark := strings.TrimSpace(m[1])
		if remark != "" {
			obsParts = append(obsParts, remark)
		}
	}
	text = parenRegex.ReplaceAllString(text, "")

	name, obs, found := strings.Cut(text, ",")
	if found {
		obs = strings.TrimSpace(obs)
		if obs != "" {
			obsParts = append([]string{obs}, obsParts...)
		}
	}
	return strings.TrimSpace(name), strings.Join(obsParts, ", ")
}

// ParseIngredient reads a single ingredient line in any of the accepted
// shapes, in priority order:
//
//  1. bracketed: "[2 tbsp] olive oil, extra virgin"
//  2. legacy:    "2 tbsp olive oil" or "1 can of chickpeas"
//  3. bare:      "salt"
//
// It reports false for blank lines and comments. Names keep the form
// they had on the line; singularizing and capitalizing happen when
// rows are written to the catalog.
func ParseIngredient(line string) (Ingredient, bool) {
	line = strings.TrimSpace(textutil.ReplaceFractions(line))
	if line == "" || strings.HasPrefix(line, "#") {
		return Ingredient{}, false
	}

	if m := bracketRegex.FindStringSubmatch(line); m != nil {
		qty, ok := textutil.ParseQuantity(m[1])
		if ok {
			unit := units.Normalize(m[2])
			if unit == "" {
				unit = units.Piece
			}
			name, obs := splitNameObservation(m[3])
			if name != "" {
				return Ingredient{
					Name:        name,
					Quantity:    qty,
					HasQuantity: true,
					Unit:        unit,
					Observation: obs,
				}, true
			}
		}
	}

	if m := leadingQtyRegex.FindStringSubmatch(line); m != nil {
		qty, _ := textutil.ParseQuantity(m[1])
		rest := strings.TrimSpace(m[2])
		fields := strings.Fields(rest)

		unit := units.Piece
		if len(fields) > 1 {
			first := fields[0]
			switch {
			case isUnitWord(first):
				unit = units.Normalize(first)
				if looseUnits[textutil.Singularize(first)] {
					unit = textutil.Singularize(first)
				}
				rest = strings.Join(fields[1:], " ")
			case containerWords[textutil.Singularize(first)]:
				unit = textutil.Singularize(first)
				fields = fields[1:]
				if len(fields) > 0 && strings.EqualFold(fields[0], "of") {
					fields = fields[1:]
				}
				rest = strings.Join(fields, " ")
			}
		}
		// "of" after a real unit: "2 cups of flour"
		if strings.HasPrefix(strings.ToLower(rest), "of ") && unit != units.Piece {
			rest = rest[3:]
		}

		name, obs := splitNameObservation(rest)
		if name != "" {
			return Ingredient{
				Name:        name,
				Quantity:    qty,
				HasQuantity: true,
				Unit:        unit,
				Observation: obs,
			}, true
		}
	}

	name, obs := splitNameObservation(line)
	if name == "" {
		return Ingredient{}, false
	}
	return Ingredient{Name: name, Observation: obs}, true
}

// Line renders the ingredient back into the bracketed interchange form.
// Parsing the result yields an equal Ingredient.
func (i Ingredient) Line() string {
	var b strings.Builder
	if i.HasQuantity {
		unit := i.Unit
		if unit == "" {
			unit = units.Piece
		}
		fmt.Fprintf(&b, "[%s %s] ", textutil.FormatQuantity(i.Quantity), unit)
	}
	b.WriteString(i.Name)
	if i.Observation != "" {
		b.WriteString(", ")
		b.WriteString(i.Observation)
	}
	return b.String()
}
