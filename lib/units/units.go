// Package units canonicalizes measurement unit spellings and converts
// quantities between volume and mass units through a small hop table
// anchored on milliliters and grams.
package units

import "strings"

// canonical unit names used across recipes and the grocery catalog.
const (
	Milliliter = "ml"
	Liter      = "l"
	Gram       = "g"
	Kilogram   = "kg"
	Piece      = "piece"
	Tablespoon = "tbsp"
	Teaspoon   = "tsp"
	Cup        = "cup"
)

var synonyms = map[string]string{
	"ml":          Milliliter,
	"milliliter":  Milliliter,
	"milliliters": Milliliter,
	"millilitre":  Milliliter,
	"millilitres": Milliliter,
	"cc":          Milliliter,

	"l":      Liter,
	"liter":  Liter,
	"liters": Liter,
	"litre":  Liter,
	"litres": Liter,

	"g":     Gram,
	"gr":    Gram,
	"gram":  Gram,
	"grams": Gram,

	"kg":        Kilogram,
	"kilo":      Kilogram,
	"kilos":     Kilogram,
	"kilogram":  Kilogram,
	"kilograms": Kilogram,

	"piece":  Piece,
	"pieces": Piece,
	"pc":     Piece,
	"pcs":    Piece,
	"unit":   Piece,
	"units":  Piece,
	"whole":  Piece,

	"tbsp":        Tablespoon,
	"tbs":         Tablespoon,
	"tablespoon":  Tablespoon,
	"tablespoons": Tablespoon,

	"tsp":       Teaspoon,
	"teaspoon":  Teaspoon,
	"teaspoons": Teaspoon,

	"cup":  Cup,
	"cups": Cup,

	"oz":     "oz",
	"ounce":  "oz",
	"ounces": "oz",

	"lb":     "lb",
	"lbs":    "lb",
	"pound":  "lb",
	"pounds": "lb",

	"fl oz":        "fl oz",
	"floz":         "fl oz",
	"fluid ounce":  "fl oz",
	"fluid ounces": "fl oz",

	"pint":  "pint",
	"pints": "pint",

	"quart":  "quart",
	"quarts": "quart",

	"gallon":  "gallon",
	"gallons": "gallon",
}

// Normalize maps a unit spelling onto its canonical form. Unknown units
// come back lowercased and trimmed so they still compare consistently.
func Normalize(unit string) string {
	unit = strings.ToLower(strings.TrimSpace(unit))
	unit = strings.TrimSuffix(unit, ".")
	if canonical, ok := synonyms[unit]; ok {
		return canonical
	}
	return unit
}

// Match reports whether two unit spellings refer to the same canonical
// unit. Empty strings never match anything, including each other.
func Match(a, b string) bool {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return false
	}
	return Normalize(a) == Normalize(b)
}

type hop struct {
	target string
	factor float64
}

// each unit converts to exactly one intermediate. two units are
// convertible when their chains bottom out at the same anchor (ml or g).
var hops = map[string]hop{
	"cup":    {target: "ml", factor: 240},
	"tsp":    {target: "ml", factor: 5},
	"tbsp":   {target: "ml", factor: 15},
	"fl oz":  {target: "ml", factor: 30},
	"pint":   {target: "cup", factor: 2},
	"quart":  {target: "ml", factor: 946},
	"gallon": {target: "ml", factor: 3785},
	"l":      {target: "ml", factor: 1000},
	"oz":     {target: "g", factor: 28.35},
	"lb":     {target: "g", factor: 453.6},
	"kg":     {target: "g", factor: 1000},
}

// resolve follows the hop chain down to an anchor unit, returning the
// anchor name and the cumulative multiplier. at most two hops exist in
// the table but the walk is generic.
func resolve(unit string) (string, float64) {
	factor := 1.0
	for i := 0; i < len(hops); i++ {
		h, ok := hops[unit]
		if !ok {
			return unit, factor
		}
		factor *= h.factor
		unit = h.target
	}
	return unit, factor
}

// Convert transforms a quantity from one unit to another. It reports
// false when the two units do not share an anchor, such as converting
// a volume to a mass.
func Convert(qty float64, from, to string) (float64, bool) {
	from = Normalize(from)
	to = Normalize(to)
	if from == to {
		return qty, true
	}

	fromAnchor, fromFactor := resolve(from)
	toAnchor, toFactor := resolve(to)
	if fromAnchor != toAnchor {
		return 0, false
	}
	return qty * fromFactor / toFactor, true
}

// Convertible reports whether Convert would succeed for the given pair.
func Convertible(from, to string) bool {
	_, ok := Convert(1, from, to)
	return ok
}
