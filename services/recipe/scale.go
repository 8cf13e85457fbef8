package recipe

import (
	"recipevault/lib/textutil"
	"recipevault/lib/units"
)

// ScaleLine rescales a bracketed ingredient line to a single serving.
// Lines that carry no parseable quantity, and quantities that would
// collapse to zero at the display precision, come back unchanged.
func ScaleLine(line string, servings int) string {
	if servings <= 1 {
		return line
	}
	ing, ok := ParseIngredient(line)
	if !ok || !ing.HasQuantity {
		return line
	}

	scaled := ing.Quantity / float64(servings)
	if textutil.FormatQuantity(scaled) == "0" {
		return line
	}
	ing.Quantity = scaled
	return ing.Line()
}

// ConvertLine rewrites an ingredient line whose unit lies outside the
// grocery catalog into the metric equivalent, ounces into grams and cup
// measures into milliliters. Catalog units pass through untouched.
func ConvertLine(line string) string {
	ing, ok := ParseIngredient(line)
	if !ok || !ing.HasQuantity {
		return line
	}

	var target string
	switch units.Normalize(ing.Unit) {
	case "oz", "lb":
		target = units.Gram
	case units.Cup, "fl oz", "pint", "quart", "gallon":
		target = units.Milliliter
	default:
		return line
	}

	converted, ok := units.Convert(ing.Quantity, ing.Unit, target)
	if !ok {
		return line
	}
	ing.Quantity = converted
	ing.Unit = target
	return ing.Line()
}
