package importer

import (
	"context"
	"fmt"

	"recipevault/lib/units"
	"recipevault/services/recipe"
)

// resolvedQuantity is an ingredient amount expressed in a unit the
// grocery item accepts.
type resolvedQuantity struct {
	Quantity float64
	// HasQuantity is false for "to taste" ingredients and for amounts
	// preserved as text, their rows store no number.
	HasQuantity bool
	Unit        string
	// ExtraObs carries the raw amount when it had to be preserved as
	// text instead of converted.
	ExtraObs string
}

// validateUnit reconciles an ingredient's unit with its grocery item.
// The fallback chain: direct match against the primary or second unit,
// automatic conversion, a previously recorded manual factor, a manual
// factor entered now, adopting the unit as the item's second unit,
// preserving the raw amount in the observation, and finally aborting.
func (s *Service) validateUnit(ctx context.Context, ing recipe.Ingredient, item *GroceryItem) (resolvedQuantity, error) {
	if !ing.HasQuantity {
		return resolvedQuantity{}, nil
	}

	unit := units.Normalize(ing.Unit)
	if units.Match(unit, item.Unit) {
		return resolvedQuantity{Quantity: ing.Quantity, HasQuantity: true, Unit: item.Unit}, nil
	}
	if item.SecondUnit != "" && units.Match(unit, item.SecondUnit) {
		return resolvedQuantity{Quantity: ing.Quantity, HasQuantity: true, Unit: item.SecondUnit}, nil
	}

	if converted, ok := units.Convert(ing.Quantity, unit, item.Unit); ok {
		return resolvedQuantity{Quantity: converted, HasQuantity: true, Unit: item.Unit}, nil
	}

	if factor, ok := s.mappings.Conversion(item.Name, unit, item.Unit); ok {
		return resolvedQuantity{Quantity: ing.Quantity * factor, HasQuantity: true, Unit: item.Unit}, nil
	}

	ok, err := s.prompts.Confirm(fmt.Sprintf(
		"%q is measured in %s but %q uses %s. enter a conversion factor",
		ing.Name, unit, item.Name, item.Unit))
	if err != nil {
		return resolvedQuantity{}, err
	}
	if ok {
		factor, err := s.prompts.InputNumber(fmt.Sprintf(
			"how many %s in one %s", item.Unit, unit))
		if err != nil {
			return resolvedQuantity{}, err
		}
		s.mappings.AddConversion(item.Name, unit, item.Unit, factor)
		return resolvedQuantity{Quantity: ing.Quantity * factor, HasQuantity: true, Unit: item.Unit}, nil
	}

	if item.SecondUnit == "" {
		ok, err := s.prompts.Confirm(fmt.Sprintf(
			"add %s as a second unit of %q", unit, item.Name))
		if err != nil {
			return resolvedQuantity{}, err
		}
		if ok {
			factor, err := s.prompts.InputNumber(fmt.Sprintf(
				"how many %s in one %s", item.Unit, unit))
			if err != nil {
				return resolvedQuantity{}, err
			}
			err = s.catalog.SetSecondUnit(ctx, item.Id, unit, factor)
			if err != nil {
				return resolvedQuantity{}, fmt.Errorf("set second unit: %w", err)
			}
			item.SecondUnit = unit
			item.Conversion = factor
			return resolvedQuantity{Quantity: ing.Quantity, HasQuantity: true, Unit: unit}, nil
		}
	}

	ok, err = s.prompts.Confirm("keep the raw amount in the observation field")
	if err != nil {
		return resolvedQuantity{}, err
	}
	if ok {
		return resolvedQuantity{
			Unit:     item.Unit,
			ExtraObs: ing.Line(),
		}, nil
	}

	return resolvedQuantity{}, fmt.Errorf("%q (%s vs %s): %w",
		ing.Name, unit, item.Unit, ErrUnitMismatch)
}
