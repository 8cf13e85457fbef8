package importer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"recipevault/lib/textutil"
	"recipevault/services/recipe"
)

// ReconcileResult counts what a reconciliation pass did.
type ReconcileResult struct {
	Created   int
	Updated   int
	Archived  int
	Unchanged int
}

// rowKey identifies an ingredient row within one recipe regardless of
// cosmetic spelling differences.
func rowKey(groceryId, name string) string {
	return groceryId + ":" + textutil.Singularize(strings.ToLower(name))
}

// ReconcileIngredients brings the recipe's ingredient rows in line with
// the parsed recipe. Existing rows are matched by grocery item and
// singularized name: matching rows are updated in place, missing ones
// created, leftovers archived. Running it twice in a row is a no-op.
func (s *Service) ReconcileIngredients(ctx context.Context, recipeId string, r recipe.Recipe) (ReconcileResult, error) {
	var result ReconcileResult

	existing, err := s.ingredients.ListForRecipe(ctx, recipeId)
	if err != nil {
		return result, fmt.Errorf("list ingredients: %w", err)
	}

	remaining := map[string]IngredientRow{}
	for _, row := range existing {
		remaining[rowKey(row.GroceryId, row.Name)] = row
	}

	for gi, group := range r.Groups {
		for _, ing := range group.Ingredients {
			item, desc, err := s.resolver.Resolve(ctx, ing.Name)
			if err != nil {
				return result, err
			}

			resolved, err := s.validateUnit(ctx, ing, &item)
			if err != nil {
				return result, err
			}

			obs := joinObs(ing.Observation, desc, resolved.ExtraObs)
			want := IngredientRow{
				Name:        textutil.Capitalize(ing.Key()),
				GroceryId:   item.Id,
				Quantity:    resolved.Quantity,
				HasQuantity: resolved.HasQuantity,
				Unit:        resolved.Unit,
				Obs:         obs,
				Separator:   gi + 1,
			}

			key := rowKey(item.Id, ing.Name)
			current, ok := remaining[key]
			if !ok {
				_, err := s.ingredients.Create(ctx, recipeId, want)
				if err != nil {
					return result, fmt.Errorf("create ingredient %q: %w", want.Name, err)
				}
				result.Created++
				continue
			}
			delete(remaining, key)

			if current.Quantity == want.Quantity &&
				current.HasQuantity == want.HasQuantity &&
				current.Unit == want.Unit &&
				current.Obs == want.Obs &&
				current.Separator == want.Separator {
				result.Unchanged++
				continue
			}
			want.Id = current.Id
			err = s.ingredients.Update(ctx, want)
			if err != nil {
				return result, fmt.Errorf("update ingredient %q: %w", want.Name, err)
			}
			result.Updated++
		}
	}

	for _, row := range remaining {
		err := s.ingredients.Archive(ctx, row.Id)
		if err != nil {
			return result, fmt.Errorf("archive ingredient %q: %w", row.Name, err)
		}
		result.Archived++
	}

	slog.Info("reconciled ingredients",
		"recipe", r.Title,
		"created", result.Created,
		"updated", result.Updated,
		"archived", result.Archived,
		"unchanged", result.Unchanged,
	)
	return result, nil
}

func joinObs(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, strings.TrimSpace(p))
		}
	}
	return strings.Join(kept, ", ")
}

// CleanupDuplicates archives redundant ingredient rows that point at
// the same grocery item under the same singularized name, keeping the
// first of each run.
func (s *Service) CleanupDuplicates(ctx context.Context, recipeId string) (int, error) {
	rows, err := s.ingredients.ListForRecipe(ctx, recipeId)
	if err != nil {
		return 0, fmt.Errorf("list ingredients: %w", err)
	}

	seen := map[string]bool{}
	archived := 0
	for _, row := range rows {
		key := rowKey(row.GroceryId, row.Name)
		if !seen[key] {
			seen[key] = true
			continue
		}
		err := s.ingredients.Archive(ctx, row.Id)
		if err != nil {
			return archived, fmt.Errorf("archive duplicate %q: %w", row.Name, err)
		}
		archived++
	}
	return archived, nil
}
