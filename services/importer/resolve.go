package importer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"recipevault/lib/textutil"
	"recipevault/lib/units"
	"recipevault/services/nutrition"
	"recipevault/services/recipe/ingredients"

	"github.com/antzucaro/matchr"
)

// GroceryResolver maps free-form ingredient names onto grocery catalog
// items. Resolution order: in-memory cache, persisted name mappings,
// exact title match, fuzzy search with interactive disambiguation, and
// finally interactive creation.
type GroceryResolver struct {
	catalog  Catalog
	mappings *Mappings
	prompts  Resolver
	splitter *ingredients.Splitter
	fdc      *nutrition.FdcClient
	cache    map[string]GroceryItem
}

func NewGroceryResolver(catalog Catalog, mappings *Mappings, prompts Resolver, splitter *ingredients.Splitter) *GroceryResolver {
	return &GroceryResolver{
		catalog:  catalog,
		mappings: mappings,
		prompts:  prompts,
		splitter: splitter,
		cache:    map[string]GroceryItem{},
	}
}

// Resolve finds or creates the grocery item for an ingredient name.
// The returned description holds adjectives split off the name, they
// belong in the ingredient's observation rather than the catalog.
func (r *GroceryResolver) Resolve(ctx context.Context, rawName string) (GroceryItem, string, error) {
	// a mapping on the whole phrase wins over adjective splitting,
	// compound names like "green onion" may be aliases themselves
	fullKey := textutil.Singularize(strings.ToLower(strings.TrimSpace(rawName)))
	if item, ok := r.cache[fullKey]; ok {
		return item, "", nil
	}
	if mapped, ok, err := r.mappings.ResolveName(fullKey); err == nil && ok {
		item, found, err := r.catalog.FindByName(ctx, mapped)
		if err != nil {
			return GroceryItem{}, "", fmt.Errorf("find grocery %q: %w", mapped, err)
		}
		if found {
			r.cache[fullKey] = item
			return item, "", nil
		}
	}

	base, desc := r.splitter.Split(rawName)
	key := textutil.Singularize(base)

	if item, ok := r.cache[key]; ok {
		return item, desc, nil
	}

	lookup := key
	mapped, ok, err := r.mappings.ResolveName(key)
	if err != nil {
		// broken chain in the data, fall back to the raw name
		slog.Warn("grocery mapping chain is cyclic", "name", key, "err", err)
	} else if ok {
		lookup = mapped
	}

	item, found, err := r.catalog.FindByName(ctx, lookup)
	if err != nil {
		return GroceryItem{}, "", fmt.Errorf("find grocery %q: %w", lookup, err)
	}
	if found {
		r.cache[key] = item
		return item, desc, nil
	}

	item, found, err = r.disambiguate(ctx, key, lookup)
	if err != nil {
		return GroceryItem{}, "", err
	}
	if found {
		r.cache[key] = item
		return item, desc, nil
	}

	item, err = r.create(ctx, key, lookup)
	if err != nil {
		return GroceryItem{}, "", err
	}
	r.cache[key] = item
	return item, desc, nil
}

// disambiguate searches the catalog for partial title matches and asks
// the user to pick one. The chosen mapping is remembered.
func (r *GroceryResolver) disambiguate(ctx context.Context, key, name string) (GroceryItem, bool, error) {
	candidates, err := r.catalog.Search(ctx, name)
	if err != nil {
		return GroceryItem{}, false, fmt.Errorf("search grocery %q: %w", name, err)
	}
	if len(candidates) == 0 {
		return GroceryItem{}, false, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return matchr.JaroWinkler(name, strings.ToLower(candidates[i].Name), true) >
			matchr.JaroWinkler(name, strings.ToLower(candidates[j].Name), true)
	})

	options := make([]string, len(candidates))
	for i, c := range candidates {
		options[i] = fmt.Sprintf("%s (%s)", c.Name, c.Unit)
	}
	choice, err := r.prompts.Select(
		fmt.Sprintf("grocery item for %q", name), options)
	if err != nil {
		return GroceryItem{}, false, err
	}
	if choice < 0 {
		return GroceryItem{}, false, nil
	}

	chosen := candidates[choice]
	if mappingKey(chosen.Name) != key {
		r.mappings.AddName(key, chosen.Name)
	}
	return chosen, true, nil
}

// SetNutritionClient enables FoodData Central lookups for items the
// local macro table does not know.
func (r *GroceryResolver) SetNutritionClient(client *nutrition.FdcClient) {
	r.fdc = client
}

// create adds a missing item to the catalog, either silently when auto
// creation is enabled or through a round of prompts.
func (r *GroceryResolver) create(ctx context.Context, key, name string) (GroceryItem, error) {
	item := GroceryItem{
		Name: textutil.Capitalize(textutil.Singularize(name)),
		Unit: units.Piece,
	}
	if facts, ok := nutrition.Lookup(name); ok {
		item.Facts = facts
		item.HasFacts = true
	}

	if !r.mappings.AutoCreate.Enabled {
		ok, err := r.prompts.Confirm(fmt.Sprintf("create grocery item %q", item.Name))
		if err != nil {
			return GroceryItem{}, err
		}
		if !ok {
			return GroceryItem{}, fmt.Errorf("%q: %w", name, ErrSkipped)
		}

		unit, err := r.prompts.Input(fmt.Sprintf("unit for %q (default piece)", item.Name))
		if err != nil {
			return GroceryItem{}, err
		}
		if unit != "" {
			item.Unit = units.Normalize(unit)
		}

		second, err := r.prompts.Input("second unit (empty for none)")
		if err != nil {
			return GroceryItem{}, err
		}
		if second != "" {
			item.SecondUnit = units.Normalize(second)
			item.Conversion, err = r.prompts.InputNumber(fmt.Sprintf(
				"how many %s in one %s", item.Unit, item.SecondUnit))
			if err != nil {
				return GroceryItem{}, err
			}
		}

		category, err := r.prompts.Input("category (empty for none)")
		if err != nil {
			return GroceryItem{}, err
		}
		item.Category = category

		if !item.HasFacts && r.fdc != nil {
			err = r.lookupFacts(ctx, &item)
			if err != nil {
				return GroceryItem{}, err
			}
		}
	}

	created, err := r.catalog.Create(ctx, item)
	if err != nil {
		return GroceryItem{}, fmt.Errorf("create grocery %q: %w", item.Name, err)
	}
	slog.Info("created grocery item", "name", created.Name, "unit", created.Unit)

	if mappingKey(created.Name) != key {
		r.mappings.AddName(key, created.Name)
	}
	return created, nil
}

// lookupFacts searches FoodData Central and lets the user pick the food
// whose macros should go on the new item. Search failures are logged,
// not fatal, nutrition stays optional.
func (r *GroceryResolver) lookupFacts(ctx context.Context, item *GroceryItem) error {
	results, err := r.fdc.Search(ctx, item.Name, 5)
	if err != nil {
		slog.Warn("nutrition search failed", "name", item.Name, "err", err)
		return nil
	}
	if len(results) == 0 {
		return nil
	}

	options := make([]string, len(results))
	for i, res := range results {
		options[i] = fmt.Sprintf("%s (%s, %.0f kcal)",
			res.Description, res.DataType, res.Facts.Kcal)
	}
	choice, err := r.prompts.Select(
		fmt.Sprintf("nutrition facts for %q", item.Name), options)
	if err != nil {
		return err
	}
	if choice < 0 {
		return nil
	}
	item.Facts = results[choice].Facts
	item.HasFacts = true
	return nil
}

// SeedSplitter registers catalog names with the adjective splitter so
// known multi-word foods are never torn apart.
func (r *GroceryResolver) SeedSplitter(items []GroceryItem) {
	for _, item := range items {
		r.splitter.AddKnown(item.Name)
	}
}
