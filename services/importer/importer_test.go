package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"recipevault/services/recipe"

	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	items   map[string]GroceryItem
	created []string
	nextId  int
}

func newFakeCatalog(items ...GroceryItem) *fakeCatalog {
	c := &fakeCatalog{items: map[string]GroceryItem{}}
	for _, item := range items {
		c.items[strings.ToLower(item.Name)] = item
	}
	return c
}

func (c *fakeCatalog) FindByName(_ context.Context, name string) (GroceryItem, bool, error) {
	item, ok := c.items[strings.ToLower(name)]
	return item, ok, nil
}

func (c *fakeCatalog) Search(_ context.Context, name string) ([]GroceryItem, error) {
	var out []GroceryItem
	for _, item := range c.items {
		if strings.Contains(strings.ToLower(item.Name), strings.ToLower(name)) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (c *fakeCatalog) Create(_ context.Context, item GroceryItem) (GroceryItem, error) {
	c.nextId++
	item.Id = fmt.Sprintf("g-%d", c.nextId)
	c.items[strings.ToLower(item.Name)] = item
	c.created = append(c.created, item.Name)
	return item, nil
}

func (c *fakeCatalog) SetSecondUnit(_ context.Context, id, unit string, factor float64) error {
	for key, item := range c.items {
		if item.Id == id {
			item.SecondUnit = unit
			item.Conversion = factor
			c.items[key] = item
		}
	}
	return nil
}

type fakeStore struct {
	rows     map[string][]IngredientRow
	creates  int
	updates  int
	archives int
	nextId   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[string][]IngredientRow{}}
}

func (s *fakeStore) ListForRecipe(_ context.Context, recipeId string) ([]IngredientRow, error) {
	return append([]IngredientRow{}, s.rows[recipeId]...), nil
}

func (s *fakeStore) Create(_ context.Context, recipeId string, row IngredientRow) (IngredientRow, error) {
	s.nextId++
	row.Id = fmt.Sprintf("i-%d", s.nextId)
	s.rows[recipeId] = append(s.rows[recipeId], row)
	s.creates++
	return row, nil
}

func (s *fakeStore) Update(_ context.Context, row IngredientRow) error {
	for recipeId, rows := range s.rows {
		for i := range rows {
			if rows[i].Id == row.Id {
				s.rows[recipeId][i] = row
			}
		}
	}
	s.updates++
	return nil
}

func (s *fakeStore) Archive(_ context.Context, id string) error {
	for recipeId, rows := range s.rows {
		var kept []IngredientRow
		for _, row := range rows {
			if row.Id != id {
				kept = append(kept, row)
			}
		}
		s.rows[recipeId] = kept
	}
	s.archives++
	return nil
}

// scriptResolver answers prompts from queues and fails the test when a
// prompt arrives with nothing queued.
type scriptResolver struct {
	t        *testing.T
	confirms []bool
	selects  []int
	inputs   []string
	numbers  []float64
}

func (r *scriptResolver) Confirm(prompt string) (bool, error) {
	if len(r.confirms) == 0 {
		r.t.Fatalf("unexpected confirm prompt: %s", prompt)
	}
	v := r.confirms[0]
	r.confirms = r.confirms[1:]
	return v, nil
}

func (r *scriptResolver) Select(prompt string, options []string) (int, error) {
	if len(r.selects) == 0 {
		r.t.Fatalf("unexpected select prompt: %s %v", prompt, options)
	}
	v := r.selects[0]
	r.selects = r.selects[1:]
	return v, nil
}

func (r *scriptResolver) Input(prompt string) (string, error) {
	if len(r.inputs) == 0 {
		r.t.Fatalf("unexpected input prompt: %s", prompt)
	}
	v := r.inputs[0]
	r.inputs = r.inputs[1:]
	return v, nil
}

func (r *scriptResolver) InputNumber(prompt string) (float64, error) {
	if len(r.numbers) == 0 {
		r.t.Fatalf("unexpected number prompt: %s", prompt)
	}
	v := r.numbers[0]
	r.numbers = r.numbers[1:]
	return v, nil
}

func testService(t *testing.T, catalog Catalog, store IngredientStore, prompts Resolver) *Service {
	t.Helper()
	mappings, err := LoadMappings(filepath.Join(t.TempDir(), "mappings.json"))
	require.NoError(t, err)

	s, err := NewService(ServiceOptions{
		Config:      Config{MappingsFile: mappings.path},
		Catalog:     catalog,
		Ingredients: store,
		Mappings:    mappings,
		Prompts:     prompts,
	})
	require.NoError(t, err)
	return s
}

func TestMappingsPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.json")

	m, err := LoadMappings(path)
	require.NoError(t, err)
	m.AddName("green onion", "Scallion")
	m.AddConversion("Flour", "cup", "g", 120)
	require.NoError(t, m.Flush())

	reloaded, err := LoadMappings(path)
	require.NoError(t, err)

	name, ok, err := reloaded.ResolveName("Green Onion")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Scallion", name)

	factor, ok := reloaded.Conversion("Flour", "cup", "g")
	require.True(t, ok)
	require.Equal(t, float64(120), factor)
}

func TestMappingsChainAndCycle(t *testing.T) {
	m, err := LoadMappings(filepath.Join(t.TempDir(), "mappings.json"))
	require.NoError(t, err)

	m.AddName("spring onion", "green onion")
	m.AddName("green onion", "Scallion")
	name, ok, err := m.ResolveName("spring onion")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Scallion", name)

	m.AddName("a", "b")
	m.AddName("b", "c")
	m.AddName("c", "a")
	_, _, err = m.ResolveName("a")
	require.Error(t, err)
}

func TestResolveMappedNameWithoutPrompt(t *testing.T) {
	catalog := newFakeCatalog(GroceryItem{Id: "g-1", Name: "Scallion", Unit: "piece"})
	s := testService(t, catalog, newFakeStore(), &scriptResolver{t: t})
	s.mappings.AddName("green onion", "Scallion")

	item, _, err := s.resolver.Resolve(context.Background(), "green onions")
	require.NoError(t, err)
	require.Equal(t, "g-1", item.Id)
}

func TestResolveCreatesWithAutoCreate(t *testing.T) {
	catalog := newFakeCatalog()
	s := testService(t, catalog, newFakeStore(), &scriptResolver{t: t})
	s.mappings.AutoCreate.Enabled = true

	item, desc, err := s.resolver.Resolve(context.Background(), "large ripe bananas")
	require.NoError(t, err)
	require.Equal(t, "Banana", item.Name)
	require.Equal(t, "large, ripe", desc)
	require.Equal(t, []string{"Banana"}, catalog.created)

	// second resolve hits the cache, no second create
	again, _, err := s.resolver.Resolve(context.Background(), "banana")
	require.NoError(t, err)
	require.Equal(t, item.Id, again.Id)
	require.Len(t, catalog.created, 1)
}

func TestResolveDisambiguateRecordsMapping(t *testing.T) {
	catalog := newFakeCatalog(
		GroceryItem{Id: "g-1", Name: "Red Onion", Unit: "piece"},
		GroceryItem{Id: "g-2", Name: "Onion", Unit: "piece"},
	)
	prompts := &scriptResolver{t: t, selects: []int{0}}
	s := testService(t, catalog, newFakeStore(), prompts)

	item, _, err := s.resolver.Resolve(context.Background(), "onio")
	require.NoError(t, err)
	// jaro-winkler puts the closer title first
	require.Equal(t, "Onion", item.Name)

	mapped, ok, err := s.mappings.ResolveName("onio")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Onion", mapped)
}

func pancakes() recipe.Recipe {
	return recipe.ParseDocument(`=== Pancakes ===
Servings: 2

[2] eggs
[100 g] flour

[topping]
[1] banana
`)[0]
}

func TestReconcileIdempotent(t *testing.T) {
	catalog := newFakeCatalog(
		GroceryItem{Id: "g-egg", Name: "Egg", Unit: "piece"},
		GroceryItem{Id: "g-flour", Name: "Flour", Unit: "g"},
		GroceryItem{Id: "g-banana", Name: "Banana", Unit: "piece"},
	)
	store := newFakeStore()
	s := testService(t, catalog, store, &scriptResolver{t: t})

	first, err := s.ReconcileIngredients(context.Background(), "r-1", pancakes())
	require.NoError(t, err)
	require.Equal(t, ReconcileResult{Created: 3}, first)

	second, err := s.ReconcileIngredients(context.Background(), "r-1", pancakes())
	require.NoError(t, err)
	require.Equal(t, ReconcileResult{Unchanged: 3}, second)
	require.Equal(t, 3, store.creates)
	require.Equal(t, 0, store.updates)
	require.Equal(t, 0, store.archives)

	rows, err := store.ListForRecipe(context.Background(), "r-1")
	require.NoError(t, err)
	separators := map[string]int{}
	for _, row := range rows {
		separators[row.Name] = row.Separator
	}
	require.Equal(t, map[string]int{"Egg": 1, "Flour": 1, "Banana": 2}, separators)
}

func TestReconcileUpdatesAndArchives(t *testing.T) {
	catalog := newFakeCatalog(
		GroceryItem{Id: "g-egg", Name: "Egg", Unit: "piece"},
		GroceryItem{Id: "g-flour", Name: "Flour", Unit: "g"},
		GroceryItem{Id: "g-banana", Name: "Banana", Unit: "piece"},
	)
	store := newFakeStore()
	s := testService(t, catalog, store, &scriptResolver{t: t})

	_, err := s.ReconcileIngredients(context.Background(), "r-1", pancakes())
	require.NoError(t, err)

	changed := pancakes()
	changed.Groups[0].Ingredients[1].Quantity = 150 // flour
	changed.Groups = changed.Groups[:1]             // drop the topping group

	result, err := s.ReconcileIngredients(context.Background(), "r-1", changed)
	require.NoError(t, err)
	require.Equal(t, 1, result.Updated)
	require.Equal(t, 1, result.Unchanged)
	require.Equal(t, 1, result.Archived)
}

func TestReconcileGroupMoveUpdatesSeparator(t *testing.T) {
	catalog := newFakeCatalog(
		GroceryItem{Id: "g-egg", Name: "Egg", Unit: "piece"},
		GroceryItem{Id: "g-flour", Name: "Flour", Unit: "g"},
		GroceryItem{Id: "g-banana", Name: "Banana", Unit: "piece"},
	)
	store := newFakeStore()
	s := testService(t, catalog, store, &scriptResolver{t: t})

	_, err := s.ReconcileIngredients(context.Background(), "r-1", pancakes())
	require.NoError(t, err)

	moved := recipe.ParseDocument(`=== Pancakes ===
Servings: 2

[2] eggs
[100 g] flour
[1] banana
`)[0]
	result, err := s.ReconcileIngredients(context.Background(), "r-1", moved)
	require.NoError(t, err)
	require.Equal(t, ReconcileResult{Updated: 1, Unchanged: 2}, result)

	rows, err := store.ListForRecipe(context.Background(), "r-1")
	require.NoError(t, err)
	for _, row := range rows {
		require.Equal(t, 1, row.Separator, row.Name)
	}
}

func TestReconcileQuantityLessIngredient(t *testing.T) {
	catalog := newFakeCatalog(GroceryItem{Id: "g-salt", Name: "Salt", Unit: "g"})
	store := newFakeStore()
	s := testService(t, catalog, store, &scriptResolver{t: t})

	r := recipe.ParseDocument(`=== Seasoning ===

salt, to taste
`)[0]
	result, err := s.ReconcileIngredients(context.Background(), "r-1", r)
	require.NoError(t, err)
	require.Equal(t, ReconcileResult{Created: 1}, result)

	rows, err := store.ListForRecipe(context.Background(), "r-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.False(t, rows[0].HasQuantity)
	require.Equal(t, float64(0), rows[0].Quantity)
	require.Equal(t, "", rows[0].Unit)
}

func TestValidateUnit(t *testing.T) {
	flour := GroceryItem{Id: "g-flour", Name: "Flour", Unit: "g"}

	t.Run("direct match", func(t *testing.T) {
		s := testService(t, newFakeCatalog(), newFakeStore(), &scriptResolver{t: t})
		ing, _ := recipe.ParseIngredient("[100 g] flour")
		item := flour
		got, err := s.validateUnit(context.Background(), ing, &item)
		require.NoError(t, err)
		require.Equal(t, resolvedQuantity{Quantity: 100, HasQuantity: true, Unit: "g"}, got)
	})

	t.Run("auto conversion", func(t *testing.T) {
		s := testService(t, newFakeCatalog(), newFakeStore(), &scriptResolver{t: t})
		ing, _ := recipe.ParseIngredient("[1 lb] flour")
		item := flour
		got, err := s.validateUnit(context.Background(), ing, &item)
		require.NoError(t, err)
		require.InDelta(t, 453.6, got.Quantity, 1e-9)
		require.True(t, got.HasQuantity)
		require.Equal(t, "g", got.Unit)
	})

	t.Run("no quantity given", func(t *testing.T) {
		s := testService(t, newFakeCatalog(), newFakeStore(), &scriptResolver{t: t})
		ing, _ := recipe.ParseIngredient("salt")
		item := GroceryItem{Id: "g-salt", Name: "Salt", Unit: "g"}
		got, err := s.validateUnit(context.Background(), ing, &item)
		require.NoError(t, err)
		require.Equal(t, resolvedQuantity{}, got)
	})

	t.Run("second unit match", func(t *testing.T) {
		s := testService(t, newFakeCatalog(), newFakeStore(), &scriptResolver{t: t})
		ing, _ := recipe.ParseIngredient("[2 piece] egg")
		item := GroceryItem{Id: "g-egg", Name: "Egg", Unit: "g", SecondUnit: "piece", Conversion: 60}
		got, err := s.validateUnit(context.Background(), ing, &item)
		require.NoError(t, err)
		require.Equal(t, resolvedQuantity{Quantity: 2, HasQuantity: true, Unit: "piece"}, got)
	})

	t.Run("saved manual factor needs no prompt", func(t *testing.T) {
		s := testService(t, newFakeCatalog(), newFakeStore(), &scriptResolver{t: t})
		s.mappings.AddConversion("Flour", "cup", "g", 120)
		ing, _ := recipe.ParseIngredient("[2 cup] flour")
		item := flour
		got, err := s.validateUnit(context.Background(), ing, &item)
		require.NoError(t, err)
		require.Equal(t, resolvedQuantity{Quantity: 240, HasQuantity: true, Unit: "g"}, got)
	})

	t.Run("manual factor entered and remembered", func(t *testing.T) {
		prompts := &scriptResolver{t: t, confirms: []bool{true}, numbers: []float64{50}}
		s := testService(t, newFakeCatalog(), newFakeStore(), prompts)
		ing, _ := recipe.ParseIngredient("[2 piece] flour")
		item := flour
		got, err := s.validateUnit(context.Background(), ing, &item)
		require.NoError(t, err)
		require.Equal(t, resolvedQuantity{Quantity: 100, HasQuantity: true, Unit: "g"}, got)

		factor, ok := s.mappings.Conversion("Flour", "piece", "g")
		require.True(t, ok)
		require.Equal(t, float64(50), factor)
	})

	t.Run("second unit added to catalog", func(t *testing.T) {
		catalog := newFakeCatalog(flour)
		prompts := &scriptResolver{t: t, confirms: []bool{false, true}, numbers: []float64{120}}
		s := testService(t, catalog, newFakeStore(), prompts)
		ing, _ := recipe.ParseIngredient("[2 cup] flour")
		item := flour
		got, err := s.validateUnit(context.Background(), ing, &item)
		require.NoError(t, err)
		require.Equal(t, resolvedQuantity{Quantity: 2, HasQuantity: true, Unit: "cup"}, got)
		require.Equal(t, "cup", item.SecondUnit)

		stored, _, err := catalog.FindByName(context.Background(), "Flour")
		require.NoError(t, err)
		require.Equal(t, "cup", stored.SecondUnit)
	})

	t.Run("raw amount kept in observation", func(t *testing.T) {
		prompts := &scriptResolver{t: t, confirms: []bool{false, false, true}}
		s := testService(t, newFakeCatalog(), newFakeStore(), prompts)
		ing, _ := recipe.ParseIngredient("[2 cup] flour")
		item := flour
		got, err := s.validateUnit(context.Background(), ing, &item)
		require.NoError(t, err)
		require.False(t, got.HasQuantity)
		require.Equal(t, "g", got.Unit)
		require.Equal(t, "[2 cup] flour", got.ExtraObs)
	})

	t.Run("every remedy declined aborts", func(t *testing.T) {
		prompts := &scriptResolver{t: t, confirms: []bool{false, false, false}}
		s := testService(t, newFakeCatalog(), newFakeStore(), prompts)
		ing, _ := recipe.ParseIngredient("[2 cup] flour")
		item := flour
		_, err := s.validateUnit(context.Background(), ing, &item)
		require.ErrorIs(t, err, ErrUnitMismatch)
	})
}

func TestRowProperties(t *testing.T) {
	full := rowProperties(IngredientRow{Quantity: 100, HasQuantity: true, Unit: "g", Obs: "sifted", Separator: 2})
	require.Equal(t, float64(100), *full[ingredientPropQuantity].Number)
	require.Equal(t, "g", full[ingredientPropUnit].Select.Name)
	require.Equal(t, "2", full[ingredientPropSeparator].Select.Name)

	bare := rowProperties(IngredientRow{Obs: "to taste", Separator: 1})
	_, ok := bare[ingredientPropQuantity]
	require.False(t, ok)
	_, ok = bare[ingredientPropUnit]
	require.False(t, ok)
	require.Equal(t, "1", bare[ingredientPropSeparator].Select.Name)
}

func TestRecipeProperties(t *testing.T) {
	r := recipe.Recipe{Title: "Stew", Servings: 4, Time: 90, Difficulty: "moderate"}
	props := recipeProperties(r)

	require.Equal(t, float64(90), *props["Time / Min"].Number)
	require.Equal(t, "Moderate", props["Difficulty"].Select.Name)

	r.Difficulty = "Hard"
	props = recipeProperties(r)
	_, ok := props["Difficulty"]
	require.False(t, ok)

	r.Time = 0
	props = recipeProperties(r)
	_, ok = props["Time / Min"]
	require.False(t, ok)
}

func TestCleanupDuplicates(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()
	store.Create(ctx, "r-1", IngredientRow{Name: "Banana", GroceryId: "g-1"})
	store.Create(ctx, "r-1", IngredientRow{Name: "Bananas", GroceryId: "g-1"})
	store.Create(ctx, "r-1", IngredientRow{Name: "Flour", GroceryId: "g-2"})

	s := testService(t, newFakeCatalog(), store, &scriptResolver{t: t})
	archived, err := s.CleanupDuplicates(ctx, "r-1")
	require.NoError(t, err)
	require.Equal(t, 1, archived)

	rows, err := store.ListForRecipe(ctx, "r-1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
}
