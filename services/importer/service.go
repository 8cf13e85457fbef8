package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"os"

	"recipevault/services/notion"
	"recipevault/services/nutrition"
	"recipevault/services/recipe"
	"recipevault/services/recipe/ingredients"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/importer")
var meter = otel.Meter("services/importer")

var recipesImported, _ = meter.Int64Counter("recipes_imported")
var recipesFailed, _ = meter.Int64Counter("recipes_failed")

// Config points the importer at the three databases of the recipe
// workspace and the files it keeps on disk.
type Config struct {
	RecipesDb     string `json:"recipes_db"`
	GroceriesDb   string `json:"groceries_db"`
	IngredientsDb string `json:"ingredients_db"`
	TemplatePage  string `json:"template_page"`
	MappingsFile  string `json:"mappings_file"`
}

type Service struct {
	notion      *notion.Client
	config      Config
	catalog     Catalog
	ingredients IngredientStore
	mappings    *Mappings
	prompts     Resolver
	resolver    *GroceryResolver
}

type ServiceOptions struct {
	Notion  *notion.Client
	Config  Config
	Prompts Resolver
	// Catalog and Ingredients default to Notion-backed stores, tests
	// substitute fakes.
	Catalog     Catalog
	Ingredients IngredientStore
	Mappings    *Mappings
}

func NewService(opts ServiceOptions) (*Service, error) {
	mappings := opts.Mappings
	if mappings == nil {
		path := opts.Config.MappingsFile
		if path == "" {
			path = "mappings.json"
		}
		var err error
		mappings, err = LoadMappings(path)
		if err != nil {
			return nil, fmt.Errorf("load mappings: %w", err)
		}
	}

	catalog := opts.Catalog
	if catalog == nil {
		catalog = NewNotionCatalog(opts.Notion, opts.Config.GroceriesDb)
	}
	store := opts.Ingredients
	if store == nil {
		store = NewNotionIngredients(opts.Notion, opts.Config.IngredientsDb)
	}

	s := &Service{
		notion:      opts.Notion,
		config:      opts.Config,
		catalog:     catalog,
		ingredients: store,
		mappings:    mappings,
		prompts:     opts.Prompts,
		resolver: NewGroceryResolver(
			catalog, mappings, opts.Prompts, ingredients.NewSplitter()),
	}
	if key := os.Getenv("USDA_API_KEY"); key != "" {
		s.resolver.SetNutritionClient(
			nutrition.NewFdcClient(nutrition.FdcClientOptions{ApiKey: key}))
	}
	return s, nil
}

func (s *Service) Mappings() *Mappings {
	return s.mappings
}

// SeedSplitterFromCatalog primes the adjective splitter with every
// catalog name so splits line up with what already exists.
func (s *Service) SeedSplitterFromCatalog(ctx context.Context) error {
	lister, ok := s.catalog.(interface {
		List(ctx context.Context) ([]GroceryItem, error)
	})
	if !ok {
		return nil
	}
	items, err := lister.List(ctx)
	if err != nil {
		return fmt.Errorf("list catalog: %w", err)
	}
	s.resolver.SeedSplitter(items)
	return nil
}

// ImportResult summarizes one document import.
type ImportResult struct {
	Imported []string
	Skipped  []string
}

// ImportDocument parses an interchange document and imports every
// recipe in it. A recipe that fails is skipped, not fatal, and the
// mapping file is flushed after each recipe so progress survives an
// abort.
func (s *Service) ImportDocument(ctx context.Context, text string, withSteps bool) (ImportResult, error) {
	ctx, span := tracer.Start(ctx, "ImportDocument")
	defer span.End()

	recipes := recipe.ParseDocument(text)
	if len(recipes) == 0 {
		return ImportResult{}, errors.New("no recipes found in document")
	}

	var result ImportResult
	for _, r := range recipes {
		err := s.importRecipe(ctx, r, withSteps)
		if err != nil {
			recipesFailed.Add(ctx, 1)
			slog.Error("recipe import failed", "recipe", r.Title, "err", err)
			result.Skipped = append(result.Skipped, r.Title)
		} else {
			recipesImported.Add(ctx, 1)
			result.Imported = append(result.Imported, r.Title)
		}

		err = s.mappings.Flush()
		if err != nil {
			return result, fmt.Errorf("flush mappings: %w", err)
		}
	}
	return result, nil
}

func (s *Service) importRecipe(ctx context.Context, r recipe.Recipe, withSteps bool) error {
	ctx, span := tracer.Start(ctx, "importRecipe")
	defer span.End()

	pageId, created, err := s.UpsertRecipe(ctx, r)
	if err != nil {
		return err
	}
	slog.Info("recipe page ready", "recipe", r.Title, "created", created)

	_, err = s.ReconcileIngredients(ctx, pageId, r)
	if err != nil {
		return err
	}

	if withSteps {
		err = s.AddSteps(ctx, pageId, r)
		if err != nil {
			return err
		}
	}
	return nil
}
