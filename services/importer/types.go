// Package importer turns parsed recipe documents into pages of the
// recipe workspace, reconciling every ingredient against the grocery
// catalog and remembering interactive decisions across runs.
package importer

import (
	"context"
	"errors"

	"recipevault/services/nutrition"
)

// GroceryItem is a row of the grocery catalog database.
type GroceryItem struct {
	Id   string
	Name string
	// Unit is the item's primary measurement unit.
	Unit string
	// SecondUnit and Conversion describe an alternate unit,
	// Conversion being how many primary units one second unit holds.
	SecondUnit string
	Conversion float64
	Category   string
	Facts      nutrition.Facts
	HasFacts   bool
}

// Catalog is the grocery database surface the resolver needs.
type Catalog interface {
	// FindByName matches the item title exactly, case-insensitive.
	FindByName(ctx context.Context, name string) (GroceryItem, bool, error)
	// Search matches item titles containing the given text.
	Search(ctx context.Context, name string) ([]GroceryItem, error)
	Create(ctx context.Context, item GroceryItem) (GroceryItem, error)
	// SetSecondUnit records an alternate unit and its conversion
	// factor on an existing item.
	SetSecondUnit(ctx context.Context, id, unit string, factor float64) error
}

// IngredientRow is a row of the recipe-ingredient join database.
type IngredientRow struct {
	Id        string
	Name      string
	GroceryId string
	Quantity  float64
	// HasQuantity distinguishes "to taste" rows, which carry neither a
	// quantity nor a unit, from a stored zero.
	HasQuantity bool
	Unit        string
	Obs         string
	// Separator is the 1-based index of the ingredient group the row
	// belongs to.
	Separator int
}

// IngredientStore is the recipe-ingredient database surface.
type IngredientStore interface {
	ListForRecipe(ctx context.Context, recipeId string) ([]IngredientRow, error)
	Create(ctx context.Context, recipeId string, row IngredientRow) (IngredientRow, error)
	Update(ctx context.Context, row IngredientRow) error
	Archive(ctx context.Context, id string) error
}

// ErrSkipped reports that the user declined every way of resolving an
// ingredient, the current recipe is abandoned.
var ErrSkipped = errors.New("skipped by user")

// ErrUnitMismatch reports that an ingredient's unit could not be
// reconciled with its grocery item by any available means.
var ErrUnitMismatch = errors.New("unit does not match grocery item")
