package importer

import (
	"context"
	"strconv"

	"recipevault/services/notion"
)

// recipe-ingredient join database property names.
const (
	ingredientPropName      = "Name"
	ingredientPropGrocery   = "Grocery"
	ingredientPropRecipe    = "Recipe"
	ingredientPropQuantity  = "Quantity"
	ingredientPropUnit      = "Unity"
	ingredientPropObs       = "Obs"
	ingredientPropSeparator = "Receipt separator"
)

type notionIngredients struct {
	client     *notion.Client
	databaseId string
}

func NewNotionIngredients(client *notion.Client, databaseId string) IngredientStore {
	return &notionIngredients{client: client, databaseId: databaseId}
}

func ingredientFromPage(page notion.Page) IngredientRow {
	row := IngredientRow{
		Id:          page.Id,
		Name:        page.Title(),
		Quantity:    page.NumberValue(ingredientPropQuantity),
		HasQuantity: page.HasNumber(ingredientPropQuantity),
		Unit:        page.SelectValue(ingredientPropUnit),
		Obs:         page.RichTextValue(ingredientPropObs),
	}
	if ids := page.RelationIds(ingredientPropGrocery); len(ids) > 0 {
		row.GroceryId = ids[0]
	}
	row.Separator, _ = strconv.Atoi(page.SelectValue(ingredientPropSeparator))
	return row
}

// rowProperties renders the row's mutable fields. A row without a
// quantity gets neither the quantity nor the unit property.
func rowProperties(row IngredientRow) map[string]notion.Property {
	properties := map[string]notion.Property{
		ingredientPropObs: notion.NewRichText(row.Obs),
	}
	if row.HasQuantity {
		properties[ingredientPropQuantity] = notion.NewNumber(row.Quantity)
	}
	if row.Unit != "" {
		properties[ingredientPropUnit] = notion.NewSelect(row.Unit)
	}
	if row.Separator > 0 {
		properties[ingredientPropSeparator] = notion.NewSelect(strconv.Itoa(row.Separator))
	}
	return properties
}

func (s *notionIngredients) ListForRecipe(ctx context.Context, recipeId string) ([]IngredientRow, error) {
	pages, err := s.client.QueryDatabaseAll(ctx, s.databaseId, map[string]any{
		"property": ingredientPropRecipe,
		"relation": map[string]any{"contains": recipeId},
	})
	if err != nil {
		return nil, err
	}
	rows := make([]IngredientRow, 0, len(pages))
	for _, page := range pages {
		if page.Archived {
			continue
		}
		rows = append(rows, ingredientFromPage(page))
	}
	return rows, nil
}

func (s *notionIngredients) Create(ctx context.Context, recipeId string, row IngredientRow) (IngredientRow, error) {
	properties := rowProperties(row)
	properties[ingredientPropName] = notion.NewTitle(row.Name)
	properties[ingredientPropRecipe] = notion.NewRelation(recipeId)
	if row.GroceryId != "" {
		properties[ingredientPropGrocery] = notion.NewRelation(row.GroceryId)
	}

	page, err := s.client.CreatePage(ctx, notion.CreatePageRequest{
		Parent:     notion.Parent{DatabaseId: s.databaseId},
		Properties: properties,
	})
	if err != nil {
		return IngredientRow{}, err
	}
	row.Id = page.Id
	return row, nil
}

func (s *notionIngredients) Update(ctx context.Context, row IngredientRow) error {
	_, err := s.client.UpdatePage(ctx, row.Id, notion.UpdatePageRequest{
		Properties: rowProperties(row),
	})
	return err
}

func (s *notionIngredients) Archive(ctx context.Context, id string) error {
	return s.client.ArchivePage(ctx, id)
}
