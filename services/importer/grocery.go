package importer

import (
	"context"
	"fmt"
	"strings"

	"recipevault/services/notion"
)

// grocery catalog property names in the Notion database schema.
const (
	groceryPropName       = "Name"
	groceryPropUnit       = "Unity"
	groceryPropSecondUnit = "2nd Unity"
	groceryPropConversion = "Conversion"
	groceryPropCategory   = "Category"
	groceryPropKcal       = "Kcal"
	groceryPropCarbs      = "Carbs"
	groceryPropFat        = "Fat"
	groceryPropProtein    = "Protein"
)

// notionCatalog implements Catalog on top of a Notion database.
type notionCatalog struct {
	client     *notion.Client
	databaseId string
}

func NewNotionCatalog(client *notion.Client, databaseId string) Catalog {
	return &notionCatalog{client: client, databaseId: databaseId}
}

func groceryFromPage(page notion.Page) GroceryItem {
	item := GroceryItem{
		Id:         page.Id,
		Name:       page.Title(),
		Unit:       page.SelectValue(groceryPropUnit),
		SecondUnit: page.SelectValue(groceryPropSecondUnit),
		Conversion: page.NumberValue(groceryPropConversion),
		Category:   page.SelectValue(groceryPropCategory),
	}
	item.Facts.Kcal = page.NumberValue(groceryPropKcal)
	item.Facts.Carbs = page.NumberValue(groceryPropCarbs)
	item.Facts.Fat = page.NumberValue(groceryPropFat)
	item.Facts.Protein = page.NumberValue(groceryPropProtein)
	item.HasFacts = item.Facts.Kcal > 0
	return item
}

func (c *notionCatalog) FindByName(ctx context.Context, name string) (GroceryItem, bool, error) {
	pages, err := c.client.QueryDatabaseAll(ctx, c.databaseId,
		notion.TitleFilter(groceryPropName, name, true))
	if err != nil {
		return GroceryItem{}, false, err
	}
	for _, page := range pages {
		if strings.EqualFold(page.Title(), name) {
			return groceryFromPage(page), true, nil
		}
	}
	return GroceryItem{}, false, nil
}

func (c *notionCatalog) Search(ctx context.Context, name string) ([]GroceryItem, error) {
	pages, err := c.client.QueryDatabaseAll(ctx, c.databaseId,
		notion.TitleFilter(groceryPropName, name, false))
	if err != nil {
		return nil, err
	}
	items := make([]GroceryItem, 0, len(pages))
	for _, page := range pages {
		items = append(items, groceryFromPage(page))
	}
	return items, nil
}

func (c *notionCatalog) List(ctx context.Context) ([]GroceryItem, error) {
	pages, err := c.client.QueryDatabaseAll(ctx, c.databaseId, nil)
	if err != nil {
		return nil, err
	}
	items := make([]GroceryItem, 0, len(pages))
	for _, page := range pages {
		items = append(items, groceryFromPage(page))
	}
	return items, nil
}

func (c *notionCatalog) Create(ctx context.Context, item GroceryItem) (GroceryItem, error) {
	properties := map[string]notion.Property{
		groceryPropName: notion.NewTitle(item.Name),
		groceryPropUnit: notion.NewSelect(item.Unit),
	}
	if item.SecondUnit != "" {
		properties[groceryPropSecondUnit] = notion.NewSelect(item.SecondUnit)
		properties[groceryPropConversion] = notion.NewNumber(item.Conversion)
	}
	if item.Category != "" {
		properties[groceryPropCategory] = notion.NewSelect(item.Category)
	}
	if item.HasFacts {
		properties[groceryPropKcal] = notion.NewNumber(item.Facts.Kcal)
		properties[groceryPropCarbs] = notion.NewNumber(item.Facts.Carbs)
		properties[groceryPropFat] = notion.NewNumber(item.Facts.Fat)
		properties[groceryPropProtein] = notion.NewNumber(item.Facts.Protein)
	}

	page, err := c.client.CreatePage(ctx, notion.CreatePageRequest{
		Parent:     notion.Parent{DatabaseId: c.databaseId},
		Properties: properties,
	})
	if err != nil {
		return GroceryItem{}, err
	}
	item.Id = page.Id
	return item, nil
}

func (c *notionCatalog) SetSecondUnit(ctx context.Context, id, unit string, factor float64) error {
	_, err := c.client.UpdatePage(ctx, id, notion.UpdatePageRequest{
		Properties: map[string]notion.Property{
			groceryPropSecondUnit: notion.NewSelect(unit),
			groceryPropConversion: notion.NewNumber(factor),
		},
	})
	if err != nil {
		return fmt.Errorf("update grocery %s: %w", id, err)
	}
	return nil
}
