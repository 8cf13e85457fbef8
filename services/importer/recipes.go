package importer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"recipevault/services/notion"
	"recipevault/services/recipe"
)

// recipe database property names.
const (
	recipePropName       = "Name"
	recipePropServings   = "Servings"
	recipePropSlices     = "Slices"
	recipePropTime       = "Time / Min"
	recipePropDifficulty = "Difficulty"
	recipePropCategory   = "Category"
	recipePropFavorite   = "Favorite"
	recipePropLink       = "Link"
)

func recipeProperties(r recipe.Recipe) map[string]notion.Property {
	properties := map[string]notion.Property{
		recipePropName:     notion.NewTitle(r.Title),
		recipePropServings: notion.NewNumber(float64(r.Servings)),
		recipePropFavorite: notion.NewCheckbox(r.Favorite),
	}
	if r.Slices > 0 {
		properties[recipePropSlices] = notion.NewNumber(float64(r.Slices))
	}
	if r.Time > 0 {
		properties[recipePropTime] = notion.NewNumber(float64(r.Time))
	}
	if r.Difficulty != "" {
		if d, ok := recipe.NormalizeDifficulty(r.Difficulty); ok {
			properties[recipePropDifficulty] = notion.NewSelect(d)
		} else {
			slog.Warn("unknown difficulty", "recipe", r.Title, "difficulty", r.Difficulty)
		}
	}
	if r.Category != "" {
		properties[recipePropCategory] = notion.NewSelect(recipe.MapCategory(r.Category))
	}
	if r.Link != "" {
		properties[recipePropLink] = notion.NewUrl(r.Link)
	}
	return properties
}

// FindRecipe locates an existing recipe page by exact title.
func (s *Service) FindRecipe(ctx context.Context, title string) (notion.Page, bool, error) {
	pages, err := s.notion.QueryDatabaseAll(ctx, s.config.RecipesDb,
		notion.TitleFilter(recipePropName, title, true))
	if err != nil {
		return notion.Page{}, false, err
	}
	for _, page := range pages {
		if strings.EqualFold(page.Title(), title) {
			return page, true, nil
		}
	}
	return notion.Page{}, false, nil
}

// UpsertRecipe creates the recipe page or refreshes the properties of
// an existing one, returning the page id.
func (s *Service) UpsertRecipe(ctx context.Context, r recipe.Recipe) (string, bool, error) {
	existing, found, err := s.FindRecipe(ctx, r.Title)
	if err != nil {
		return "", false, fmt.Errorf("find recipe %q: %w", r.Title, err)
	}

	if found {
		_, err = s.notion.UpdatePage(ctx, existing.Id, notion.UpdatePageRequest{
			Properties: recipeProperties(r),
			Cover:      coverFile(r),
			Icon:       coverFile(r),
		})
		if err != nil {
			return "", false, fmt.Errorf("update recipe %q: %w", r.Title, err)
		}
		return existing.Id, false, nil
	}

	page, err := s.notion.CreatePage(ctx, notion.CreatePageRequest{
		Parent:     notion.Parent{DatabaseId: s.config.RecipesDb},
		Properties: recipeProperties(r),
		Cover:      coverFile(r),
		Icon:       coverFile(r),
	})
	if err != nil {
		return "", false, fmt.Errorf("create recipe %q: %w", r.Title, err)
	}

	if s.config.TemplatePage != "" {
		err = s.CopyTemplate(ctx, page.Id)
		if err != nil {
			slog.Warn("copy template", "recipe", r.Title, "err", err)
		}
	}
	return page.Id, true, nil
}

func coverFile(r recipe.Recipe) *notion.File {
	if r.Image == "" || !strings.HasPrefix(r.Image, "http") {
		return nil
	}
	return notion.NewExternalFile(r.Image)
}

// UpdateRecipeMetadata patches only the link and cover of an existing
// recipe page, leaving the rest of the page alone.
func (s *Service) UpdateRecipeMetadata(ctx context.Context, r recipe.Recipe) error {
	page, found, err := s.FindRecipe(ctx, r.Title)
	if err != nil {
		return fmt.Errorf("find recipe %q: %w", r.Title, err)
	}
	if !found {
		return fmt.Errorf("recipe %q does not exist", r.Title)
	}

	req := notion.UpdatePageRequest{}
	if r.Link != "" {
		req.Properties = map[string]notion.Property{
			recipePropLink: notion.NewUrl(r.Link),
		}
	}
	if cover := coverFile(r); cover != nil {
		req.Cover = cover
		req.Icon = cover
	}
	if req.Properties == nil && req.Cover == nil {
		return nil
	}

	_, err = s.notion.UpdatePage(ctx, page.Id, req)
	if err != nil {
		return fmt.Errorf("update recipe %q: %w", r.Title, err)
	}
	return nil
}

// CopyTemplate replicates the template page's child blocks onto a
// fresh recipe page. Block types the API refuses to re-create are
// replaced by paragraphs holding their text.
func (s *Service) CopyTemplate(ctx context.Context, pageId string) error {
	blocks, err := s.notion.ListBlockChildren(ctx, s.config.TemplatePage)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}

	var children []notion.Block
	for _, block := range blocks {
		children = append(children, sanitizeBlock(block))
	}
	if len(children) == 0 {
		return nil
	}
	return s.notion.AppendBlockChildren(ctx, pageId, "", children)
}

var copyableBlockTypes = map[string]bool{
	"paragraph":          true,
	"heading_1":          true,
	"heading_2":          true,
	"heading_3":          true,
	"numbered_list_item": true,
	"bulleted_list_item": true,
	"to_do":              true,
	"divider":            true,
}

func sanitizeBlock(block notion.Block) notion.Block {
	if copyableBlockTypes[block.Type] {
		block.Id = ""
		block.HasChildren = false
		return block
	}
	return notion.NewParagraphBlock(block.PlainText())
}
