package importer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"recipevault/services/notion"
	"recipevault/services/recipe"
)

// stepsHeadingText marks where preparation steps go on a recipe page.
const stepsHeadingText = "Steps"

// AddSteps writes the recipe's preparation steps onto its page, after
// the "Steps" heading when one exists. Pages that already contain
// numbered steps are left untouched so reruns stay idempotent.
func (s *Service) AddSteps(ctx context.Context, pageId string, r recipe.Recipe) error {
	if len(r.Steps) == 0 {
		return nil
	}

	blocks, err := s.notion.ListBlockChildren(ctx, pageId)
	if err != nil {
		return fmt.Errorf("list page blocks: %w", err)
	}

	after := ""
	for _, block := range blocks {
		if strings.EqualFold(strings.TrimSpace(block.PlainText()), stepsHeadingText) &&
			strings.HasPrefix(block.Type, "heading") {
			after = block.Id
			continue
		}
		if block.Type == "numbered_list_item" {
			slog.Debug("page already has steps", "recipe", r.Title)
			return nil
		}
	}

	var children []notion.Block
	for _, step := range r.Steps {
		if step.IsHeader {
			children = append(children, notion.NewHeading3Block(step.Text))
			continue
		}
		children = append(children, notion.NewNumberedListItemBlock(step.Text))
	}
	for _, note := range r.Notes {
		children = append(children, notion.NewParagraphBlock(note))
	}

	err = s.notion.AppendBlockChildren(ctx, pageId, after, children)
	if err != nil {
		return fmt.Errorf("append steps: %w", err)
	}
	slog.Info("added steps", "recipe", r.Title, "count", len(children))
	return nil
}
