package recipe

import (
	"fmt"
	"sort"
	"strings"
)

// FormatDocument renders recipes into the plain-text interchange format
// understood by ParseDocument.
func FormatDocument(recipes []Recipe) string {
	var b strings.Builder
	for i, r := range recipes {
		if i > 0 {
			b.WriteString("\n")
		}
		formatRecipe(&b, r)
	}
	return b.String()
}

func formatRecipe(b *strings.Builder, r Recipe) {
	fmt.Fprintf(b, "=== %s ===\n", r.Title)
	if r.Servings > 0 {
		fmt.Fprintf(b, "Servings: %d\n", r.Servings)
	}
	if r.Slices > 0 {
		fmt.Fprintf(b, "Slices: %d\n", r.Slices)
	}
	if r.Time > 0 {
		fmt.Fprintf(b, "Time: %d\n", r.Time)
	}
	if r.Difficulty != "" {
		fmt.Fprintf(b, "Difficulty: %s\n", r.Difficulty)
	}
	if r.Category != "" {
		fmt.Fprintf(b, "Category: %s\n", r.Category)
	}
	if r.Favorite {
		b.WriteString("Favorite: true\n")
	}
	if r.Link != "" {
		fmt.Fprintf(b, "Link: %s\n", r.Link)
	}
	if r.Image != "" {
		fmt.Fprintf(b, "Image: %s\n", r.Image)
	}

	groups := make([]IngredientGroup, len(r.Groups))
	copy(groups, r.Groups)
	// the unnamed group always prints first so its ingredients are not
	// swallowed by a preceding group marker on reparse
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Name == "" && groups[j].Name != ""
	})

	seen := map[string]bool{}
	for _, g := range groups {
		printed := false
		for _, ing := range g.Ingredients {
			key := g.Name + "\x00" + ing.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			if !printed {
				b.WriteString("\n")
				if g.Name != "" {
					fmt.Fprintf(b, "[%s]\n", g.Name)
				}
				printed = true
			}
			b.WriteString(ing.Line())
			b.WriteString("\n")
		}
	}

	if len(r.Steps) > 0 {
		b.WriteString("\nSteps:\n")
		n := 0
		for _, step := range r.Steps {
			if step.IsHeader {
				fmt.Fprintf(b, "%s:\n", step.Text)
				continue
			}
			n++
			fmt.Fprintf(b, "%d. %s\n", n, step.Text)
		}
	}

	if len(r.Notes) > 0 {
		b.WriteString("\nNotes:\n")
		for _, note := range r.Notes {
			b.WriteString(note)
			b.WriteString("\n")
		}
	}
}
