package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"recipevault/services/recipe"
)

var (
	localHeaderRegex  = regexp.MustCompile(`^#+\s*(.+)$`)
	blockSplitRegex   = regexp.MustCompile(`(?m)^(?:-{4,}|={4,})\s*$`)
	servingsLineRegex = regexp.MustCompile(`(?i)^servings?\D{0,3}(\d+)`)
	numberedStepRegex = regexp.MustCompile(`^\d+[.)]\s*`)
)

var ingredientHeaders = []string{"ingredients", "ingredient list", "you will need", "what you need"}
var instructionHeaders = []string{"instructions", "directions", "method", "steps", "preparation", "how to make"}
var noteHeaders = []string{"notes", "tips", "storage"}

func headerKind(text string) string {
	lower := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(text), ":"))
	for _, h := range ingredientHeaders {
		if lower == h {
			return "ingredients"
		}
	}
	for _, h := range instructionHeaders {
		if lower == h {
			return "instructions"
		}
	}
	for _, h := range noteHeaders {
		if lower == h {
			return "notes"
		}
	}
	return ""
}

// ParseLocal reads free-form pasted recipe text: markdown-ish headers
// mark the sections, and when no headers exist the lines are sorted by
// shape, quantities to ingredients, action sentences to steps.
// Multiple recipes may be separated by ---- rules.
func ParseLocal(text string) []recipe.Recipe {
	var recipes []recipe.Recipe
	for _, block := range blockSplitRegex.Split(text, -1) {
		if strings.TrimSpace(block) == "" {
			continue
		}
		if r, ok := parseLocalBlock(block); ok {
			recipes = append(recipes, r)
		}
	}
	return recipes
}

func parseLocalBlock(block string) (recipe.Recipe, bool) {
	r := recipe.Recipe{Servings: 1}
	group := recipe.IngredientGroup{}
	section := ""

	flushGroup := func() {
		if len(group.Ingredients) > 0 {
			r.Groups = append(r.Groups, group)
			group = recipe.IngredientGroup{}
		}
	}

	for _, rawLine := range strings.Split(block, "\n") {
		line := cleanLine(rawLine)
		if line == "" {
			continue
		}

		if m := localHeaderRegex.FindStringSubmatch(rawLine); m != nil {
			header := strings.TrimSpace(m[1])
			if kind := headerKind(header); kind != "" {
				section = kind
				continue
			}
			if r.Title == "" {
				r.Title = header
				continue
			}
			// an unrecognized header inside the ingredient section
			// names an ingredient group
			if section == "ingredients" || section == "" {
				flushGroup()
				group.Name = header
			}
			continue
		}
		if kind := headerKind(line); kind != "" {
			section = kind
			continue
		}

		if r.Title == "" && section == "" {
			r.Title = line
			continue
		}

		if m := servingsLineRegex.FindStringSubmatch(line); m != nil {
			r.Servings, _ = strconv.Atoi(m[1])
			continue
		}

		switch section {
		case "instructions":
			r.Steps = append(r.Steps, recipe.Instruction{
				Text: strings.TrimSpace(numberedStepRegex.ReplaceAllString(line, "")),
			})
		case "notes":
			r.Notes = append(r.Notes, line)
		case "ingredients":
			if ing, ok := recipe.ParseIngredient(line); ok {
				group.Ingredients = append(group.Ingredients, ing)
			}
		default:
			// no headers seen yet, classify by shape
			ing, ok := recipe.ParseIngredient(line)
			if ok && ing.HasQuantity {
				group.Ingredients = append(group.Ingredients, ing)
				continue
			}
			if startsWithActionVerb(line) || numberedStepRegex.MatchString(line) {
				r.Steps = append(r.Steps, recipe.Instruction{
					Text: strings.TrimSpace(numberedStepRegex.ReplaceAllString(line, "")),
				})
				continue
			}
			group.Ingredients = append(group.Ingredients, recipe.Ingredient{Name: line})
		}
	}
	flushGroup()

	if r.Title == "" || (len(r.Groups) == 0 && len(r.Steps) == 0) {
		return recipe.Recipe{}, false
	}
	return r, true
}
