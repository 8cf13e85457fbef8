package scraper

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"recipevault/lib/textutil"
	"recipevault/services/recipe"

	"github.com/PuerkitoBio/goquery"
)

// extractJsonLd scans every ld+json script on the page for a
// schema.org Recipe object.
func extractJsonLd(doc *goquery.Document) (recipe.Recipe, bool) {
	var found recipe.Recipe
	ok := false

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var raw any
		err := json.Unmarshal([]byte(sel.Text()), &raw)
		if err != nil {
			return true
		}
		node, exists := findRecipeNode(raw)
		if !exists {
			return true
		}
		found = recipeFromNode(node)
		ok = true
		return false
	})
	return found, ok
}

// findRecipeNode digs through the JSON-LD shapes sites actually emit:
// a bare object, a top-level array, or an @graph collection.
func findRecipeNode(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		if isRecipeType(v["@type"]) {
			return v, true
		}
		if graph, ok := v["@graph"].([]any); ok {
			return findRecipeNode(graph)
		}
	case []any:
		for _, item := range v {
			if node, ok := findRecipeNode(item); ok {
				return node, true
			}
		}
	}
	return nil, false
}

func isRecipeType(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "Recipe"
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

func recipeFromNode(node map[string]any) recipe.Recipe {
	r := recipe.Recipe{
		Title:    stringValue(node["name"]),
		Servings: parseYield(node["recipeYield"]),
		Time:     parseDuration(stringValue(node["totalTime"])),
		Category: recipe.MapCategory(stringValue(node["recipeCategory"])),
		Image:    imageUrl(node["image"]),
	}

	group := recipe.IngredientGroup{}
	if list, ok := node["recipeIngredient"].([]any); ok {
		for _, item := range list {
			line := cleanLine(stringValue(item))
			if line == "" {
				continue
			}
			if ing, ok := recipe.ParseIngredient(line); ok {
				group.Ingredients = append(group.Ingredients, ing)
			}
		}
	}
	if len(group.Ingredients) > 0 {
		r.Groups = []recipe.IngredientGroup{group}
	}

	r.Steps = parseInstructions(node["recipeInstructions"])
	return r
}

// parseInstructions handles plain strings, HowToStep objects and
// HowToSection trees, flattening sections into header instructions.
func parseInstructions(raw any) []recipe.Instruction {
	var steps []recipe.Instruction

	switch v := raw.(type) {
	case string:
		for _, line := range strings.Split(v, "\n") {
			if text := cleanLine(line); text != "" {
				steps = append(steps, recipe.Instruction{Text: text})
			}
		}
	case []any:
		for _, item := range v {
			switch node := item.(type) {
			case string:
				if text := cleanLine(node); text != "" {
					steps = append(steps, recipe.Instruction{Text: text})
				}
			case map[string]any:
				switch stringValue(node["@type"]) {
				case "HowToSection":
					name := cleanLine(stringValue(node["name"]))
					if name != "" {
						steps = append(steps, recipe.Instruction{Text: name, IsHeader: true})
					}
					if elements, ok := node["itemListElement"].([]any); ok {
						steps = append(steps, parseInstructions(elements)...)
					}
				default:
					if text := cleanLine(stringValue(node["text"])); text != "" {
						steps = append(steps, recipe.Instruction{Text: text})
					}
				}
			}
		}
	}
	return steps
}

func stringValue(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func imageUrl(v any) string {
	switch img := v.(type) {
	case string:
		return img
	case []any:
		if len(img) > 0 {
			return imageUrl(img[0])
		}
	case map[string]any:
		return stringValue(img["url"])
	}
	return ""
}

var yieldRegex = regexp.MustCompile(`\d+`)

func parseYield(v any) int {
	switch y := v.(type) {
	case float64:
		return int(y)
	case string:
		if m := yieldRegex.FindString(y); m != "" {
			n, _ := strconv.Atoi(m)
			return n
		}
	case []any:
		for _, item := range y {
			if n := parseYield(item); n > 0 {
				return n
			}
		}
	}
	return 0
}

var durationRegex = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?`)

// parseDuration converts an ISO 8601 duration like PT1H30M into total
// minutes. Values that are not durations yield zero.
func parseDuration(s string) int {
	m := durationRegex.FindStringSubmatch(s)
	if m == nil || (m[1] == "" && m[2] == "") {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes
}

var bulletRegex = regexp.MustCompile(`^[-*•▢□☐]+\s*`)

// cleanLine strips list bullets and checkbox glyphs and normalizes
// fraction characters and whitespace.
func cleanLine(s string) string {
	s = textutil.ReplaceFractions(s)
	s = bulletRegex.ReplaceAllString(strings.TrimSpace(s), "")
	s = strings.Join(strings.Fields(s), " ")
	return s
}
