package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"recipevault/lib/htmlutil"
	"recipevault/services/recipe"

	"github.com/PuerkitoBio/goquery"
)

// selectors that find ingredient and instruction lists on pages
// without structured data.
const (
	ingredientSelectors  = `[class*="ingredient"] li, [id*="ingredient"] li, ul[class*="ingredient"] li`
	instructionSelectors = `[class*="instruction"] li, [class*="direction"] li, [class*="step"] li, ol[class*="method"] li`
)

// verbs that open a sentence describing a preparation step, used when
// a page has no marked-up instruction list at all.
var actionVerbs = []string{
	"preheat", "mix", "stir", "whisk", "combine", "add", "pour",
	"bake", "fry", "cook", "boil", "simmer", "heat", "melt",
	"chop", "slice", "dice", "blend", "fold", "knead", "season",
	"serve", "garnish", "drain", "transfer", "place", "cover",
}

func startsWithActionVerb(text string) bool {
	lower := strings.ToLower(text)
	for _, verb := range actionVerbs {
		if strings.HasPrefix(lower, verb+" ") {
			return true
		}
	}
	return false
}

var (
	servingsRegex = regexp.MustCompile(`(?i)(?:serves|servings?|yield)\D{0,3}(\d+)`)
	timeRegex     = regexp.MustCompile(`(?i)(\d+)\s*(?:hours?|hrs?|h)?\s*(\d+)?\s*(?:minutes|mins?)`)
)

// extractGeneric walks the raw HTML for a recipe shape: a title, an
// ingredient list, an instruction list, and whatever servings and time
// hints the page text drops.
func extractGeneric(doc *goquery.Document) (recipe.Recipe, bool) {
	r := recipe.Recipe{
		Title: pageTitle(doc),
		Image: doc.Find(`meta[property="og:image"]`).AttrOr("content", ""),
	}

	group := recipe.IngredientGroup{}
	seen := map[string]bool{}
	for _, text := range htmlutil.ItemTexts(doc.Find(ingredientSelectors)) {
		line := cleanLine(text)
		if line == "" || seen[line] {
			continue
		}
		seen[line] = true

		// a short trailing-colon item is a group header inside the list
		if strings.HasSuffix(line, ":") && len(line) <= 40 {
			if len(group.Ingredients) > 0 || group.Name != "" {
				r.Groups = append(r.Groups, group)
			}
			group = recipe.IngredientGroup{Name: strings.TrimSuffix(line, ":")}
			continue
		}
		if ing, ok := recipe.ParseIngredient(line); ok {
			group.Ingredients = append(group.Ingredients, ing)
		}
	}
	if len(group.Ingredients) > 0 {
		r.Groups = append(r.Groups, group)
	}

	seen = map[string]bool{}
	for _, text := range htmlutil.ItemTexts(doc.Find(instructionSelectors)) {
		line := cleanLine(text)
		if line == "" || seen[line] {
			continue
		}
		seen[line] = true
		r.Steps = append(r.Steps, recipe.Instruction{Text: line})
	}
	if len(r.Steps) == 0 {
		doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
			text := cleanLine(htmlutil.CleanText(sel))
			if startsWithActionVerb(text) {
				r.Steps = append(r.Steps, recipe.Instruction{Text: text})
			}
		})
	}

	body := doc.Find("body").Text()
	if m := servingsRegex.FindStringSubmatch(body); m != nil {
		r.Servings, _ = strconv.Atoi(m[1])
	}
	if m := timeRegex.FindStringSubmatch(body); m != nil {
		n, _ := strconv.Atoi(m[1])
		if m[2] != "" {
			// hours plus minutes
			extra, _ := strconv.Atoi(m[2])
			n = n*60 + extra
		}
		r.Time = n
	}

	if r.Title == "" || len(r.Groups) == 0 {
		return recipe.Recipe{}, false
	}
	return r, true
}

func pageTitle(doc *goquery.Document) string {
	if t := doc.Find(`meta[property="og:title"]`).AttrOr("content", ""); t != "" {
		return strings.TrimSpace(t)
	}
	if t := htmlutil.CleanText(doc.Find("h1").First()); t != "" {
		return t
	}
	title := htmlutil.CleanText(doc.Find("title"))
	// strip the site name suffix pattern "Recipe | Site"
	title, _, _ = strings.Cut(title, "|")
	return strings.TrimSpace(title)
}
