package recipe

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

var (
	titleRegex       = regexp.MustCompile(`^===\s*(.+?)\s*===$`)
	groupRegex       = regexp.MustCompile(`^\[([^\[\]]+)\]$`)
	numberedRegex    = regexp.MustCompile(`^(\d+)[.)]\s*(.*)$`)
	sectionRuleRegex = regexp.MustCompile(`^[-=*_]{3,}$`)
	intRegex         = regexp.MustCompile(`\d+`)
)

// lines that show up in scraped instruction lists but carry no actual
// preparation content.
var junkStepWords = map[string]bool{
	"enjoy":           true,
	"enjoy!":          true,
	"bon appetit":     true,
	"serve and enjoy": true,
	"advertisement":   true,
	"nutrition":       true,
	"nutrition facts": true,
	"tips":            true,
	"video":           true,
	"print recipe":    true,
}

func metadataValue(line, prefix string) (string, bool) {
	if !strings.HasPrefix(line, prefix) {
		return "", false
	}
	return strings.TrimSpace(line[len(prefix):]), true
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}

// isSectionHeader decides whether a non-numbered line inside the steps
// block names a phase of the preparation rather than being a step
// itself. Headers are short and either end with a colon or hold at most
// four words.
func isSectionHeader(line string) bool {
	trimmed := strings.TrimSuffix(line, ":")
	if len(trimmed) < 3 || len(trimmed) > 50 {
		return false
	}
	if trimmed == "" || trimmed[0] >= '0' && trimmed[0] <= '9' {
		return false
	}
	if strings.HasSuffix(line, ":") {
		return true
	}
	return len(strings.Fields(trimmed)) <= 4
}

type parseMode int

const (
	modeIngredients parseMode = iota
	modeSteps
	modeNotes
)

// ParseDocument reads the plain-text interchange format and returns
// every well-formed recipe block it contains. Content before the first
// title line and blocks without a title are dropped.
func ParseDocument(text string) []Recipe {
	var recipes []Recipe
	var current *Recipe

	flush := func() {
		if current == nil {
			return
		}
		if current.Title == "" || (len(current.Groups) == 0 && len(current.Steps) == 0) {
			slog.Debug("dropping malformed recipe block", "title", current.Title)
			current = nil
			return
		}
		recipes = append(recipes, *current)
		current = nil
	}

	mode := modeIngredients
	groupIdx := -1

	ensureGroup := func(name string) {
		if current == nil {
			return
		}
		current.Groups = append(current.Groups, IngredientGroup{Name: name})
		groupIdx = len(current.Groups) - 1
	}

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" || sectionRuleRegex.MatchString(line) {
			continue
		}

		if m := titleRegex.FindStringSubmatch(line); m != nil {
			flush()
			current = &Recipe{Title: m[1], Servings: 1}
			mode = modeIngredients
			groupIdx = -1
			continue
		}
		if current == nil {
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		if v, ok := metadataValue(line, "Servings:"); ok {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				current.Servings = n
			}
			continue
		}
		if v, ok := metadataValue(line, "Slices:"); ok {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				current.Slices = n
			}
			continue
		}
		if v, ok := metadataValue(line, "Time:"); ok {
			// "20", "20 min" and "about 20 minutes" all mean 20
			if m := intRegex.FindString(v); m != "" {
				current.Time, _ = strconv.Atoi(m)
			}
			continue
		}
		if v, ok := metadataValue(line, "Difficulty:"); ok {
			current.Difficulty = v
			continue
		}
		if v, ok := metadataValue(line, "Category:"); ok {
			current.Category = MapCategory(v)
			continue
		}
		if v, ok := metadataValue(line, "Favorite:"); ok {
			current.Favorite = parseBool(v)
			continue
		}
		if v, ok := metadataValue(line, "Link:"); ok {
			current.Link = v
			continue
		}
		if v, ok := metadataValue(line, "Image:"); ok {
			current.Image = v
			continue
		}

		lower := strings.ToLower(line)
		if lower == "steps:" || lower == "method:" || lower == "instructions:" {
			mode = modeSteps
			continue
		}
		if lower == "notes:" {
			mode = modeNotes
			continue
		}

		switch mode {
		case modeNotes:
			current.Notes = append(current.Notes, line)

		case modeSteps:
			if junkStepWords[strings.ToLower(strings.TrimSuffix(line, ":"))] {
				continue
			}
			if m := numberedRegex.FindStringSubmatch(line); m != nil {
				if step := strings.TrimSpace(m[2]); step != "" {
					current.Steps = append(current.Steps, Instruction{Text: step})
				}
				continue
			}
			if isSectionHeader(line) {
				current.Steps = append(current.Steps, Instruction{
					Text:     strings.TrimSuffix(line, ":"),
					IsHeader: true,
				})
				continue
			}
			current.Steps = append(current.Steps, Instruction{Text: line})

		default:
			// bracket-only lines open a group, named or numbered.
			// ingredient bracket lines always carry trailing text.
			if m := groupRegex.FindStringSubmatch(line); m != nil {
				ensureGroup(strings.TrimSpace(m[1]))
				continue
			}
			ing, ok := ParseIngredient(line)
			if !ok {
				slog.Debug("skipping unparseable line", "line", line)
				continue
			}
			if groupIdx < 0 {
				ensureGroup("")
			}
			current.Groups[groupIdx].Ingredients = append(
				current.Groups[groupIdx].Ingredients, ing)
		}
	}
	flush()

	return recipes
}
