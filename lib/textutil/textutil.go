package textutil

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.Trim(name, " \n\t")
	name = whitespaceRegex.ReplaceAllString(name, " ")
	return name
}

func MatchName(name string, matchers []string) bool {
	name = NormalizeName(name)
	for _, m := range matchers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

// irregular plurals that the trailing-s rule gets wrong.
var singularExceptions = map[string]string{
	"potatoes":  "potato",
	"tomatoes":  "tomato",
	"onions":    "onion",
	"carrots":   "carrot",
	"mushrooms": "mushroom",
	"cloves":    "clove",
	"limes":     "lime",
	"lemons":    "lemon",
	"beans":     "bean",
	"peas":      "pea",
	"chickpeas": "chickpea",
}

// Singularize lowercases a word and reduces simple english plurals to
// their singular form. Words of three characters or less are left alone
// so that short units like "tbs" survive.
func Singularize(word string) string {
	word = strings.ToLower(strings.TrimSpace(word))
	if singular, ok := singularExceptions[word]; ok {
		return singular
	}
	if len(word) > 3 && strings.HasSuffix(word, "s") {
		return word[:len(word)-1]
	}
	return word
}

func Capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

var unicodeFractions = map[rune]string{
	'½': "1/2",
	'⅓': "1/3",
	'⅔': "2/3",
	'¼': "1/4",
	'¾': "3/4",
	'⅕': "1/5",
	'⅙': "1/6",
	'⅛': "1/8",
}

// ReplaceFractions rewrites unicode vulgar fraction glyphs as ascii
// fractions, inserting a space when the glyph directly follows a digit
// so "1½" becomes "1 1/2".
func ReplaceFractions(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if r == '⁄' {
			b.WriteRune('/')
			continue
		}
		ascii, ok := unicodeFractions[r]
		if !ok {
			b.WriteRune(r)
			continue
		}
		if i > 0 && unicode.IsDigit(runes[i-1]) {
			b.WriteRune(' ')
		}
		b.WriteString(ascii)
	}
	return b.String()
}

func parseFraction(s string) (float64, bool) {
	num, den, found := strings.Cut(s, "/")
	if !found {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
	if err != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}

// ParseQuantity reads a decimal number, a simple fraction ("3/4") or a
// mixed number ("1 1/2"), tolerating unicode fraction glyphs.
func ParseQuantity(s string) (float64, bool) {
	s = strings.TrimSpace(ReplaceFractions(s))
	if s == "" {
		return 0, false
	}

	if whole, frac, found := strings.Cut(s, " "); found {
		w, err := strconv.ParseFloat(whole, 64)
		if err != nil {
			return 0, false
		}
		f, ok := parseFraction(strings.TrimSpace(frac))
		if !ok {
			return 0, false
		}
		return w + f, true
	}

	if f, ok := parseFraction(s); ok {
		return f, true
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatQuantity renders a quantity with at most two decimal places,
// dropping trailing zeros so whole numbers print bare.
func FormatQuantity(q float64) string {
	s := strconv.FormatFloat(q, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}
