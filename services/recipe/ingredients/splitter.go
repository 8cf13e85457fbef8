// Package ingredients separates descriptive words from the food noun in
// free-form ingredient phrases, so "large ripe banana" files under
// "banana" in the grocery catalog.
package ingredients

import (
	"strings"

	"recipevault/lib/textutil"
)

// Splitter decides where the description ends and the ingredient
// begins. Seeding it with catalog names makes the split exact for
// anything already known, the word lists only back up unknown foods.
type Splitter struct {
	known map[string]bool
}

func NewSplitter() *Splitter {
	return &Splitter{known: map[string]bool{}}
}

// AddKnown registers catalog ingredient names. Names are matched on
// their singularized lowercase form.
func (s *Splitter) AddKnown(names ...string) {
	for _, name := range names {
		key := phraseKey(name)
		if key != "" {
			s.known[key] = true
		}
	}
}

func phraseKey(phrase string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(phrase)))
	for i, w := range words {
		words[i] = textutil.Singularize(w)
	}
	return strings.Join(words, " ")
}

// Split divides a phrase into the base ingredient name and a
// comma-joined description. Resolution order:
//
//  1. the whole phrase names a known ingredient: nothing to split
//  2. the longest run of words naming a known ingredient becomes the
//     base, everything around it the description
//  3. leading common adjectives are stripped, the noun phrase is cut
//     short at the first preparation word or after three words,
//     whichever comes first
func (s *Splitter) Split(phrase string) (string, string) {
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	if phrase == "" {
		return "", ""
	}
	words := strings.Fields(phrase)

	if s.known[phraseKey(phrase)] {
		return phrase, ""
	}

	if base, desc, ok := s.splitOnKnown(words); ok {
		return base, desc
	}
	return splitOnWordLists(words)
}

// splitOnKnown looks for the longest window of words whose singular
// form names a known ingredient. Later windows win ties, food nouns
// tend to sit at the end of the phrase.
func (s *Splitter) splitOnKnown(words []string) (string, string, bool) {
	for size := len(words) - 1; size >= 1; size-- {
		found := -1
		for start := 0; start+size <= len(words); start++ {
			window := strings.Join(words[start:start+size], " ")
			if s.known[phraseKey(window)] {
				found = start
			}
		}
		if found < 0 {
			continue
		}
		base := strings.Join(words[found:found+size], " ")
		var descWords []string
		descWords = append(descWords, words[:found]...)
		descWords = append(descWords, words[found+size:]...)
		return base, strings.Join(descWords, ", "), true
	}
	return "", "", false
}

func splitOnWordLists(words []string) (string, string) {
	var desc []string
	i := 0
	for i < len(words)-1 && commonAdjectives[words[i]] {
		desc = append(desc, words[i])
		i++
	}

	base := words[i:]
	for j, w := range base {
		if j > 0 && (preparationWords[w] || j >= 3) {
			desc = append(desc, base[j:]...)
			base = base[:j]
			break
		}
	}

	return strings.Join(base, " "), strings.Join(desc, ", ")
}
