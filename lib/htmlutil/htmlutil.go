package htmlutil

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		getTextRecursive(child, buffer)
		child = child.NextSibling
	}
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

func removeNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}

// CleanText flattens a selection's text content into a single printable
// line with collapsed whitespace.
func CleanText(sel *goquery.Selection) string {
	text := removeNonPrintable(sel.Text())
	text = strings.Trim(text, " \t\n")
	text = innerWhitespace.ReplaceAllString(text, " ")
	return text
}

// ItemTexts collects the cleaned text of every node in a selection,
// skipping entries that come out empty.
func ItemTexts(sel *goquery.Selection) []string {
	var out []string
	sel.Each(func(_ int, item *goquery.Selection) {
		text := CleanText(item)
		if text != "" {
			out = append(out, text)
		}
	})
	return out
}
