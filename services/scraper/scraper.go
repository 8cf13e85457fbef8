// Package scraper extracts recipes from web pages, preferring the
// schema.org JSON-LD embedded by most recipe sites and falling back to
// a heuristic walk of the page's HTML.
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"recipevault/lib/telemetry"
	"recipevault/services/recipe"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("services/scraper")

type Scraper struct {
	Http *resty.Client
}

type ScraperOptions struct {
	// Timeout defaults to ten seconds.
	Timeout time.Duration
}

func NewScraper(opts ScraperOptions) *Scraper {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 10
	}

	client := resty.New()
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(timeout)

	telemetry.InstrumentResty(client, "scraper/http")

	return &Scraper{Http: client}
}

// Scrape fetches a page and extracts the recipe on it.
func (s *Scraper) Scrape(ctx context.Context, pageUrl string) (recipe.Recipe, error) {
	ctx, span := tracer.Start(ctx, "Scrape")
	defer span.End()

	res, err := s.Http.R().
		SetContext(ctx).
		Get(pageUrl)
	if err != nil {
		return recipe.Recipe{}, fmt.Errorf("fetch %s: %w", pageUrl, err)
	}
	if !res.IsSuccess() {
		return recipe.Recipe{}, fmt.Errorf("fetch %s: status %d", pageUrl, res.StatusCode())
	}

	r, err := Extract(pageUrl, res.Body())
	if err != nil {
		return recipe.Recipe{}, err
	}
	return r, nil
}

// Extract pulls a recipe out of raw page HTML.
func Extract(pageUrl string, pageHtml []byte) (recipe.Recipe, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(pageHtml))
	if err != nil {
		return recipe.Recipe{}, fmt.Errorf("parse html: %w", err)
	}

	r, ok := extractJsonLd(doc)
	if !ok {
		r, ok = extractGeneric(doc)
	}
	if !ok {
		return recipe.Recipe{}, fmt.Errorf("no recipe found on %s", pageUrl)
	}

	r.Link = pageUrl
	if r.Servings <= 0 {
		r.Servings = 1
	}
	return r, nil
}

// PerServing converts out-of-catalog units to metric and rescales
// every quantity to a single serving, which is how the recipe database
// stores amounts.
func PerServing(r recipe.Recipe) recipe.Recipe {
	for gi := range r.Groups {
		for ii, ing := range r.Groups[gi].Ingredients {
			line := recipe.ConvertLine(ing.Line())
			line = recipe.ScaleLine(line, r.Servings)
			if scaled, ok := recipe.ParseIngredient(line); ok {
				r.Groups[gi].Ingredients[ii] = scaled
			}
		}
	}
	return r
}
