package commands

import (
	"fmt"
	"os"

	"recipevault/services/recipe"
	"recipevault/services/scraper"

	"github.com/spf13/cobra"
)

var importSteps bool
var importUrl string
var importLocal string

func init() {
	importCmd.Flags().BoolVar(&importSteps, "steps", false, "also write preparation steps into each recipe page")
	importCmd.Flags().StringVar(&importUrl, "url", "", "scrape a url and import it directly")
	importCmd.Flags().StringVar(&importLocal, "local", "", "parse a free-form text file and import it directly")
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import every recipe in an interchange file (or straight from a url) into the Notion workspace.",
	Run: func(cmd *cobra.Command, args []string) {
		text, err := importSource(cmd, args)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		svc, err := newImporter()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		err = svc.SeedSplitterFromCatalog(cmd.Context())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		result, err := svc.ImportDocument(cmd.Context(), text, importSteps)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		for _, title := range result.Imported {
			fmt.Printf("✅ %s\n", title)
		}
		for _, title := range result.Skipped {
			fmt.Printf("❌ %s\n", title)
		}
		if len(result.Skipped) > 0 {
			os.Exit(1)
		}
	},
}

func importSource(cmd *cobra.Command, args []string) (string, error) {
	switch {
	case importUrl != "":
		s := scraper.NewScraper(scraper.ScraperOptions{})
		r, err := s.Scrape(cmd.Context(), importUrl)
		if err != nil {
			return "", err
		}
		return recipe.FormatDocument([]recipe.Recipe{scraper.PerServing(r)}), nil
	case importLocal != "":
		text, err := os.ReadFile(importLocal)
		if err != nil {
			return "", err
		}
		return recipe.FormatDocument(scraper.ParseLocal(string(text))), nil
	default:
		if len(args) < 1 {
			return "", fmt.Errorf("an interchange file, --url or --local is required")
		}
		text, err := os.ReadFile(args[0])
		if err != nil {
			return "", err
		}
		return string(text), nil
	}
}
