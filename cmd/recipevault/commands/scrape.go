package commands

import (
	"fmt"
	"os"

	"recipevault/services/recipe"
	"recipevault/services/scraper"

	"github.com/spf13/cobra"
)

var scrapeLocal string
var scrapeOut string
var scrapeImages bool
var scrapeNoScale bool

func init() {
	scrapeCmd.Flags().StringVar(&scrapeLocal, "local", "", "parse a local free-form text file instead of fetching a url")
	scrapeCmd.Flags().StringVarP(&scrapeOut, "out", "o", "", "interchange file to append to (default from config)")
	scrapeCmd.Flags().BoolVar(&scrapeImages, "images", false, "download recipe cover images")
	scrapeCmd.Flags().BoolVar(&scrapeNoScale, "no-scale", false, "keep original quantities instead of scaling to one serving")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Scrape a recipe from a web page (or a local text file) and append it to the interchange file.",
	Run: func(cmd *cobra.Command, args []string) {
		s := scraper.NewScraper(scraper.ScraperOptions{})

		var recipes []recipe.Recipe
		if scrapeLocal != "" {
			text, err := os.ReadFile(scrapeLocal)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			recipes = scraper.ParseLocal(string(text))
			if len(recipes) == 0 {
				fmt.Fprintln(os.Stderr, "no recipes found in", scrapeLocal)
				os.Exit(1)
			}
		} else {
			if len(args) < 1 {
				fmt.Fprintln(os.Stderr, "a url or --local file is required")
				os.Exit(1)
			}
			r, err := s.Scrape(cmd.Context(), args[0])
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			recipes = []recipe.Recipe{r}
		}

		for i := range recipes {
			if !scrapeNoScale {
				recipes[i] = scraper.PerServing(recipes[i])
			}
			if scrapeImages && recipes[i].Image != "" {
				path, err := s.DownloadImage(
					cmd.Context(), recipes[i].Image, recipes[i].Title, config.ImageDir)
				if err != nil {
					fmt.Printf("⚠️  image download failed for %s: %v\n", recipes[i].Title, err)
				} else {
					fmt.Printf("🖼️  %s\n", path)
				}
			}
		}

		out := scrapeOut
		if out == "" {
			out = config.OutputFile
		}
		if err := appendDocument(out, recipes); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		for _, r := range recipes {
			fmt.Printf("✅ %s -> %s\n", r.Title, out)
		}
	},
}

// appendDocument appends recipes to an interchange file, separating
// them from any existing content with a blank line.
func appendDocument(path string, recipes []recipe.Recipe) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	doc := recipe.FormatDocument(recipes)
	if info.Size() > 0 {
		doc = "\n" + doc
	}
	_, err = f.WriteString(doc)
	return err
}
