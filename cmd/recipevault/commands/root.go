package commands

import (
	"fmt"
	"os"

	"recipevault/lib/configutil"
	"recipevault/services/importer"
	"recipevault/services/notion"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "recipevault",
	Short: "recipevault scrapes recipes and keeps a Notion recipe workspace in sync with them.",
}

// Config is read from recipevault.json5 next to the binary or any
// parent directory. Secrets stay in the environment.
type Config struct {
	Importer importer.Config `json:"importer"`
	// ImageDir is where scraped cover images land.
	ImageDir string `json:"image_dir"`
	// OutputFile is the default recipe interchange file.
	OutputFile string `json:"output_file"`
}

var config Config

func Execute() {
	err := configutil.LoadDotEnv("notion.env")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	config, err = configutil.ReadRecursively[Config]("recipevault.json5")
	if err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	applyConfigDefaults()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func applyConfigDefaults() {
	if config.OutputFile == "" {
		config.OutputFile = "recipes.txt"
	}
	if config.ImageDir == "" {
		config.ImageDir = "images"
	}
	if config.Importer.MappingsFile == "" {
		config.Importer.MappingsFile = "mappings.json"
	}
	if v := os.Getenv("RECIPES_DB_ID"); v != "" {
		config.Importer.RecipesDb = v
	}
	if v := os.Getenv("GROCERIES_DB_ID"); v != "" {
		config.Importer.GroceriesDb = v
	}
	if v := os.Getenv("INGREDIENTS_DB_ID"); v != "" {
		config.Importer.IngredientsDb = v
	}
	if v := os.Getenv("TEMPLATE_PAGE_ID"); v != "" {
		config.Importer.TemplatePage = v
	}
}

// newImporter wires the importer against the live Notion workspace.
// It fails fast when the token or database ids are missing.
func newImporter() (*importer.Service, error) {
	token, err := configutil.RequireEnv("NOTION_TOKEN")
	if err != nil {
		return nil, err
	}
	if config.Importer.RecipesDb == "" || config.Importer.GroceriesDb == "" ||
		config.Importer.IngredientsDb == "" {
		return nil, fmt.Errorf("recipes_db, groceries_db and ingredients_db must be configured")
	}

	client := notion.NewClient(notion.ClientOptions{Token: token})
	return importer.NewService(importer.ServiceOptions{
		Notion:  client,
		Config:  config.Importer,
		Prompts: importer.NewTerminalResolver(os.Stdin, os.Stdout),
	})
}
