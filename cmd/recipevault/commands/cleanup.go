package commands

import (
	"fmt"
	"os"

	"recipevault/services/recipe"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(cleanupCmd)
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup <file>",
	Short: "Archive duplicate ingredient rows on every recipe page named in an interchange file.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			fmt.Fprintln(os.Stderr, "an interchange file is required")
			os.Exit(1)
		}
		text, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		svc, err := newImporter()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		failed := false
		for _, r := range recipe.ParseDocument(string(text)) {
			page, found, err := svc.FindRecipe(cmd.Context(), r.Title)
			if err != nil {
				fmt.Printf("❌ %s: %v\n", r.Title, err)
				failed = true
				continue
			}
			if !found {
				fmt.Printf("⚠️  %s: not in the workspace\n", r.Title)
				continue
			}
			removed, err := svc.CleanupDuplicates(cmd.Context(), page.Id)
			if err != nil {
				fmt.Printf("❌ %s: %v\n", r.Title, err)
				failed = true
				continue
			}
			fmt.Printf("✅ %s: archived %d duplicate(s)\n", r.Title, removed)
		}
		if failed {
			os.Exit(1)
		}
	},
}
