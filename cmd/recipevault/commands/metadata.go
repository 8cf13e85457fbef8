package commands

import (
	"fmt"
	"os"

	"recipevault/services/recipe"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(metadataCmd)
}

var metadataCmd = &cobra.Command{
	Use:   "metadata <file>",
	Short: "Refresh links and cover images of already imported recipes.",
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
			err := svc.UpdateRecipeMetadata(cmd.Context(), r)
			if err != nil {
				fmt.Printf("❌ %s: %v\n", r.Title, err)
				failed = true
				continue
			}
			fmt.Printf("✅ %s\n", r.Title)
		}
		if failed {
			os.Exit(1)
		}
	},
}
