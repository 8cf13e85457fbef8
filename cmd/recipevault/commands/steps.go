package commands

import (
	"fmt"
	"os"

	"recipevault/services/recipe"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(stepsCmd)
}

var stepsCmd = &cobra.Command{
	Use:   "steps <file>",
	Short: "Write preparation steps into the pages of already imported recipes.",
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
			if len(r.Steps) == 0 {
				continue
			}
			page, found, err := svc.FindRecipe(cmd.Context(), r.Title)
			if err != nil {
				fmt.Printf("❌ %s: %v\n", r.Title, err)
				failed = true
				continue
			}
			if !found {
				fmt.Printf("⚠️  %s: not in the workspace, import it first\n", r.Title)
				continue
			}
			err = svc.AddSteps(cmd.Context(), page.Id, r)
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
