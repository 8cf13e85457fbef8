package commands

import (
	"fmt"
	"os"
	"sort"

	"recipevault/services/importer"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	mappingsCmd.AddCommand(mappingsListCmd)
	mappingsCmd.AddCommand(mappingsAddCmd)
	mappingsCmd.AddCommand(mappingsRemoveCmd)
	rootCmd.AddCommand(mappingsCmd)
}

var mappingsCmd = &cobra.Command{
	Use:   "mappings",
	Short: "Inspect and edit the ingredient name mapping file.",
}

func loadMappings() *importer.Mappings {
	m, err := importer.LoadMappings(config.Importer.MappingsFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return m
}

var mappingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List name aliases and saved unit conversion factors.",
	Run: func(cmd *cobra.Command, args []string) {
		m := loadMappings()

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"name", "maps to"})
		names := make([]string, 0, len(m.GroceryMappings))
		for from := range m.GroceryMappings {
			names = append(names, from)
		}
		sort.Strings(names)
		for _, from := range names {
			t.AppendRow(table.Row{from, m.GroceryMappings[from]})
		}
		t.Render()

		if len(m.UnitConversions) == 0 {
			return
		}
		t = table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"conversion", "factor"})
		keys := make([]string, 0, len(m.UnitConversions))
		for key := range m.UnitConversions {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			t.AppendRow(table.Row{key, m.UnitConversions[key]})
		}
		t.Render()
	},
}

var mappingsAddCmd = &cobra.Command{
	Use:   "add <name> <maps to>",
	Short: "Alias an ingredient name to a catalog name.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "incorrect number of arguments")
			os.Exit(1)
		}
		m := loadMappings()
		m.AddName(args[0], args[1])
		if err := m.Flush(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("✅ %s -> %s\n", args[0], args[1])
	},
}

var mappingsRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove an ingredient name alias.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			fmt.Fprintln(os.Stderr, "incorrect number of arguments")
			os.Exit(1)
		}
		m := loadMappings()
		if !m.RemoveName(args[0]) {
			fmt.Fprintln(os.Stderr, "no mapping for", args[0])
			os.Exit(1)
		}
		if err := m.Flush(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("✅ removed %s\n", args[0])
	},
}
