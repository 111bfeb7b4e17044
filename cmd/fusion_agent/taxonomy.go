package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/b2bfusion/fusion-engine/internal/config"
	"github.com/b2bfusion/fusion-engine/internal/taxonomy"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Taxonomy utilities",
}

var taxonomyCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the taxonomy CSV without embedding it",
	Long:  `Parse the configured taxonomy CSV and report row counts. Fails with the same errors the server would hit at startup.`,
	RunE:  runTaxonomyCheck,
}

func init() {
	taxonomyCmd.AddCommand(taxonomyCheckCmd)
	rootCmd.AddCommand(taxonomyCmd)
}

func runTaxonomyCheck(_ *cobra.Command, _ []string) error {
	// The check needs no database or API key, so the path comes straight
	// from the environment rather than the full config.
	path := config.TaxonomyCSVPath()

	entries, err := taxonomy.LoadCSV(path)
	if err != nil {
		return err
	}

	sectors := distinct(entries, func(e taxonomy.Entry) string { return e.Sector })
	industries := distinct(entries, func(e taxonomy.Entry) string { return e.Industry })
	subIndustries := distinct(entries, func(e taxonomy.Entry) string { return e.SubIndustry })

	fmt.Printf("taxonomy OK: %s\n", path)
	fmt.Printf("  rows:           %d\n", len(entries))
	fmt.Printf("  sectors:        %d\n", sectors)
	fmt.Printf("  industries:     %d\n", industries)
	fmt.Printf("  sub-industries: %d\n", subIndustries)
	return nil
}

func distinct(entries []taxonomy.Entry, key func(taxonomy.Entry) string) int {
	seen := make(map[string]struct{})
	for _, e := range entries {
		seen[key(e)] = struct{}{}
	}
	return len(seen)
}
