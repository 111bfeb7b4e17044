package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/b2bfusion/fusion-engine/internal/config"
	"github.com/b2bfusion/fusion-engine/internal/db"
	"github.com/b2bfusion/fusion-engine/internal/embedding"
	"github.com/b2bfusion/fusion-engine/internal/fusion"
	"github.com/b2bfusion/fusion-engine/internal/llm"
	"github.com/b2bfusion/fusion-engine/internal/observability"
	"github.com/b2bfusion/fusion-engine/internal/taxonomy"
)

var generateVerbose bool

var generateCmd = &cobra.Command{
	Use:   "generate <company_id>",
	Short: "Run the fusion pipeline for one company",
	Long:  `Aggregate the company's stored fragments, extract its profile, and classify it against the taxonomy. Results are written to the database and printed.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().BoolVarP(&generateVerbose, "verbose", "v", false, "Print formatted stage output")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	companyID := args[0]
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()
	if err := database.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	embedder, err := embedding.Global(ctx, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create embedding provider: %w", err)
	}

	entries, err := taxonomy.LoadCSV(cfg.TaxonomyCSV)
	if err != nil {
		return err
	}
	index, err := taxonomy.BuildIndex(ctx, entries, embedder)
	if err != nil {
		return fmt.Errorf("failed to build taxonomy index: %w", err)
	}

	generator := fusion.NewGenerator(
		fusion.NewAggregator(database),
		fusion.NewExtractor(client, cfg.MaxContextChars),
		taxonomy.NewMatcher(index, embedder),
		database,
		database,
		fusion.GeneratorOptions{
			ExtractTimeout:  cfg.ExtractTimeout,
			ClassifyTimeout: cfg.ClassifyTimeout,
		},
	)

	printer := observability.NewPrinter(os.Stdout)
	if generateVerbose {
		counts, cerr := database.CountFragments(ctx, companyID)
		if cerr != nil {
			return cerr
		}
		printer.PrintFragmentCounts(companyID, counts)
	}

	profile, mapping, err := generator.Run(ctx, companyID)
	if err != nil {
		return err
	}

	if generateVerbose {
		printer.PrintProfile(profile)
		printer.PrintMapping(mapping)
	} else {
		fmt.Printf("profile written for %s; matched level: %s (confidence %.3f)\n",
			companyID, mapping.MatchedLevel, mapping.Confidence)
	}
	return nil
}
