package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"kwbank/normalization"
	"kwbank/normalization/algorithms"
)

var (
	dedupeThreshold float64
	dedupeAlgorithm string
	dedupeMode      string
)

var dedupeCmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Analyze the bank for duplicate keywords",
	Long: "Runs exact, fuzzy and variant duplicate analysis over the bank.\n" +
		"Mode 'group' builds representative-led similarity groups instead.",
	RunE: runDedupe,
}

func runDedupe(cmd *cobra.Command, args []string) error {
	if !cmd.Flags().Changed("threshold") {
		dedupeThreshold = cfg.InteractiveThreshold
	}

	db, err := openBank()
	if err != nil {
		return err
	}
	defer db.Close()

	keywords, err := db.AllKeywords()
	if err != nil {
		return err
	}
	if len(keywords) == 0 {
		fmt.Println("No keywords found.")
		return nil
	}

	analyzer := normalization.NewKeywordDuplicateAnalyzer()

	switch dedupeMode {
	case "group":
		groups, err := analyzer.GroupDuplicates(keywords, dedupeThreshold, dedupeAlgorithm)
		if err != nil {
			return err
		}

		summary := analyzer.Summary(groups)
		if err := db.LogAction("dedupe_analysis", map[string]string{
			"mode":      dedupeMode,
			"algorithm": dedupeAlgorithm,
			"groups":    fmt.Sprintf("%v", summary["total_groups"]),
		}, "cli"); err != nil {
			return err
		}

		if len(groups) == 0 {
			fmt.Println("✓ No duplicate groups found!")
			return nil
		}

		fmt.Printf("\n=== Duplicate Groups (%d) ===\n\n", len(groups))
		for _, group := range groups {
			fmt.Printf("Representative: %s\n", group.Representative.Text)
			for _, score := range group.Duplicates {
				fmt.Printf("  %.4f  %s\n", score.Similarity, score.Keyword.Text)
			}
			fmt.Println()
		}
		return nil

	case "full":
		exact := analyzer.FindExactDuplicates(keywords)
		fuzzy := analyzer.FindFuzzyDuplicates(keywords, dedupeThreshold)
		variants := analyzer.FindVariantDuplicates(keywords)

		if err := db.LogAction("dedupe_analysis", map[string]string{
			"mode":     dedupeMode,
			"exact":    strconv.Itoa(len(exact)),
			"fuzzy":    strconv.Itoa(len(fuzzy)),
			"variants": strconv.Itoa(len(variants)),
		}, "cli"); err != nil {
			return err
		}

		fmt.Printf("\n=== Duplicate Analysis ===\n\n")

		fmt.Printf("Exact duplicate groups: %d\n", len(exact))
		for _, group := range exact {
			fmt.Printf("  [%s]\n", group.NormalizedText)
			for _, kw := range group.Keywords {
				fmt.Printf("    %s\n", kw.Text)
			}
		}

		fmt.Printf("\nFuzzy duplicate pairs (threshold %.2f): %d\n", dedupeThreshold, len(fuzzy))
		for _, pair := range fuzzy {
			fmt.Printf("  %.4f  %s <-> %s\n", pair.Similarity, pair.First.Text, pair.Second.Text)
		}

		fmt.Printf("\nVariant clusters: %d\n", len(variants))
		for _, cluster := range variants {
			fmt.Printf("  [%s]\n", cluster.Stem)
			for _, kw := range cluster.Keywords {
				fmt.Printf("    %s\n", kw.Text)
			}
		}
		return nil

	default:
		return fmt.Errorf("invalid dedupe mode %q", dedupeMode)
	}
}

func init() {
	dedupeCmd.Flags().Float64Var(&dedupeThreshold, "threshold", normalization.DefaultSimilarityThreshold, "similarity threshold")
	dedupeCmd.Flags().StringVar(&dedupeAlgorithm, "algorithm", algorithms.AlgorithmJaroWinkler, "similarity algorithm (jaro_winkler|levenshtein)")
	dedupeCmd.Flags().StringVar(&dedupeMode, "mode", "full", "analysis mode (full|group)")
}
