package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"kwbank/normalization"
)

var conflictsCmd = &cobra.Command{
	Use:   "conflicts",
	Short: "Detect conflicts between positive and negative keywords",
	RunE:  runConflicts,
}

func runConflicts(cmd *cobra.Command, args []string) error {
	db, err := openBank()
	if err != nil {
		return err
	}
	defer db.Close()

	keywords, err := db.AllKeywords()
	if err != nil {
		return err
	}

	analyzer := normalization.NewKeywordDuplicateAnalyzer()
	conflicts := analyzer.DetectConflicts(keywords)

	if err := db.LogAction("detect_conflicts", map[string]string{
		"conflicts_found": strconv.Itoa(len(conflicts)),
	}, "cli"); err != nil {
		return err
	}

	if len(conflicts) == 0 {
		fmt.Println("✓ No conflicts detected!")
		return nil
	}

	fmt.Printf("\n⚠ Found %d conflicts:\n\n", len(conflicts))
	for _, conflict := range conflicts {
		fmt.Printf("Brand: %s\n", conflict.Brand)
		fmt.Printf("  Keyword: %s\n", conflict.NormalizedText)
		fmt.Printf("  Positive: %s\n", strings.Join(conflict.PositiveKeywords, ", "))
		fmt.Printf("  Negative: %s\n", strings.Join(conflict.NegativeKeywords, ", "))
		fmt.Println()
	}

	return nil
}
