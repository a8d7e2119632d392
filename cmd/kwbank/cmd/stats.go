package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics about the keyword bank",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	db, err := openBank()
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := db.Stats()
	if err != nil {
		return err
	}

	fmt.Println("\n=== KWBank Statistics ===")
	fmt.Println()
	fmt.Printf("Total Brands: %d\n", len(stats.ByBrand))
	fmt.Printf("Total Keywords: %d\n", stats.TotalKeywords)
	fmt.Printf("  Positive: %d\n", stats.Positive)
	fmt.Printf("  Negative: %d\n", stats.Negative)
	fmt.Printf("Total Campaigns: %d\n", stats.TotalCampaigns)

	if len(stats.ByBrand) > 0 {
		fmt.Println("\nKeywords by brand:")
		for brand, count := range stats.ByBrand {
			fmt.Printf("  %s: %d\n", brand, count)
		}
	}

	return nil
}
