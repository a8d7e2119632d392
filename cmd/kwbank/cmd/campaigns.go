package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var campaignsBrand string

var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "List all campaigns",
	RunE:  runCampaigns,
}

func runCampaigns(cmd *cobra.Command, args []string) error {
	db, err := openBank()
	if err != nil {
		return err
	}
	defer db.Close()

	campaigns, err := db.Campaigns(campaignsBrand)
	if err != nil {
		return err
	}

	if len(campaigns) == 0 {
		fmt.Println("No campaigns found.")
		return nil
	}

	fmt.Printf("\n=== Campaigns (%d total) ===\n\n", len(campaigns))
	for _, summary := range campaigns {
		fmt.Printf("%s\n", summary.Name)
		fmt.Printf("  Brand: %s\n", summary.Brand)
		fmt.Printf("  Ad Groups: %d\n", summary.AdGroups)
		fmt.Printf("  Created: %s\n", summary.CreatedAt.Format("2006-01-02 15:04"))
		fmt.Println()
	}

	return nil
}

func init() {
	campaignsCmd.Flags().StringVar(&campaignsBrand, "brand", "", "filter by brand (optional)")
}
