package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"kwbank/campaign"
	"kwbank/export"
	"kwbank/models"
)

var (
	campaignBrand    string
	campaignASINs    []string
	campaignStrategy string
	campaignOutput   string
	campaignBudget   float64
	campaignBid      float64
	campaignExcel    bool
)

var createCampaignCmd = &cobra.Command{
	Use:   "create-campaign",
	Short: "Create a new campaign with ASINs and keywords",
	RunE:  runCreateCampaign,
}

func runCreateCampaign(cmd *cobra.Command, args []string) error {
	switch campaignStrategy {
	case "auto", "manual", "exact", "phrase", "broad":
	default:
		return fmt.Errorf("invalid campaign strategy %q", campaignStrategy)
	}

	if !cmd.Flags().Changed("budget") {
		campaignBudget = cfg.DailyBudget
	}
	if !cmd.Flags().Changed("bid") {
		campaignBid = cfg.DefaultBid
	}
	if !cmd.Flags().Changed("output") {
		campaignOutput = filepath.Join(cfg.ExportDir, "campaign.csv")
	}

	db, err := openBank()
	if err != nil {
		return err
	}
	defer db.Close()

	keywords, err := db.KeywordsByBrand(campaignBrand)
	if err != nil {
		return err
	}
	if len(keywords) == 0 {
		return fmt.Errorf("no keywords found for brand %q", campaignBrand)
	}

	positive := []*models.Keyword{}
	negative := []*models.Keyword{}
	for _, kw := range keywords {
		if kw.Polarity == models.PolarityNegative {
			negative = append(negative, kw)
		} else {
			positive = append(positive, kw)
		}
	}

	// Каждая группа объявлений получает полный набор ключевых слов бренда
	generator := campaign.NewNameGenerator()
	adGroups := []*models.AdGroup{}
	for _, asin := range campaignASINs {
		adGroup := &models.AdGroup{
			Name: generator.GenerateAdGroupName(asin, len(positive)),
			ASIN: asin,
		}
		for _, kw := range positive {
			adGroup.AddKeyword(kw)
		}
		for _, kw := range negative {
			adGroup.AddKeyword(kw)
		}
		adGroups = append(adGroups, adGroup)
	}

	newCampaign := &models.Campaign{
		Name:      generator.GenerateWithStrategy(campaignBrand, campaignStrategy, adGroups),
		Brand:     campaignBrand,
		AdGroups:  adGroups,
		CreatedAt: time.Now(),
	}

	if err := db.SaveCampaign(newCampaign); err != nil {
		return err
	}

	if dir := filepath.Dir(campaignOutput); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	exporter := export.NewBulkExporter()
	opts := export.ExportOptions{DailyBudget: campaignBudget, DefaultBid: campaignBid}
	if campaignExcel {
		err = exporter.ExportCampaignsExcel([]*models.Campaign{newCampaign}, campaignOutput, opts)
	} else {
		err = exporter.ExportCampaignCSV(newCampaign, campaignOutput, opts)
	}
	if err != nil {
		return err
	}

	if err := db.LogAction("create_campaign", map[string]string{
		"campaign_name":     newCampaign.Name,
		"brand":             campaignBrand,
		"asins":             strings.Join(campaignASINs, ","),
		"strategy":          campaignStrategy,
		"ad_groups":         strconv.Itoa(len(adGroups)),
		"keywords":          strconv.Itoa(len(positive)),
		"negative_keywords": strconv.Itoa(len(negative)),
		"output_file":       campaignOutput,
	}, "cli"); err != nil {
		return err
	}

	fmt.Printf("✓ Campaign created: %s\n", newCampaign.Name)
	fmt.Printf("  Brand: %s\n", campaignBrand)
	fmt.Printf("  ASINs: %d\n", len(campaignASINs))
	fmt.Printf("  Ad Groups: %d\n", len(adGroups))
	fmt.Printf("  Keywords: %d positive, %d negative\n", len(positive), len(negative))
	fmt.Printf("  Exported to: %s\n", campaignOutput)

	return nil
}

func init() {
	createCampaignCmd.Flags().StringVar(&campaignBrand, "brand", "", "brand name for the campaign")
	createCampaignCmd.Flags().StringArrayVar(&campaignASINs, "asin", nil, "ASIN(s) to include (can specify multiple times)")
	createCampaignCmd.Flags().StringVar(&campaignStrategy, "strategy", "manual", "campaign strategy (auto|manual|exact|phrase|broad)")
	createCampaignCmd.Flags().StringVar(&campaignOutput, "output", "data/exports/campaign.csv", "output file path")
	createCampaignCmd.Flags().Float64Var(&campaignBudget, "budget", 10.0, "daily budget")
	createCampaignCmd.Flags().Float64Var(&campaignBid, "bid", 0.75, "default bid")
	createCampaignCmd.Flags().BoolVar(&campaignExcel, "excel", false, "export as XLSX instead of CSV")
	createCampaignCmd.MarkFlagRequired("brand")
	createCampaignCmd.MarkFlagRequired("asin")
}
