package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"kwbank/models"
)

var listBrand string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all keywords in the bank",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openBank()
	if err != nil {
		return err
	}
	defer db.Close()

	var keywords []*models.Keyword
	if listBrand != "" {
		keywords, err = db.KeywordsByBrand(listBrand)
	} else {
		keywords, err = db.AllKeywords()
	}
	if err != nil {
		return err
	}

	if len(keywords) == 0 {
		fmt.Println("No keywords found.")
		return nil
	}

	// Группировка по брендам с сохранением порядка появления
	byBrand := map[string][]*models.Keyword{}
	brandOrder := []string{}
	for _, kw := range keywords {
		if _, ok := byBrand[kw.Brand]; !ok {
			brandOrder = append(brandOrder, kw.Brand)
		}
		byBrand[kw.Brand] = append(byBrand[kw.Brand], kw)
	}

	fmt.Printf("\n=== Keyword Bank (%d total) ===\n\n", len(keywords))

	for _, brand := range brandOrder {
		kws := byBrand[brand]
		positive, negative := 0, 0
		for _, kw := range kws {
			if kw.Polarity == models.PolarityNegative {
				negative++
			} else {
				positive++
			}
		}
		fmt.Printf("%s: %d keywords\n", brand, len(kws))
		fmt.Printf("  Positive: %d, Negative: %d\n", positive, negative)
	}

	return nil
}

func init() {
	listCmd.Flags().StringVar(&listBrand, "brand", "", "filter by brand (optional)")
}
