package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"kwbank/importer"
	"kwbank/models"
	"kwbank/normalization"
)

var (
	importBrand     string
	importPolarity  string
	importMatchType string
	importMode      string
	importEnhanced  bool
	importThreshold float64
	importBaseBid   float64
)

var importCmd = &cobra.Command{
	Use:   "import <csv-file>",
	Short: "Import keywords from a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	polarity := models.Polarity(importPolarity)
	if !polarity.Valid() {
		return fmt.Errorf("invalid keyword type %q", importPolarity)
	}
	matchType := models.MatchType(importMatchType)
	if !matchType.Valid() {
		return fmt.Errorf("invalid match type %q", importMatchType)
	}

	if !cmd.Flags().Changed("mode") {
		importMode = cfg.NormalizationMode
	}
	if !cmd.Flags().Changed("fuzzy-threshold") {
		importThreshold = cfg.ImportFuzzyThreshold
	}
	if !cmd.Flags().Changed("base-bid") {
		importBaseBid = cfg.BaseBid
	}

	db, err := openBank()
	if err != nil {
		return err
	}
	defer db.Close()

	csvImporter := importer.NewKeywordCSVImporter(db, normalization.NewKeywordNormalizer(), normalization.NewEnhancedImporter())

	var result *importer.ImportResult
	if importEnhanced {
		result, err = csvImporter.ImportFileEnhanced(args[0], importBrand, matchType, polarity,
			importMode, true, importThreshold, importBaseBid)
	} else {
		result, err = csvImporter.ImportFile(args[0], importBrand, matchType, polarity, importMode)
	}
	if err != nil {
		return err
	}

	details := map[string]string{
		"file":       args[0],
		"brand":      importBrand,
		"added":      strconv.Itoa(result.Added),
		"duplicates": strconv.Itoa(result.Duplicates),
		"type":       importPolarity,
		"match_type": importMatchType,
	}
	if err := db.LogAction("import_keywords", details, "cli"); err != nil {
		return err
	}

	fmt.Printf("✓ Imported %d keywords (%d duplicates skipped)\n", result.Added, result.Duplicates)
	fmt.Printf("  Brand: %s\n", importBrand)
	fmt.Printf("  Type: %s\n", importPolarity)
	fmt.Printf("  Match Type: %s\n", importMatchType)
	if result.Stats != nil {
		fmt.Printf("  Fuzzy duplicates: %d\n", result.Stats.FuzzyDuplicates)
		fmt.Printf("  Enhanced: %d\n", result.Stats.Enhanced)
	}

	return nil
}

func init() {
	importCmd.Flags().StringVar(&importBrand, "brand", "", "brand name for the keywords")
	importCmd.Flags().StringVar(&importPolarity, "keyword-type", "positive", "type of keywords to import (positive|negative)")
	importCmd.Flags().StringVar(&importMatchType, "match-type", "exact", "default match type (exact|phrase|broad)")
	importCmd.Flags().StringVar(&importMode, "mode", normalization.ModeBasic, "normalization mode (basic|enhanced)")
	importCmd.Flags().BoolVar(&importEnhanced, "enhance", false, "run the enhanced import pipeline with fuzzy deduplication")
	importCmd.Flags().Float64Var(&importThreshold, "fuzzy-threshold", normalization.DefaultImportFuzzyThreshold, "similarity threshold for fuzzy rejection")
	importCmd.Flags().Float64Var(&importBaseBid, "base-bid", 1.0, "base bid for intent-driven bid suggestions")
	importCmd.MarkFlagRequired("brand")
}
