package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"kwbank/models"
)

// makeTestCampaign создает кампанию с одной группой объявлений для тестов
func makeTestCampaign() *models.Campaign {
	positive := models.NewKeyword("running shoes", "Nike", models.MatchExact, models.PolarityPositive)
	bid := 1.13
	positive.SuggestedBid = &bid

	negative := models.NewKeyword("cheap knockoff", "Nike", models.MatchBroad, models.PolarityNegative)

	adGroup := &models.AdGroup{Name: "Running Shoes", ASIN: "B01ABCDEF0"}
	adGroup.AddKeyword(positive)
	adGroup.AddKeyword(negative)

	campaign := &models.Campaign{
		Name:      "Nike - Running - 2026-08",
		Brand:     "Nike",
		CreatedAt: time.Now(),
	}
	campaign.AddAdGroup(adGroup)

	return campaign
}

func TestExportCampaignCSV(t *testing.T) {
	exporter := NewBulkExporter()
	campaign := makeTestCampaign()

	path := filepath.Join(t.TempDir(), "bulk.csv")
	if err := exporter.ExportCampaignCSV(campaign, path, DefaultExportOptions()); err != nil {
		t.Fatalf("ExportCampaignCSV() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read export file: %v", err)
	}
	content := string(raw)

	if !strings.HasPrefix(content, "Amazon Advertising Bulk Sheet\n") {
		t.Errorf("export does not start with bulk sheet banner")
	}

	for _, marker := range []string{"Campaign\n", "Ad Group\n", "Product Ad\n", "Keyword\n", "Negative Keyword\n"} {
		if !strings.Contains(content, marker) {
			t.Errorf("export missing section marker %q", strings.TrimSpace(marker))
		}
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("export is not valid csv: %v", err)
	}

	// Находим строку данных кампании сразу после строки заголовков
	var campaignRow, keywordRow, negativeRow []string
	for i, record := range records {
		if len(record) == 8 && record[0] == campaign.Name && i > 0 && records[i-1][0] == "Campaign Name" {
			campaignRow = record
		}
		if len(record) == 6 && record[2] == "running shoes" {
			keywordRow = record
		}
		if len(record) == 5 && record[2] == "cheap knockoff" {
			negativeRow = record
		}
	}

	if campaignRow == nil {
		t.Fatal("campaign data row not found")
	}
	if campaignRow[1] != "10" || campaignRow[4] != "Manual" || campaignRow[7] != "legacyForSales" {
		t.Errorf("campaign row = %v, want budget 10, Manual targeting, legacyForSales", campaignRow)
	}

	if keywordRow == nil {
		t.Fatal("keyword data row not found")
	}
	if keywordRow[3] != "exact" || keywordRow[4] != "enabled" {
		t.Errorf("keyword row = %v, want exact match enabled", keywordRow)
	}
	// Рекомендованная ставка записи имеет приоритет над ставкой по умолчанию
	if keywordRow[5] != "1.13" {
		t.Errorf("keyword bid = %q, want %q", keywordRow[5], "1.13")
	}

	if negativeRow == nil {
		t.Fatal("negative keyword data row not found")
	}
	if negativeRow[3] != "broad" || negativeRow[4] != "enabled" {
		t.Errorf("negative keyword row = %v, want broad match enabled", negativeRow)
	}
}

func TestExportCampaignsCSVMultiple(t *testing.T) {
	exporter := NewBulkExporter()

	first := makeTestCampaign()
	second := makeTestCampaign()
	second.Name = "Nike - Trail - 2026-08"

	path := filepath.Join(t.TempDir(), "bulk.csv")
	if err := exporter.ExportCampaignsCSV([]*models.Campaign{first, second}, path, DefaultExportOptions()); err != nil {
		t.Fatalf("ExportCampaignsCSV() error = %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read export file: %v", err)
	}
	content := string(raw)

	if strings.Count(content, "Campaign\n") != 2 {
		t.Errorf("expected 2 campaign sections, got %d", strings.Count(content, "Campaign\n"))
	}
	if !strings.Contains(content, first.Name) || !strings.Contains(content, second.Name) {
		t.Error("export missing one of the campaign names")
	}
}

func TestExportCampaignsExcel(t *testing.T) {
	exporter := NewBulkExporter()
	campaign := makeTestCampaign()

	path := filepath.Join(t.TempDir(), "bulk.xlsx")
	if err := exporter.ExportCampaignsExcel([]*models.Campaign{campaign}, path, DefaultExportOptions()); err != nil {
		t.Fatalf("ExportCampaignsExcel() error = %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to open exported xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Bulk Sheet")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) == 0 || rows[0][0] != "Amazon Advertising Bulk Sheet" {
		t.Fatalf("xlsx does not start with bulk sheet banner: %v", rows)
	}

	var foundKeyword bool
	for _, row := range rows {
		if len(row) >= 3 && row[2] == "running shoes" {
			foundKeyword = true
		}
	}
	if !foundKeyword {
		t.Error("keyword row not found in xlsx export")
	}
}
