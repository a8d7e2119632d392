package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"kwbank/models"
)

// Колонки bulk-таблицы Amazon Advertising по типам записей
var (
	campaignColumns = []string{
		"Campaign Name",
		"Campaign Daily Budget",
		"Campaign Start Date",
		"Campaign End Date",
		"Campaign Targeting Type",
		"Portfolio Name",
		"Campaign State",
		"Campaign Bidding Strategy",
	}

	adGroupColumns = []string{
		"Campaign Name",
		"Ad Group Name",
		"Ad Group Default Bid",
		"Ad Group State",
	}

	keywordColumns = []string{
		"Campaign Name",
		"Ad Group Name",
		"Keyword Text",
		"Match Type",
		"Keyword State",
		"Keyword Bid",
	}

	negativeKeywordColumns = []string{
		"Campaign Name",
		"Ad Group Name",
		"Negative Keyword Text",
		"Negative Keyword Match Type",
		"Negative Keyword State",
	}

	productAdColumns = []string{
		"Campaign Name",
		"Ad Group Name",
		"Product SKU",
		"Product ASIN",
		"Product Ad State",
	}
)

// ExportOptions параметры bulk-экспорта
type ExportOptions struct {
	DailyBudget float64 // дневной бюджет кампании
	DefaultBid  float64 // ставка по умолчанию для групп и ключевых слов
}

// DefaultExportOptions возвращает параметры экспорта по умолчанию
func DefaultExportOptions() ExportOptions {
	return ExportOptions{DailyBudget: 10.0, DefaultBid: 0.75}
}

// BulkExporter экспортер кампаний в формат Amazon Advertising Bulk Sheet
type BulkExporter struct{}

// NewBulkExporter создает новый bulk-экспортер
func NewBulkExporter() *BulkExporter {
	return &BulkExporter{}
}

// ExportCampaignCSV экспортирует одну кампанию в bulk CSV файл
func (be *BulkExporter) ExportCampaignCSV(campaign *models.Campaign, path string, opts ExportOptions) error {
	return be.ExportCampaignsCSV([]*models.Campaign{campaign}, path, opts)
}

// ExportCampaignsCSV экспортирует кампании в общий bulk CSV файл.
// Структура файла секционная: каждому типу записи предшествует строка с его
// именем и строка заголовков колонок, секции разделяются пустыми строками.
func (be *BulkExporter) ExportCampaignsCSV(campaigns []*models.Campaign, path string, opts ExportOptions) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	rows := be.bulkRows(campaigns, opts)
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush export file: %w", err)
	}

	return nil
}

// ExportCampaignsExcel экспортирует кампании в bulk XLSX файл с той же
// секционной структурой, что и CSV вариант
func (be *BulkExporter) ExportCampaignsExcel(campaigns []*models.Campaign, path string, opts ExportOptions) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Bulk Sheet"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")

	// Стиль строк-заголовков секций
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	rows := be.bulkRows(campaigns, opts)
	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			f.SetCellValue(sheetName, cell, value)
		}
		// Однострочные секционные маркеры выделяются стилем заголовка
		if len(row) == 1 && row[0] != "" {
			cell, _ := excelize.CoordinatesToCellName(1, rowIdx+1)
			f.SetCellStyle(sheetName, cell, cell, headerStyle)
		}
	}

	for i := range campaignColumns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 22)
	}

	f.SetActiveSheet(index)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}

	return nil
}

// bulkRows строит строки bulk-таблицы для набора кампаний
func (be *BulkExporter) bulkRows(campaigns []*models.Campaign, opts ExportOptions) [][]string {
	budget := strconv.FormatFloat(opts.DailyBudget, 'f', -1, 64)
	bid := strconv.FormatFloat(opts.DefaultBid, 'f', -1, 64)

	rows := [][]string{
		{"Amazon Advertising Bulk Sheet"},
		{},
	}

	for _, campaign := range campaigns {
		rows = append(rows,
			[]string{"Campaign"},
			campaignColumns,
			[]string{campaign.Name, budget, "", "", "Manual", "", "enabled", "legacyForSales"},
			[]string{},
		)

		for _, adGroup := range campaign.AdGroups {
			rows = append(rows,
				[]string{"Ad Group"},
				adGroupColumns,
				[]string{campaign.Name, adGroup.Name, bid, "enabled"},
				[]string{},
				[]string{"Product Ad"},
				productAdColumns,
				[]string{campaign.Name, adGroup.Name, "", adGroup.ASIN, "enabled"},
				[]string{},
			)

			if len(adGroup.Keywords) > 0 {
				rows = append(rows, []string{"Keyword"}, keywordColumns)
				for _, kw := range adGroup.Keywords {
					keywordBid := bid
					if kw.SuggestedBid != nil {
						keywordBid = strconv.FormatFloat(*kw.SuggestedBid, 'f', -1, 64)
					}
					rows = append(rows, []string{
						campaign.Name, adGroup.Name, kw.Text, string(kw.MatchType), "enabled", keywordBid,
					})
				}
				rows = append(rows, []string{})
			}

			if len(adGroup.NegativeKeywords) > 0 {
				rows = append(rows, []string{"Negative Keyword"}, negativeKeywordColumns)
				for _, kw := range adGroup.NegativeKeywords {
					rows = append(rows, []string{
						campaign.Name, adGroup.Name, kw.Text, string(kw.MatchType), "enabled",
					})
				}
				rows = append(rows, []string{})
			}
		}
	}

	return rows
}
