package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"kwbank/database"
	"kwbank/models"
	"kwbank/normalization"
)

// KeywordCSVImporter импортер ключевых слов из CSV файлов в банк
type KeywordCSVImporter struct {
	db         *database.BankDB
	normalizer *normalization.KeywordNormalizer
	pipeline   *normalization.EnhancedImporter
}

// NewKeywordCSVImporter создает новый импортер ключевых слов
func NewKeywordCSVImporter(db *database.BankDB, normalizer *normalization.KeywordNormalizer, pipeline *normalization.EnhancedImporter) *KeywordCSVImporter {
	return &KeywordCSVImporter{
		db:         db,
		normalizer: normalizer,
		pipeline:   pipeline,
	}
}

// ImportResult результат импорта CSV файла
type ImportResult struct {
	Total      int
	Added      int
	Duplicates int
	Stats      *normalization.ImportStats
	Started    time.Time
	Completed  time.Time
	Duration   time.Duration
}

// ParseFile читает CSV файл и возвращает записи ключевых слов.
// Ожидается одна колонка с текстом ключевого слова; строка заголовка,
// начинающаяся с "keyword", пропускается.
func (ki *KeywordCSVImporter) ParseFile(path, brand string, matchType models.MatchType, polarity models.Polarity) ([]*models.Keyword, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv file: %w", err)
	}
	defer file.Close()

	return ki.parse(file, brand, matchType, polarity)
}

// parse читает записи из CSV потока
func (ki *KeywordCSVImporter) parse(r io.Reader, brand string, matchType models.MatchType, polarity models.Polarity) ([]*models.Keyword, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	keywords := []*models.Keyword{}
	first := true

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}

		if len(row) == 0 {
			continue
		}
		text := strings.TrimSpace(row[0])

		// Первая строка может быть заголовком
		if first {
			first = false
			if strings.HasPrefix(strings.ToLower(text), "keyword") {
				continue
			}
		}

		if text == "" {
			continue
		}

		keywords = append(keywords, models.NewKeyword(text, brand, matchType, polarity))
	}

	return keywords, nil
}

// ImportFile импортирует CSV файл в банк с точной дедупликацией
func (ki *KeywordCSVImporter) ImportFile(path, brand string, matchType models.MatchType, polarity models.Polarity, mode string) (*ImportResult, error) {
	result := &ImportResult{Started: time.Now()}

	keywords, err := ki.ParseFile(path, brand, matchType, polarity)
	if err != nil {
		return nil, err
	}
	result.Total = len(keywords)

	opts, err := normalization.OptionsForMode(mode)
	if err != nil {
		return nil, err
	}
	for _, kw := range keywords {
		kw.NormalizedText = ki.normalizer.Normalize(kw.Text, opts)
	}

	added, duplicates, err := ki.db.ImportKeywords(keywords)
	if err != nil {
		return nil, err
	}
	result.Added = added
	result.Duplicates = duplicates

	result.Completed = time.Now()
	result.Duration = result.Completed.Sub(result.Started)

	slog.Info("csv import completed",
		"file", path,
		"brand", brand,
		"total", result.Total,
		"added", result.Added,
		"duplicates", result.Duplicates)

	return result, nil
}

// ImportFileEnhanced импортирует CSV файл через конвейер расширенного импорта:
// нормализация, точная и нечеткая дедупликация против содержимого банка,
// опциональное обогащение намерением и ставкой
func (ki *KeywordCSVImporter) ImportFileEnhanced(path, brand string, matchType models.MatchType, polarity models.Polarity, mode string, autoEnhance bool, fuzzyThreshold, baseBid float64) (*ImportResult, error) {
	result := &ImportResult{Started: time.Now()}

	keywords, err := ki.ParseFile(path, brand, matchType, polarity)
	if err != nil {
		return nil, err
	}
	result.Total = len(keywords)

	existing, err := ki.db.AllKeywords()
	if err != nil {
		return nil, err
	}

	pipelineResult, accepted, err := ki.pipeline.ImportEnhanced(keywords, existing, mode, autoEnhance, fuzzyThreshold, baseBid)
	if err != nil {
		return nil, err
	}

	added, duplicates, err := ki.db.ImportKeywords(accepted)
	if err != nil {
		return nil, err
	}

	result.Added = added
	// Конвейер уже отсеял дубликаты против банка; duplicates из ImportKeywords
	// может быть ненулевым только при гонке записей
	result.Duplicates = pipelineResult.Duplicates + duplicates
	result.Stats = &pipelineResult.Stats

	result.Completed = time.Now()
	result.Duration = result.Completed.Sub(result.Started)

	slog.Info("enhanced csv import completed",
		"file", path,
		"brand", brand,
		"total", result.Total,
		"added", result.Added,
		"duplicates", result.Duplicates,
		"fuzzy_duplicates", result.Stats.FuzzyDuplicates,
		"enhanced", result.Stats.Enhanced)

	return result, nil
}
