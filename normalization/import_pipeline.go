package normalization

import (
	"math"

	"kwbank/classification"
	"kwbank/models"
	"kwbank/normalization/algorithms"
)

// ImportStats статистика расширенного импорта
type ImportStats struct {
	FuzzyDuplicates    int                   `json:"fuzzy_duplicates"`
	Enhanced           int                   `json:"enhanced"`
	IntentDistribution map[models.Intent]int `json:"intent_distribution"`
}

// ImportEnhancedResult итог расширенного импорта
type ImportEnhancedResult struct {
	Added      int         `json:"added"`
	Duplicates int         `json:"duplicates"`
	Stats      ImportStats `json:"stats"`
}

// EnhancedImporter конвейер расширенного импорта: нормализует входящие
// записи, отсекает точные и нечеткие дубликаты и обогащает принятые записи
// намерением и рекомендованной ставкой за один проход
type EnhancedImporter struct {
	normalizer *KeywordNormalizer
	classifier *classification.IntentClassifier
	metrics    *algorithms.SimilarityMetrics
}

// NewEnhancedImporter создает конвейер импорта
func NewEnhancedImporter() *EnhancedImporter {
	return &EnhancedImporter{
		normalizer: NewKeywordNormalizer(),
		classifier: classification.NewIntentClassifier(),
		metrics:    algorithms.NewSimilarityMetrics(),
	}
}

// EnhanceKeyword лениво заполняет намерение и рекомендованную ставку.
// Уже установленные значения не перезаписываются, поэтому повторный вызов
// с теми же аргументами ничего не меняет. Возвращает true, если запись
// была изменена.
func (ei *EnhancedImporter) EnhanceKeyword(kw *models.Keyword, baseBid float64) bool {
	changed := false

	if kw.Intent == "" || kw.Intent == models.IntentUnknown {
		if detected := ei.classifier.DetectIntent(kw.Text); detected != kw.Intent {
			kw.Intent = detected
			changed = true
		}
	}

	if kw.SuggestedBid == nil {
		bid := roundToCents(baseBid * ei.classifier.BidMultiplier(kw.Intent))
		kw.SuggestedBid = &bid
		changed = true
	}

	return changed
}

// ImportEnhanced обрабатывает входящие записи в порядке поступления против
// кумулятивного множества существующих и уже принятых записей:
//  1. нормализация по именованному режиму;
//  2. отказ, если ключ (normalized_text, polarity, brand) уже занят;
//  3. отказ, если запись — нечеткий дубликат какой-либо записи области
//     (первое совпадение решает, дальше область не сканируется);
//  4. прием; при autoEnhance — обогащение и учет намерения.
//
// Порядок обработки определяет, какая из сгруппировавшихся записей
// останется принятой.
func (ei *EnhancedImporter) ImportEnhanced(
	incoming []*models.Keyword,
	existing []*models.Keyword,
	mode string,
	autoEnhance bool,
	fuzzyThreshold float64,
	baseBid float64,
) (*ImportEnhancedResult, []*models.Keyword, error) {
	opts, err := OptionsForMode(mode)
	if err != nil {
		return nil, nil, err
	}

	result := &ImportEnhancedResult{
		Stats: ImportStats{IntentDistribution: make(map[models.Intent]int)},
	}

	// Кумулятивное множество: существующие записи плюс принятые в этом же
	// прогоне, в порядке поступления
	pool := make([]*models.Keyword, 0, len(existing)+len(incoming))
	pool = append(pool, existing...)
	seenKeys := make(map[string]bool, len(existing))
	for _, kw := range existing {
		seenKeys[kw.DedupeKey()] = true
	}

	accepted := []*models.Keyword{}

	for _, kw := range incoming {
		kw.NormalizedText = ei.normalizer.Normalize(kw.Text, opts)

		// Точный дубликат по ключу области
		if seenKeys[kw.DedupeKey()] {
			result.Duplicates++
			continue
		}

		// Нечеткий дубликат: первое совпадение решает
		if ei.hasFuzzyMatch(kw, pool, fuzzyThreshold) {
			result.Duplicates++
			result.Stats.FuzzyDuplicates++
			continue
		}

		if autoEnhance {
			if ei.EnhanceKeyword(kw, baseBid) {
				result.Stats.Enhanced++
			}
			result.Stats.IntentDistribution[kw.Intent]++
		}

		accepted = append(accepted, kw)
		pool = append(pool, kw)
		seenKeys[kw.DedupeKey()] = true
		result.Added++
	}

	return result, accepted, nil
}

// hasFuzzyMatch проверяет, является ли запись нечетким дубликатом
// какой-либо записи пула в той же области. Останавливается на первом
// совпадении — поиск лучшего соответствия не выполняется.
func (ei *EnhancedImporter) hasFuzzyMatch(kw *models.Keyword, pool []*models.Keyword, threshold float64) bool {
	for _, candidate := range pool {
		if candidate.ScopeKey() != kw.ScopeKey() {
			continue
		}
		if candidate.NormalizedText == kw.NormalizedText {
			continue
		}
		if ei.metrics.JaroWinkler(kw.NormalizedText, candidate.NormalizedText) >= threshold {
			return true
		}
	}
	return false
}

// roundToCents округляет денежное значение до двух знаков
func roundToCents(value float64) float64 {
	return math.Round(value*100) / 100
}
