package normalization

import (
	"kwbank/models"
	"kwbank/normalization/algorithms"
)

// Пороги схожести по умолчанию. Действуют только на границе оркестрации:
// сами операции анализатора всегда принимают порог явно.
const (
	// DefaultSimilarityThreshold порог для интерактивных запросов схожести
	DefaultSimilarityThreshold = 0.85
	// DefaultImportFuzzyThreshold порог автоматического поиска нечетких
	// дубликатов при импорте
	DefaultImportFuzzyThreshold = 0.92
)

// ExactDuplicateGroup группа записей с одинаковым нормализованным текстом
// внутри одной области (brand, polarity)
type ExactDuplicateGroup struct {
	NormalizedText string
	Brand          string
	Polarity       models.Polarity
	Keywords       []*models.Keyword
}

// FuzzyDuplicatePair пара записей, чья схожесть достигла порога,
// не будучи текстуально идентичными
type FuzzyDuplicatePair struct {
	First      *models.Keyword
	Second     *models.Keyword
	Similarity float64
}

// DuplicateScore дубликат с оценкой схожести к представителю группы.
// Оценки нечетких групп всегда в [0, 1): точные совпадения моделируются
// как 1.0 и направляются в точную группировку.
type DuplicateScore struct {
	Keyword    *models.Keyword
	Similarity float64
}

// DuplicateGroup представитель и упорядоченный список его дубликатов
type DuplicateGroup struct {
	Representative *models.Keyword
	Duplicates     []DuplicateScore
}

// VariantCluster записи, разделяющие общую эвристическую основу
type VariantCluster struct {
	Stem     string
	Brand    string
	Polarity models.Polarity
	Keywords []*models.Keyword
}

// ConflictGroup нормализованный текст, присутствующий у бренда
// одновременно как позитивное и негативное ключевое слово
type ConflictGroup struct {
	Brand            string
	NormalizedText   string
	PositiveKeywords []string
	NegativeKeywords []string
}

// KeywordDuplicateAnalyzer анализатор дубликатов ключевых слов.
// Все операции сравнивают записи только внутри одной области
// (brand, polarity); сравнения между областями не выполняются никогда.
// Нечеткий поиск квадратичен по размеру области — допустимо для масштаба
// каталога; вызывающая сторона может параллелить независимые области.
type KeywordDuplicateAnalyzer struct {
	metrics *algorithms.SimilarityMetrics
	stemmer *SuffixStemmer
}

// NewKeywordDuplicateAnalyzer создает новый анализатор дубликатов
func NewKeywordDuplicateAnalyzer() *KeywordDuplicateAnalyzer {
	return &KeywordDuplicateAnalyzer{
		metrics: algorithms.NewSimilarityMetrics(),
		stemmer: NewSuffixStemmer(),
	}
}

// FindExactDuplicates группирует записи по нормализованному тексту внутри
// области и возвращает только группы из двух и более элементов.
// O(n) через отображение по ключу дедупликации.
func (kda *KeywordDuplicateAnalyzer) FindExactDuplicates(keywords []*models.Keyword) []ExactDuplicateGroup {
	byKey := make(map[string][]*models.Keyword)
	keyOrder := []string{}

	for _, kw := range keywords {
		key := kw.DedupeKey()
		if _, seen := byKey[key]; !seen {
			keyOrder = append(keyOrder, key)
		}
		byKey[key] = append(byKey[key], kw)
	}

	groups := []ExactDuplicateGroup{}
	for _, key := range keyOrder {
		items := byKey[key]
		if len(items) < 2 {
			continue
		}
		groups = append(groups, ExactDuplicateGroup{
			NormalizedText: items[0].NormalizedText,
			Brand:          items[0].Brand,
			Polarity:       items[0].Polarity,
			Keywords:       items,
		})
	}

	return groups
}

// FindFuzzyDuplicates вычисляет схожесть Джаро-Винклера по нормализованному
// тексту для каждой неупорядоченной пары внутри области и возвращает пары со
// схожестью не ниже порога. Пары, идентичные после нормализации, относятся к
// точным дубликатам и сюда не попадают. Каждая неупорядоченная пара текстов
// проверяется не более одного раза.
func (kda *KeywordDuplicateAnalyzer) FindFuzzyDuplicates(keywords []*models.Keyword, threshold float64) []FuzzyDuplicatePair {
	pairs := []FuzzyDuplicatePair{}
	checked := make(map[string]bool)

	for i := 0; i < len(keywords); i++ {
		for j := i + 1; j < len(keywords); j++ {
			first, second := keywords[i], keywords[j]
			if first.ScopeKey() != second.ScopeKey() {
				continue
			}
			if first.NormalizedText == second.NormalizedText {
				continue
			}

			// Каноническое упорядочивание исходных текстов, чтобы пара
			// с повторяющимися текстами не оценивалась дважды
			pairKey := first.Text + "\x1f" + second.Text
			if second.Text < first.Text {
				pairKey = second.Text + "\x1f" + first.Text
			}
			pairKey = first.ScopeKey() + "\x1f" + pairKey
			if checked[pairKey] {
				continue
			}
			checked[pairKey] = true

			similarity := kda.metrics.JaroWinkler(first.NormalizedText, second.NormalizedText)
			if similarity >= threshold {
				pairs = append(pairs, FuzzyDuplicatePair{
					First:      first,
					Second:     second,
					Similarity: similarity,
				})
			}
		}
	}

	return pairs
}

// FindVariantDuplicates стеммит нормализованный текст каждой записи,
// группирует по основе внутри области и возвращает группы из двух и более
// элементов
func (kda *KeywordDuplicateAnalyzer) FindVariantDuplicates(keywords []*models.Keyword) []VariantCluster {
	byStem := make(map[string][]*models.Keyword)
	stems := make(map[string]string)
	keyOrder := []string{}

	for _, kw := range keywords {
		stem := kda.stemmer.StemText(kw.NormalizedText)
		key := kw.ScopeKey() + "\x1f" + stem
		if _, seen := byStem[key]; !seen {
			keyOrder = append(keyOrder, key)
			stems[key] = stem
		}
		byStem[key] = append(byStem[key], kw)
	}

	clusters := []VariantCluster{}
	for _, key := range keyOrder {
		items := byStem[key]
		if len(items) < 2 {
			continue
		}
		clusters = append(clusters, VariantCluster{
			Stem:     stems[key],
			Brand:    items[0].Brand,
			Polarity: items[0].Polarity,
			Keywords: items,
		})
	}

	return clusters
}

// GroupDuplicates собирает нечеткие дубликаты в группы с представителем:
// первая необработанная запись становится представителем, к ней жадно
// присоединяются все еще не обработанные записи области со схожестью
// в [threshold, 1.0). Алгоритм схожести выбирается по имени; неизвестное
// имя — ошибка конфигурации.
func (kda *KeywordDuplicateAnalyzer) GroupDuplicates(keywords []*models.Keyword, threshold float64, algorithm string) ([]DuplicateGroup, error) {
	groups := []DuplicateGroup{}
	processed := make(map[string]bool)

	for i, kw := range keywords {
		if processed[kw.ID] {
			continue
		}

		duplicates := []DuplicateScore{}
		for j, candidate := range keywords {
			if i == j || processed[candidate.ID] {
				continue
			}
			if kw.ScopeKey() != candidate.ScopeKey() {
				continue
			}

			similarity, err := kda.metrics.SimilarityByName(algorithm, kw.NormalizedText, candidate.NormalizedText)
			if err != nil {
				return nil, err
			}

			if similarity >= threshold && similarity < 1.0 {
				duplicates = append(duplicates, DuplicateScore{Keyword: candidate, Similarity: similarity})
				processed[candidate.ID] = true
			}
		}

		if len(duplicates) > 0 {
			groups = append(groups, DuplicateGroup{Representative: kw, Duplicates: duplicates})
			processed[kw.ID] = true
		}
	}

	return groups, nil
}

// DetectConflicts находит нормализованные тексты, присутствующие у бренда
// с обеими полярностями. Это единственное намеренное сравнение поверх оси
// полярности: конфликт таргетинга и исключения, а не дубликат.
func (kda *KeywordDuplicateAnalyzer) DetectConflicts(keywords []*models.Keyword) []ConflictGroup {
	type brandTexts struct {
		positive map[string][]string
		negative map[string][]string
		order    []string
	}

	byBrand := make(map[string]*brandTexts)
	brandOrder := []string{}

	for _, kw := range keywords {
		bt, ok := byBrand[kw.Brand]
		if !ok {
			bt = &brandTexts{
				positive: make(map[string][]string),
				negative: make(map[string][]string),
			}
			byBrand[kw.Brand] = bt
			brandOrder = append(brandOrder, kw.Brand)
		}

		if _, posSeen := bt.positive[kw.NormalizedText]; !posSeen {
			if _, negSeen := bt.negative[kw.NormalizedText]; !negSeen {
				bt.order = append(bt.order, kw.NormalizedText)
			}
		}

		if kw.Polarity == models.PolarityNegative {
			bt.negative[kw.NormalizedText] = append(bt.negative[kw.NormalizedText], kw.Text)
		} else {
			bt.positive[kw.NormalizedText] = append(bt.positive[kw.NormalizedText], kw.Text)
		}
	}

	conflicts := []ConflictGroup{}
	for _, brand := range brandOrder {
		bt := byBrand[brand]
		for _, normalized := range bt.order {
			positives := bt.positive[normalized]
			negatives := bt.negative[normalized]
			if len(positives) > 0 && len(negatives) > 0 {
				conflicts = append(conflicts, ConflictGroup{
					Brand:            brand,
					NormalizedText:   normalized,
					PositiveKeywords: positives,
					NegativeKeywords: negatives,
				})
			}
		}
	}

	return conflicts
}

// Summary возвращает сводку по группам дубликатов
func (kda *KeywordDuplicateAnalyzer) Summary(groups []DuplicateGroup) map[string]interface{} {
	totalDuplicates := 0
	for _, group := range groups {
		totalDuplicates += len(group.Duplicates)
	}

	return map[string]interface{}{
		"total_groups":     len(groups),
		"total_duplicates": totalDuplicates,
	}
}
