package classification

import (
	"strings"

	"kwbank/models"
)

// IndicatorSets наборы фраз-индикаторов для каждой категории намерения.
// Наборы неизменяемы после создания классификатора: это конфигурация
// экземпляра, а не процесса (безопасно для параллельных областей).
type IndicatorSets struct {
	Awareness     []string
	Consideration []string
	Conversion    []string
}

// defaultIndicatorSets возвращает встроенные наборы индикаторов
func defaultIndicatorSets() IndicatorSets {
	return IndicatorSets{
		Awareness: []string{
			"what is", "how to", "guide", "tips", "learn", "tutorial",
			"best", "top", "review", "compare", "vs", "versus",
		},
		Consideration: []string{
			"compare", "vs", "versus", "review", "reviews", "rating",
			"best", "top", "cheap", "affordable", "discount", "deal",
		},
		Conversion: []string{
			"buy", "purchase", "shop", "order", "sale", "price",
			"discount", "deal", "coupon", "shipping", "delivery",
			"where to buy", "online", "store",
		},
	}
}

// IntentClassifier детерминированный классификатор поискового намерения.
// Считает вхождения фраз-индикаторов (без учета регистра) и выбирает
// категорию с наибольшим счетом; при равенстве конверсия побеждает
// рассмотрение, рассмотрение побеждает узнаваемость.
type IntentClassifier struct {
	indicators IndicatorSets
}

// NewIntentClassifier создает классификатор со встроенными индикаторами
func NewIntentClassifier() *IntentClassifier {
	return &IntentClassifier{indicators: defaultIndicatorSets()}
}

// NewIntentClassifierWithIndicators создает классификатор с кастомными
// наборами индикаторов
func NewIntentClassifierWithIndicators(sets IndicatorSets) *IntentClassifier {
	return &IntentClassifier{indicators: sets}
}

// DetectIntent определяет намерение по тексту ключевого слова
func (ic *IntentClassifier) DetectIntent(text string) models.Intent {
	textLower := strings.ToLower(text)

	awareness := countIndicators(textLower, ic.indicators.Awareness)
	consideration := countIndicators(textLower, ic.indicators.Consideration)
	conversion := countIndicators(textLower, ic.indicators.Conversion)

	maxCount := awareness
	if consideration > maxCount {
		maxCount = consideration
	}
	if conversion > maxCount {
		maxCount = conversion
	}

	if maxCount == 0 {
		return models.IntentUnknown
	}

	// Более конкретное коммерческое намерение выигрывает при равенстве
	switch {
	case conversion == maxCount:
		return models.IntentConversion
	case consideration == maxCount:
		return models.IntentConsideration
	default:
		return models.IntentAwareness
	}
}

// BidMultiplier возвращает множитель ставки для намерения.
// Конверсионные запросы оправдывают более высокие ставки.
func (ic *IntentClassifier) BidMultiplier(intent models.Intent) float64 {
	switch intent {
	case models.IntentConversion:
		return 1.5
	case models.IntentConsideration:
		return 1.2
	default:
		return 1.0
	}
}

// countIndicators считает, сколько индикаторов встречается в тексте
func countIndicators(textLower string, indicators []string) int {
	count := 0
	for _, indicator := range indicators {
		if strings.Contains(textLower, indicator) {
			count++
		}
	}
	return count
}
