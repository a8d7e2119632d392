package campaign

import (
	"fmt"
	"strings"
	"time"

	"kwbank/models"
)

// NameGenerator генератор имен кампаний и групп объявлений по соглашениям
// Amazon PPC. Имена детерминированы с точностью до текущей даты.
type NameGenerator struct {
	now func() time.Time
}

// NewNameGenerator создает генератор имен с системными часами
func NewNameGenerator() *NameGenerator {
	return &NameGenerator{now: time.Now}
}

// NewNameGeneratorWithClock создает генератор с заданными часами (для тестов)
func NewNameGeneratorWithClock(now func() time.Time) *NameGenerator {
	return &NameGenerator{now: now}
}

// Generate строит имя кампании вида {Brand}_{Category}_{Date}_{Suffix}.
// Категория определяется количеством групп объявлений: одна группа —
// SingleASIN, до пяти — MultiASIN_{n}, больше — BulkASIN_{n}.
func (ng *NameGenerator) Generate(brand string, adGroups []*models.AdGroup, suffix string) string {
	dateStr := ng.now().Format("20060102")

	asinCount := len(adGroups)
	var category string
	switch {
	case asinCount == 1:
		category = "SingleASIN"
	case asinCount <= 5:
		category = fmt.Sprintf("MultiASIN_%d", asinCount)
	default:
		category = fmt.Sprintf("BulkASIN_%d", asinCount)
	}

	parts := []string{strings.ReplaceAll(brand, " ", "_"), category, dateStr}
	if suffix != "" {
		parts = append(parts, suffix)
	}

	return strings.Join(parts, "_")
}

// GenerateAdGroupName строит имя группы объявлений вида AG_{ASIN}_{n}kw
func (ng *NameGenerator) GenerateAdGroupName(asin string, keywordCount int) string {
	if keywordCount > 0 {
		return fmt.Sprintf("AG_%s_%dkw", asin, keywordCount)
	}
	return fmt.Sprintf("AG_%s", asin)
}

// GenerateWithStrategy строит имя кампании с явной стратегией таргетинга
// вида {Brand}_{STRATEGY}_{n}ASIN_{Date}
func (ng *NameGenerator) GenerateWithStrategy(brand, strategy string, adGroups []*models.AdGroup) string {
	dateStr := ng.now().Format("20060102")
	return fmt.Sprintf("%s_%s_%dASIN_%s",
		strings.ReplaceAll(brand, " ", "_"), strings.ToUpper(strategy), len(adGroups), dateStr)
}
