package normalization

import (
	"errors"
	"testing"

	"kwbank/models"
	"kwbank/normalization/algorithms"
)

// makeTestKeyword создает тестовую запись с вычисленным нормализованным текстом
func makeTestKeyword(text, brand string, polarity models.Polarity) *models.Keyword {
	kw := models.NewKeyword(text, brand, models.MatchExact, polarity)
	kw.NormalizedText = NewKeywordNormalizer().Normalize(text, Options{})
	return kw
}

// TestFindExactDuplicates пример из контракта: два написания "running shoes"
// и один посторонний текст дают одну группу из двух записей
func TestFindExactDuplicates(t *testing.T) {
	kda := NewKeywordDuplicateAnalyzer()

	keywords := []*models.Keyword{
		makeTestKeyword("Running Shoes", "Acme", models.PolarityPositive),
		makeTestKeyword("running   shoes", "Acme", models.PolarityPositive),
		makeTestKeyword("Hiking Boots", "Acme", models.PolarityPositive),
	}

	groups := kda.FindExactDuplicates(keywords)

	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].NormalizedText != "running shoes" {
		t.Errorf("group key = %q, expected %q", groups[0].NormalizedText, "running shoes")
	}
	if len(groups[0].Keywords) != 2 {
		t.Errorf("group size = %d, expected 2", len(groups[0].Keywords))
	}
}

// TestFindExactDuplicates_ScopeIsolation записи разных брендов и полярностей
// никогда не группируются вместе
func TestFindExactDuplicates_ScopeIsolation(t *testing.T) {
	kda := NewKeywordDuplicateAnalyzer()

	keywords := []*models.Keyword{
		makeTestKeyword("running shoes", "Acme", models.PolarityPositive),
		makeTestKeyword("running shoes", "Globex", models.PolarityPositive),
		makeTestKeyword("running shoes", "Acme", models.PolarityNegative),
	}

	if groups := kda.FindExactDuplicates(keywords); len(groups) != 0 {
		t.Errorf("expected no groups across brand/polarity scopes, got %d", len(groups))
	}
}

// TestFindFuzzyDuplicates опечатка ловится порогом 0.85, идентичные после
// нормализации пары исключаются
func TestFindFuzzyDuplicates(t *testing.T) {
	kda := NewKeywordDuplicateAnalyzer()

	keywords := []*models.Keyword{
		makeTestKeyword("running shoes", "Acme", models.PolarityPositive),
		makeTestKeyword("runing shoe", "Acme", models.PolarityPositive),
		makeTestKeyword("Running Shoes", "Acme", models.PolarityPositive), // точный дубликат первой
		makeTestKeyword("office chair", "Acme", models.PolarityPositive),
	}

	pairs := kda.FindFuzzyDuplicates(keywords, 0.85)

	if len(pairs) != 2 {
		t.Fatalf("expected 2 fuzzy pairs (typo vs both spellings), got %d", len(pairs))
	}
	for _, pair := range pairs {
		if pair.Similarity < 0.85 || pair.Similarity >= 1.0 {
			t.Errorf("fuzzy similarity %f out of [0.85, 1.0)", pair.Similarity)
		}
		if pair.First.NormalizedText == pair.Second.NormalizedText {
			t.Errorf("identical normalized texts must be routed to exact duplicates")
		}
	}
}

// TestFindFuzzyDuplicates_CrossScope пары из разных областей не сравниваются
func TestFindFuzzyDuplicates_CrossScope(t *testing.T) {
	kda := NewKeywordDuplicateAnalyzer()

	keywords := []*models.Keyword{
		makeTestKeyword("running shoes", "Acme", models.PolarityPositive),
		makeTestKeyword("runing shoes", "Globex", models.PolarityPositive),
		makeTestKeyword("runing shoe", "Acme", models.PolarityNegative),
	}

	if pairs := kda.FindFuzzyDuplicates(keywords, 0.85); len(pairs) != 0 {
		t.Errorf("expected no cross-scope fuzzy pairs, got %d", len(pairs))
	}
}

// TestFindVariantDuplicates записи с общей основой попадают в один кластер
func TestFindVariantDuplicates(t *testing.T) {
	kda := NewKeywordDuplicateAnalyzer()

	keywords := []*models.Keyword{
		makeTestKeyword("running shoes", "Acme", models.PolarityPositive), // runn sho
		makeTestKeyword("runner shoes", "Acme", models.PolarityPositive),  // runn sho
		makeTestKeyword("hiking boots", "Acme", models.PolarityPositive),
	}

	clusters := kda.FindVariantDuplicates(keywords)

	if len(clusters) != 1 {
		t.Fatalf("expected 1 variant cluster, got %d", len(clusters))
	}
	if clusters[0].Stem != "runn sho" {
		t.Errorf("cluster stem = %q, expected %q", clusters[0].Stem, "runn sho")
	}
	if len(clusters[0].Keywords) != 2 {
		t.Errorf("cluster size = %d, expected 2", len(clusters[0].Keywords))
	}
}

// TestGroupDuplicates первая необработанная запись становится представителем
func TestGroupDuplicates(t *testing.T) {
	kda := NewKeywordDuplicateAnalyzer()

	keywords := []*models.Keyword{
		makeTestKeyword("running shoes", "Acme", models.PolarityPositive),
		makeTestKeyword("runing shoes", "Acme", models.PolarityPositive),
		makeTestKeyword("runing shoe", "Acme", models.PolarityPositive),
		makeTestKeyword("office chair", "Acme", models.PolarityPositive),
	}

	groups, err := kda.GroupDuplicates(keywords, 0.9, algorithms.AlgorithmJaroWinkler)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if groups[0].Representative.Text != "running shoes" {
		t.Errorf("representative = %q, expected first record", groups[0].Representative.Text)
	}
	if len(groups[0].Duplicates) != 2 {
		t.Errorf("duplicates = %d, expected 2", len(groups[0].Duplicates))
	}
	for _, dup := range groups[0].Duplicates {
		if dup.Similarity < 0.9 || dup.Similarity >= 1.0 {
			t.Errorf("duplicate score %f out of [0.9, 1.0)", dup.Similarity)
		}
	}

	summary := kda.Summary(groups)
	if summary["total_groups"] != 1 || summary["total_duplicates"] != 2 {
		t.Errorf("unexpected summary: %v", summary)
	}
}

// TestGroupDuplicates_UnknownAlgorithm неизвестный алгоритм — ошибка
// конфигурации, а не тихий фолбэк
func TestGroupDuplicates_UnknownAlgorithm(t *testing.T) {
	kda := NewKeywordDuplicateAnalyzer()

	keywords := []*models.Keyword{
		makeTestKeyword("running shoes", "Acme", models.PolarityPositive),
		makeTestKeyword("runing shoes", "Acme", models.PolarityPositive),
	}

	if _, err := kda.GroupDuplicates(keywords, 0.9, "metaphone"); !errors.Is(err, algorithms.ErrUnknownAlgorithm) {
		t.Errorf("expected ErrUnknownAlgorithm, got %v", err)
	}
}

// TestDetectConflicts общий нормализованный текст с обеими полярностями
// у одного бренда — конфликт
func TestDetectConflicts(t *testing.T) {
	kda := NewKeywordDuplicateAnalyzer()

	keywords := []*models.Keyword{
		makeTestKeyword("Running Shoes", "Acme", models.PolarityPositive),
		makeTestKeyword("running shoes", "Acme", models.PolarityNegative),
		makeTestKeyword("running shoes", "Globex", models.PolarityPositive),
		makeTestKeyword("hiking boots", "Acme", models.PolarityPositive),
	}

	conflicts := kda.DetectConflicts(keywords)

	if len(conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(conflicts))
	}
	c := conflicts[0]
	if c.Brand != "Acme" || c.NormalizedText != "running shoes" {
		t.Errorf("unexpected conflict: %+v", c)
	}
	if len(c.PositiveKeywords) != 1 || c.PositiveKeywords[0] != "Running Shoes" {
		t.Errorf("unexpected positive side: %v", c.PositiveKeywords)
	}
	if len(c.NegativeKeywords) != 1 || c.NegativeKeywords[0] != "running shoes" {
		t.Errorf("unexpected negative side: %v", c.NegativeKeywords)
	}
}
