package algorithms

import (
	"errors"
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
)

// TestLevenshteinDistance проверяет классические случаи расстояния Левенштейна
func TestLevenshteinDistance(t *testing.T) {
	sm := NewSimilarityMetrics()

	tests := []struct {
		name     string
		s1       string
		s2       string
		expected int
	}{
		{"identical strings", "running shoes", "running shoes", 0},
		{"kitten sitting", "kitten", "sitting", 3},
		{"single deletion", "shoes", "shoe", 1},
		{"empty vs non-empty", "", "abc", 3},
		{"non-empty vs empty", "abc", "", 3},
		{"both empty", "", "", 0},
		{"unicode runes counted once", "café", "cafe", 1},
		{"full replacement", "abc", "xyz", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sm.LevenshteinDistance(tt.s1, tt.s2); got != tt.expected {
				t.Errorf("LevenshteinDistance(%q, %q) = %d, expected %d", tt.s1, tt.s2, got, tt.expected)
			}
		})
	}
}

// TestSimilarityRatio проверяет нормированную схожесть по Левенштейну
func TestSimilarityRatio(t *testing.T) {
	sm := NewSimilarityMetrics()

	tests := []struct {
		name     string
		s1       string
		s2       string
		expected float64
	}{
		{"both empty is 1.0", "", "", 1.0},
		{"one empty is 0.0", "", "shoes", 0.0},
		{"identical is 1.0", "shoes", "shoes", 1.0},
		{"one edit of five", "shoes", "shoe", 0.8},
		{"no common characters", "abc", "xyz", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sm.SimilarityRatio(tt.s1, tt.s2)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("SimilarityRatio(%q, %q) = %f, expected %f", tt.s1, tt.s2, got, tt.expected)
			}
		})
	}
}

// TestJaroWinkler_KnownValues проверяет эталонные значения алгоритма
func TestJaroWinkler_KnownValues(t *testing.T) {
	sm := NewSimilarityMetrics()

	tests := []struct {
		name     string
		s1       string
		s2       string
		expected float64
	}{
		{"martha marhta", "martha", "marhta", 0.961111},
		{"dwayne duane", "dwayne", "duane", 0.84},
		{"identical", "running shoes", "running shoes", 1.0},
		{"one empty", "", "shoes", 0.0},
		{"both distinct single chars", "a", "b", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sm.JaroWinkler(tt.s1, tt.s2)
			if math.Abs(got-tt.expected) > 1e-4 {
				t.Errorf("JaroWinkler(%q, %q) = %f, expected %f", tt.s1, tt.s2, got, tt.expected)
			}
		})
	}
}

// TestJaroWinkler_TypoStaysAboveDedupeThreshold дроп буквы и суффикса
// должен ловиться интерактивным порогом 0.85
func TestJaroWinkler_TypoStaysAboveDedupeThreshold(t *testing.T) {
	sm := NewSimilarityMetrics()

	got := sm.JaroWinkler("running shoes", "runing shoe")
	if got < 0.9 {
		t.Errorf("JaroWinkler(running shoes, runing shoe) = %f, expected >= 0.9", got)
	}
	if got >= 1.0 {
		t.Errorf("JaroWinkler for non-identical strings must be < 1.0, got %f", got)
	}
}

// TestMetrics_Properties проверяет симметричность, тождество и границы
// на случайных входах
func TestMetrics_Properties(t *testing.T) {
	sm := NewSimilarityMetrics()
	faker := gofakeit.New(42)

	for i := 0; i < 200; i++ {
		a := faker.HipsterSentence(faker.Number(1, 4))
		b := faker.HipsterSentence(faker.Number(1, 4))

		if sm.JaroWinkler(a, b) != sm.JaroWinkler(b, a) {
			t.Fatalf("JaroWinkler not symmetric for %q / %q", a, b)
		}
		if sm.LevenshteinDistance(a, b) != sm.LevenshteinDistance(b, a) {
			t.Fatalf("LevenshteinDistance not symmetric for %q / %q", a, b)
		}
		if got := sm.JaroWinkler(a, a); got != 1.0 {
			t.Fatalf("JaroWinkler(a, a) = %f for %q, expected 1.0", got, a)
		}
		if got := sm.LevenshteinDistance(a, a); got != 0 {
			t.Fatalf("LevenshteinDistance(a, a) = %d for %q, expected 0", got, a)
		}
		if jw := sm.JaroWinkler(a, b); jw < 0.0 || jw > 1.0 {
			t.Fatalf("JaroWinkler(%q, %q) = %f out of [0, 1]", a, b, jw)
		}
	}
}

// TestSimilarityByName проверяет выбор алгоритма по имени
func TestSimilarityByName(t *testing.T) {
	sm := NewSimilarityMetrics()

	jw, err := sm.SimilarityByName(AlgorithmJaroWinkler, "martha", "marhta")
	if err != nil {
		t.Fatalf("unexpected error for jaro_winkler: %v", err)
	}
	if math.Abs(jw-sm.JaroWinkler("martha", "marhta")) > 1e-12 {
		t.Errorf("SimilarityByName(jaro_winkler) mismatch: %f", jw)
	}

	lev, err := sm.SimilarityByName(AlgorithmLevenshtein, "shoes", "shoe")
	if err != nil {
		t.Fatalf("unexpected error for levenshtein: %v", err)
	}
	if math.Abs(lev-0.8) > 1e-9 {
		t.Errorf("SimilarityByName(levenshtein) = %f, expected 0.8", lev)
	}

	if _, err := sm.SimilarityByName("soundex", "a", "b"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("expected ErrUnknownAlgorithm for unsupported name, got %v", err)
	}
}
