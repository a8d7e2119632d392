package algorithms

import (
	"errors"
	"fmt"
)

// Идентификаторы поддерживаемых алгоритмов схожести
const (
	AlgorithmJaroWinkler = "jaro_winkler"
	AlgorithmLevenshtein = "levenshtein"
)

// ErrUnknownAlgorithm запрошен неподдерживаемый алгоритм схожести
var ErrUnknownAlgorithm = errors.New("unknown similarity algorithm")

// SimilarityMetrics предоставляет метрики схожести строк для дедупликации
// ключевых слов. Все метрики чистые и симметричные: sim(a,b) == sim(b,a).
type SimilarityMetrics struct{}

// NewSimilarityMetrics создает новый экземпляр метрик схожести
func NewSimilarityMetrics() *SimilarityMetrics {
	return &SimilarityMetrics{}
}

// LevenshteinDistance вычисляет расстояние Левенштейна: минимальное число
// вставок, удалений и замен одиночных символов (стоимость каждой операции 1)
func (sm *SimilarityMetrics) LevenshteinDistance(s1, s2 string) int {
	r1 := []rune(s1)
	r2 := []rune(s2)
	len1 := len(r1)
	len2 := len(r2)

	if len1 == 0 {
		return len2
	}
	if len2 == 0 {
		return len1
	}

	// Оптимизированный алгоритм с одним массивом
	column := make([]int, len1+1)
	for i := 1; i <= len1; i++ {
		column[i] = i
	}

	for x := 1; x <= len2; x++ {
		column[0] = x
		lastDiag := x - 1
		for y := 1; y <= len1; y++ {
			oldDiag := column[y]
			cost := 0
			if r1[y-1] != r2[x-1] {
				cost = 1
			}
			column[y] = min3(column[y]+1, column[y-1]+1, lastDiag+cost)
			lastDiag = oldDiag
		}
	}

	return column[len1]
}

// SimilarityRatio вычисляет схожесть на основе расстояния Левенштейна.
// Возвращает значение от 0.0 до 1.0; для двух пустых строк — 1.0.
func (sm *SimilarityMetrics) SimilarityRatio(s1, s2 string) float64 {
	distance := sm.LevenshteinDistance(s1, s2)
	maxLen := len([]rune(s1))
	if len([]rune(s2)) > maxLen {
		maxLen = len([]rune(s2))
	}

	if maxLen == 0 {
		return 1.0
	}

	return 1.0 - float64(distance)/float64(maxLen)
}

// JaroWinkler вычисляет схожесть Джаро-Винклера.
// Возвращает значение от 0.0 (ничего общего) до 1.0 (идентичные строки).
// Константы алгоритма (окно поиска, жадное сопоставление слева направо,
// префикс не более 4 символов, коэффициент 0.1) — стандарт де-факто;
// пороги дедупликации откалиброваны именно под них.
func (sm *SimilarityMetrics) JaroWinkler(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	len1 := len(r1)
	len2 := len(r2)

	if len1 == 0 || len2 == 0 {
		return 0.0
	}

	maxLen := len1
	if len2 > maxLen {
		maxLen = len2
	}

	// Радиус окна сопоставления; для очень коротких строк может быть
	// отрицательным — тогда окно схлопывается и совпадений не будет
	window := maxLen/2 - 1

	matched1 := make([]bool, len1)
	matched2 := make([]bool, len2)
	matches := 0

	// Жадное сопоставление: первый несопоставленный символ в окне
	for i := 0; i < len1; i++ {
		start := i - window
		if start < 0 {
			start = 0
		}
		end := i + window + 1
		if end > len2 {
			end = len2
		}

		for j := start; j < end; j++ {
			if matched2[j] || r1[i] != r2[j] {
				continue
			}
			matched1[i] = true
			matched2[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0.0
	}

	// Транспозиции: пары сопоставленных позиций с разными символами,
	// прочитанные в исходном порядке обеих строк, деленные на 2
	transpositions := 0
	point := 0
	for i := 0; i < len1; i++ {
		if !matched1[i] {
			continue
		}
		for !matched2[point] {
			point++
		}
		if r1[i] != r2[point] {
			transpositions++
		}
		point++
	}
	transpositions /= 2

	m := float64(matches)
	jaro := (m/float64(len1) + m/float64(len2) + (m-float64(transpositions))/m) / 3.0

	// Бонус Винклера за общий префикс (не более 4 символов)
	limit := len1
	if len2 < limit {
		limit = len2
	}
	prefix := 0
	for i := 0; i < limit; i++ {
		if r1[i] != r2[i] {
			break
		}
		prefix++
	}
	if prefix > 4 {
		prefix = 4
	}

	return jaro + float64(prefix)*0.1*(1.0-jaro)
}

// SimilarityByName вычисляет схожесть по имени алгоритма.
// Неизвестное имя — ошибка конфигурации, а не тихий фолбэк.
func (sm *SimilarityMetrics) SimilarityByName(algorithm, s1, s2 string) (float64, error) {
	switch algorithm {
	case AlgorithmJaroWinkler:
		return sm.JaroWinkler(s1, s2), nil
	case AlgorithmLevenshtein:
		return sm.SimilarityRatio(s1, s2), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
}

// min3 возвращает минимальное из трех чисел
func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
