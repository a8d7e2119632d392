package normalization

import (
	"strings"
	"unicode/utf8"
)

// suffixRules кандидаты суффиксов в порядке проверки.
// Порядок фиксирован: от него зависят ключи вариантных кластеров.
var suffixRules = []string{"ing", "ed", "es", "s", "ly", "er", "est"}

// SuffixStemmer грубый эвристический стеммер для группировки вариантов
// ключевых слов. Не является лингвистически корректным: срезает не более
// одного суффикса из фиксированного списка, детерминирован.
type SuffixStemmer struct{}

// NewSuffixStemmer создает новый стеммер
func NewSuffixStemmer() *SuffixStemmer {
	return &SuffixStemmer{}
}

// Stem возвращает основу слова. Суффикс срезается только если оставшаяся
// часть длиннее len(суффикс)+2 — это защищает короткие слова от
// пере-стемминга ("is" никогда не стеммится).
// Пример: "running" -> "runn", "shoes" -> "sho".
func (s *SuffixStemmer) Stem(word string) string {
	word = strings.ToLower(word)

	for _, suffix := range suffixRules {
		if strings.HasSuffix(word, suffix) && utf8.RuneCountInString(word) > len(suffix)+2 {
			return word[:len(word)-len(suffix)]
		}
	}

	return word
}

// StemTokens возвращает основы для набора токенов
func (s *SuffixStemmer) StemTokens(tokens []string) []string {
	stemmed := make([]string, len(tokens))
	for i, token := range tokens {
		stemmed[i] = s.Stem(token)
	}
	return stemmed
}

// StemText стеммит каждый токен текста независимо и соединяет результат
// одиночными пробелами
func (s *SuffixStemmer) StemText(text string) string {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return ""
	}
	return strings.Join(s.StemTokens(words), " ")
}
