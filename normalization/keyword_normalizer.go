package normalization

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Режимы нормализации для импорта
const (
	ModeBasic    = "basic"    // только базовая трансформация
	ModeEnhanced = "enhanced" // базовая + диакритика + пунктуация
)

// ErrUnknownMode запрошен неподдерживаемый режим нормализации
var ErrUnknownMode = errors.New("unknown normalization mode")

// Options опции нормализации ключевого слова.
// Базовая трансформация (нижний регистр, обрезка и схлопывание пробелов)
// применяется всегда; остальные шаги включаются флагами.
type Options struct {
	StripDiacritics  bool
	StripPunctuation bool
	StripStopWords   bool
	StopWords        map[string]bool // кастомный набор стоп-слов; nil — встроенный
}

// OptionsForMode возвращает опции для именованного режима нормализации.
// Неизвестный режим — ошибка конфигурации, тихого фолбэка нет.
func OptionsForMode(mode string) (Options, error) {
	switch mode {
	case ModeBasic:
		return Options{}, nil
	case ModeEnhanced:
		return Options{StripDiacritics: true, StripPunctuation: true}, nil
	default:
		return Options{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// KeywordNormalizer приводит текст ключевого слова к канонической форме,
// используемой как ключ дедупликации. Normalize — чистая детерминированная
// функция от текста и опций.
type KeywordNormalizer struct {
	stopWords map[string]bool
}

// NewKeywordNormalizer создает нормализатор со встроенным набором стоп-слов
func NewKeywordNormalizer() *KeywordNormalizer {
	return &KeywordNormalizer{stopWords: defaultStopWords()}
}

// Normalize выполняет нормализацию в фиксированном порядке:
// регистр/пробелы -> диакритика -> пунктуация -> стоп-слова -> финальное
// схлопывание пробелов. Порядок шагов — часть контракта: его изменение
// меняет результат.
func (kn *KeywordNormalizer) Normalize(text string, opts Options) string {
	// 1. Нижний регистр, обрезка и схлопывание пробелов
	result := strings.ToLower(strings.TrimSpace(text))
	result = strings.Join(strings.Fields(result), " ")

	// 2. Удаление диакритических знаков
	if opts.StripDiacritics {
		result = removeDiacritics(result)
	}

	// 3. Замена пунктуации на пробелы
	if opts.StripPunctuation {
		result = removePunctuation(result)
	}

	// 4. Удаление стоп-слов
	if opts.StripStopWords {
		stopWords := opts.StopWords
		if stopWords == nil {
			stopWords = kn.stopWords
		}
		result = removeStopWords(result, stopWords)
	}

	// 5. Финальное схлопывание пробелов
	return strings.Join(strings.Fields(result), " ")
}

// removeDiacritics удаляет диакритические знаки: каноническая декомпозиция
// NFD, отбрасывание комбинирующих знаков (категория Mn), обратная сборка NFC.
// Пример: "café" -> "cafe".
func removeDiacritics(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return result
}

// removePunctuation заменяет каждый символ, не являющийся буквой, цифрой или
// пробелом, на одиночный пробел и схлопывает пробельные серии
func removePunctuation(text string) string {
	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			builder.WriteRune(r)
		} else {
			builder.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(builder.String()), " ")
}

// removeStopWords удаляет токены, входящие в активный набор стоп-слов
func removeStopWords(text string, stopWords map[string]bool) string {
	words := strings.Fields(text)
	result := make([]string, 0, len(words))
	for _, word := range words {
		if !stopWords[word] {
			result = append(result, word)
		}
	}
	return strings.Join(result, " ")
}

// defaultStopWords возвращает встроенный набор английских служебных слов
func defaultStopWords() map[string]bool {
	return map[string]bool{
		"a": true, "an": true, "and": true, "are": true, "as": true,
		"at": true, "be": true, "by": true, "for": true, "from": true,
		"has": true, "he": true, "in": true, "is": true, "it": true,
		"its": true, "of": true, "on": true, "that": true, "the": true,
		"to": true, "was": true, "will": true, "with": true,
	}
}
