package models

import (
	"time"

	"github.com/google/uuid"
)

// Polarity полярность ключевого слова: позитивное (таргетинг) или негативное (исключение).
// Записи с разной полярностью никогда не объединяются при дедупликации.
type Polarity string

const (
	PolarityPositive Polarity = "positive"
	PolarityNegative Polarity = "negative"
)

// Valid проверяет, что полярность входит в закрытый набор значений
func (p Polarity) Valid() bool {
	return p == PolarityPositive || p == PolarityNegative
}

// MatchType тип соответствия ключевого слова в Amazon PPC
type MatchType string

const (
	MatchExact  MatchType = "exact"
	MatchPhrase MatchType = "phrase"
	MatchBroad  MatchType = "broad"
)

// Valid проверяет, что тип соответствия входит в закрытый набор значений
func (m MatchType) Valid() bool {
	return m == MatchExact || m == MatchPhrase || m == MatchBroad
}

// Intent классификация коммерческого намерения поискового запроса
type Intent string

const (
	IntentAwareness     Intent = "awareness"
	IntentConsideration Intent = "consideration"
	IntentConversion    Intent = "conversion"
	IntentUnknown       Intent = "unknown"
)

// Valid проверяет, что намерение входит в закрытый набор значений
func (i Intent) Valid() bool {
	switch i {
	case IntentAwareness, IntentConsideration, IntentConversion, IntentUnknown:
		return true
	}
	return false
}

// Keyword ключевое слово маркетингового каталога.
// NormalizedText — производное каноническое представление Text; оно вычисляется
// нормализатором и никогда не редактируется независимо.
// Intent и SuggestedBid заполняются лениво этапом обогащения: после установки
// значения, отличного от unknown/nil, они не перезаписываются.
type Keyword struct {
	ID             string    `json:"id"`
	Text           string    `json:"text"`
	NormalizedText string    `json:"normalized_text"`
	Brand          string    `json:"brand"`
	MatchType      MatchType `json:"match_type"`
	Polarity       Polarity  `json:"polarity"`
	Intent         Intent    `json:"intent"`
	SuggestedBid   *float64  `json:"suggested_bid,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewKeyword создает ключевое слово с новым идентификатором.
// NormalizedText остается пустым до прохождения нормализатора.
func NewKeyword(text, brand string, matchType MatchType, polarity Polarity) *Keyword {
	return &Keyword{
		ID:        uuid.NewString(),
		Text:      text,
		Brand:     brand,
		MatchType: matchType,
		Polarity:  polarity,
		Intent:    IntentUnknown,
		CreatedAt: time.Now(),
	}
}

// ScopeKey ключ области сравнения: дубликаты ищутся только внутри
// одной пары (brand, polarity)
func (k *Keyword) ScopeKey() string {
	return k.Brand + "\x1f" + string(k.Polarity)
}

// DedupeKey ключ точной дедупликации: нормализованный текст внутри области
func (k *Keyword) DedupeKey() string {
	return k.ScopeKey() + "\x1f" + k.NormalizedText
}
