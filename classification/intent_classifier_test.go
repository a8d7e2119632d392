package classification

import (
	"testing"

	"kwbank/models"
)

// TestDetectIntent проверяет классификацию намерения по фразам-индикаторам
func TestDetectIntent(t *testing.T) {
	ic := NewIntentClassifier()

	tests := []struct {
		name     string
		text     string
		expected models.Intent
	}{
		{"conversion from buy and online", "buy running shoes online", models.IntentConversion},
		{"awareness from how to", "how to choose hiking boots", models.IntentAwareness},
		{"consideration from cheap and rating", "cheap laptops rating", models.IntentConsideration},
		{"no indicators", "running shoes", models.IntentUnknown},
		{"empty text", "", models.IntentUnknown},
		{"case insensitive", "BUY Running Shoes ONLINE", models.IntentConversion},
		{"tie resolves to conversion", "discount deal", models.IntentConversion},
		{"shared indicators tie to consideration over awareness", "compare vs review", models.IntentConsideration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ic.DetectIntent(tt.text); got != tt.expected {
				t.Errorf("DetectIntent(%q) = %q, expected %q", tt.text, got, tt.expected)
			}
		})
	}
}

// TestDetectIntent_CustomIndicators кастомные наборы заменяют встроенные
func TestDetectIntent_CustomIndicators(t *testing.T) {
	ic := NewIntentClassifierWithIndicators(IndicatorSets{
		Conversion: []string{"kaufen"},
	})

	if got := ic.DetectIntent("schuhe kaufen"); got != models.IntentConversion {
		t.Errorf("DetectIntent with custom indicators = %q, expected conversion", got)
	}
	if got := ic.DetectIntent("buy shoes"); got != models.IntentUnknown {
		t.Errorf("built-in indicators must not apply with custom sets, got %q", got)
	}
}

// TestBidMultiplier фиксированная таблица множителей ставки
func TestBidMultiplier(t *testing.T) {
	ic := NewIntentClassifier()

	tests := []struct {
		intent   models.Intent
		expected float64
	}{
		{models.IntentConversion, 1.5},
		{models.IntentConsideration, 1.2},
		{models.IntentAwareness, 1.0},
		{models.IntentUnknown, 1.0},
	}

	for _, tt := range tests {
		if got := ic.BidMultiplier(tt.intent); got != tt.expected {
			t.Errorf("BidMultiplier(%q) = %f, expected %f", tt.intent, got, tt.expected)
		}
	}
}
