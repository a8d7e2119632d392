package normalization

import "testing"

// TestSuffixStemmer_Stem проверяет правила срезания суффиксов
func TestSuffixStemmer_Stem(t *testing.T) {
	stemmer := NewSuffixStemmer()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"ing suffix", "running", "runn"},
		{"es suffix", "shoes", "sho"},
		{"ed suffix", "discounted", "discount"},
		{"s suffix", "chairs", "chair"},
		{"ly suffix", "quickly", "quick"},
		{"er suffix", "sneaker", "sneak"},
		{"short word is never stemmed", "is", "is"},
		{"stem must stay longer than suffix plus two", "sing", "sing"},
		{"uppercase input lowered first", "RUNNING", "runn"},
		{"no matching suffix", "shoe", "shoe"},
		{"empty word", "", ""},
		{"only one suffix removed", "runnings", "running"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stemmer.Stem(tt.input); got != tt.expected {
				t.Errorf("Stem(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

// TestSuffixStemmer_Deterministic повторные вызовы дают тот же результат
func TestSuffixStemmer_Deterministic(t *testing.T) {
	stemmer := NewSuffixStemmer()

	words := []string{"running", "shoes", "quickly", "best", "runnings"}
	for _, word := range words {
		first := stemmer.Stem(word)
		for i := 0; i < 5; i++ {
			if got := stemmer.Stem(word); got != first {
				t.Fatalf("Stem(%q) is not deterministic: %q then %q", word, first, got)
			}
		}
	}
}

// TestSuffixStemmer_StemText токены стеммятся независимо
func TestSuffixStemmer_StemText(t *testing.T) {
	stemmer := NewSuffixStemmer()

	tests := []struct {
		input    string
		expected string
	}{
		{"running shoes", "runn sho"},
		{"  Running   Shoes  ", "runn sho"},
		{"", ""},
		{"best hiking boots", "best hik boot"},
	}

	for _, tt := range tests {
		if got := stemmer.StemText(tt.input); got != tt.expected {
			t.Errorf("StemText(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
