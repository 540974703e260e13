package utils

import "testing"

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"", "abc", 3},
		{"abc", "", 3},
		{"same", "same", 0},
		{"iphone", "iphon", 1},
	}
	for _, tt := range tests {
		if got := Levenshtein(tt.a, tt.b); got != tt.want {
			t.Fatalf("Levenshtein(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSimilarityExactMatch(t *testing.T) {
	if got := Similarity("Laptop", "laptop"); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}

func TestSimilaritySubstring(t *testing.T) {
	if got := Similarity("phone", "Apple iPhone 13"); got != 90 {
		t.Fatalf("expected 90, got %d", got)
	}
}

func TestSimilarityTypo(t *testing.T) {
	got := Similarity("samsng", "samsung")
	if got < 60 {
		t.Fatalf("expected a close match for a one-letter typo, got %d", got)
	}
}

func TestSimilarityUnrelated(t *testing.T) {
	got := Similarity("banana", "router")
	if got >= 60 {
		t.Fatalf("expected unrelated strings to score low, got %d", got)
	}
}

func TestSimilarityEmpty(t *testing.T) {
	if got := Similarity("", "laptop"); got != 0 {
		t.Fatalf("expected 0 for empty input, got %d", got)
	}
}
