package budget

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestEstimateTokens(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"abcd", 1},
		{"abcde", 2},
		{strings.Repeat("x", 400), 100},
	}
	for _, tc := range cases {
		if got := EstimateTokens(tc.in); got != tc.want {
			t.Fatalf("EstimateTokens(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestTruncate_UnderBudgetUnchanged(t *testing.T) {
	s := strings.Repeat("a", 100)
	out, removed := Truncate(s, 1000)
	if out != s || removed != 0 {
		t.Fatalf("expected input unchanged, got removed=%d", removed)
	}
}

func TestTruncate_OverBudget(t *testing.T) {
	s := strings.Repeat("a", 1000)
	out, removed := Truncate(s, 10)
	if EstimateTokens(out) > 10 {
		t.Fatalf("truncated text still over budget: %d tokens", EstimateTokens(out))
	}
	if removed <= 0 {
		t.Fatalf("expected positive removed count, got %d", removed)
	}
	if !strings.HasPrefix(s, out) {
		t.Fatalf("truncation must be a prefix")
	}
}

func TestTruncate_PreservesRuneBoundaries(t *testing.T) {
	s := strings.Repeat("ä", 500)
	out, _ := Truncate(s, 10)
	if !utf8.ValidString(out) {
		t.Fatalf("truncation split a rune: %q", out)
	}
}
