package match

import (
	"math"
	"testing"
)

func TestScoreContainment(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		candidates []string
	}{
		{"query contains candidate", "someone stole my phone yesterday", []string{"stole my phone"}},
		{"candidate contains query", "phone stolen", []string{"my phone stolen today"}},
		{"exact", "phone stolen", []string{"phone stolen"}},
		{"case and punctuation ignored", "Phone STOLEN!", []string{"phone stolen"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.query, tt.candidates); got != 1.0 {
				t.Errorf("Score = %v, want 1.0", got)
			}
		})
	}
}

func TestScoreTokenOverlap(t *testing.T) {
	// "lost wallet crowd" vs "lost my wallet yard": "lost" and "wallet"
	// hit, denominator is the longer list (4 tokens).
	got := Score("lost wallet crowd", []string{"lost my wallet yard"})
	want := 2.0 / 4.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Score = %v, want %v", got, want)
	}

	// Substring token relation counts: "phones" contains "phone".
	got = Score("phones missing here", []string{"phone gone now"})
	if math.Abs(got-1.0/3.0) > 1e-9 {
		t.Errorf("Score = %v, want 1/3", got)
	}
}

func TestScoreBestCandidateWins(t *testing.T) {
	got := Score("lost phone", []string{"totally unrelated words", "lost phone"})
	if got != 1.0 {
		t.Errorf("Score = %v, want 1.0 from best candidate", got)
	}
}

func TestScoreNoOverlap(t *testing.T) {
	if got := Score("quantum banana orbit", []string{"lost my phone"}); got != 0 {
		t.Errorf("Score = %v, want 0", got)
	}
}

func TestScoreEmptyQuery(t *testing.T) {
	// An empty or punctuation-only query must never match, even though
	// every string trivially contains the empty string.
	for _, q := range []string{"", "   ", "?!."} {
		if got := Score(q, []string{"lost my phone"}); got != 0 {
			t.Errorf("Score(%q) = %v, want 0", q, got)
		}
	}
}

func TestScoreEmptyCandidates(t *testing.T) {
	if got := Score("lost my phone", nil); got != 0 {
		t.Errorf("Score = %v, want 0", got)
	}
	if got := Score("lost my phone", []string{"", "  "}); got != 0 {
		t.Errorf("Score with blank candidates = %v, want 0", got)
	}
}
