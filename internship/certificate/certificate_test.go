package certificate

import (
	"regexp"
	"testing"
	"time"
)

func TestMentionThresholds(t *testing.T) {
	cases := []struct {
		score float64
		want  Mention
	}{
		{10, MentionExcellent},
		{9.0, MentionExcellent},
		{8.99, MentionVeryGood},
		{8.0, MentionVeryGood},
		{7.5, MentionGood},
		{7.0, MentionGood},
		{6.0, MentionFairlyGood},
		{5.0, MentionPassable},
		{4.9, MentionInsufficient},
		{0, MentionInsufficient},
	}

	for _, tc := range cases {
		if got := MentionForScore(tc.score); got != tc.want {
			t.Errorf("MentionForScore(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestDurationNeverBelowOneDay(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	if got := DurationInDays(start, start); got != 1 {
		t.Errorf("same-day duration = %d, want 1", got)
	}
	if got := DurationInDays(start, start.Add(6*time.Hour)); got != 1 {
		t.Errorf("partial-day duration = %d, want 1", got)
	}
	if got := DurationInDays(start, start.AddDate(0, 0, 90)); got != 90 {
		t.Errorf("90-day duration = %d", got)
	}
}

func TestGenerateCodeFormat(t *testing.T) {
	now := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^CERT-2026-[A-Z0-9]{8}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code, err := GenerateCode(now)
		if err != nil {
			t.Fatalf("GenerateCode: %v", err)
		}
		if !pattern.MatchString(code) {
			t.Fatalf("code %q does not match %s", code, pattern)
		}
		seen[code] = struct{}{}
	}
	// Collisions over 100 draws from a 36^8 space would indicate a
	// broken generator, not bad luck
	if len(seen) != 100 {
		t.Errorf("only %d distinct codes out of 100", len(seen))
	}
}
