package output

import (
	"strings"
	"testing"
)

func TestScoreBar(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tests := []struct {
		score  float64
		width  int
		filled int
		label  string
	}{
		{80, 10, 8, "80/100"},
		{0, 10, 0, "0/100"},
		{100, 10, 10, "100/100"},
		{150, 10, 10, "150/100"},
		{-5, 10, 0, "-5/100"},
		{50, 0, 10, "50/100"},
	}
	for _, tc := range tests {
		got := ScoreBar(tc.score, tc.width)
		if n := strings.Count(got, "█"); n != tc.filled {
			t.Errorf("ScoreBar(%v, %d) filled = %d, want %d", tc.score, tc.width, n, tc.filled)
		}
		if !strings.HasSuffix(got, tc.label) {
			t.Errorf("ScoreBar(%v, %d) = %q, want suffix %q", tc.score, tc.width, got, tc.label)
		}
	}
}

func TestPercentBar(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	got := PercentBar(30, 10)
	if n := strings.Count(got, "▇"); n != 3 {
		t.Errorf("filled = %d, want 3", n)
	}
	if !strings.HasSuffix(got, " 30%") {
		t.Errorf("PercentBar(30, 10) = %q", got)
	}
}

func TestTrendArrow(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	tests := []struct {
		delta  float64
		higher bool
		want   string
	}{
		{0, true, "─"},
		{5, true, "▲ +5.0"},
		{-2.5, true, "▼ -2.5"},
		{-400, false, "▼ -400.0"},
	}
	for _, tc := range tests {
		if got := TrendArrow(tc.delta, tc.higher); got != tc.want {
			t.Errorf("TrendArrow(%v, %v) = %q, want %q", tc.delta, tc.higher, got, tc.want)
		}
	}
}

func TestSeverity(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	for _, kind := range []string{"success", "warning", "critical", "completed", "abandoned", "unknown", "other"} {
		if got := Severity(kind); got != kind {
			t.Errorf("Severity(%q) = %q without color", kind, got)
		}
	}
}

func TestSection(t *testing.T) {
	SetNoColor(true)
	defer SetNoColor(false)

	got := Section("Variant A")
	if !strings.Contains(got, "Variant A") || !strings.Contains(got, "─") {
		t.Errorf("Section() = %q", got)
	}
}
