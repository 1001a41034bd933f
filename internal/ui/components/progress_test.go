package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestProgressBar_Filled(t *testing.T) {
	tests := []struct {
		name       string
		count, max int
		want       int
	}{
		{"empty", 0, 10, 0},
		{"no max", 5, 0, 0},
		{"half", 5, 10, 10},
		{"full", 10, 10, 20},
		{"over max", 30, 10, 20},
		{"tiny count shows one cell", 1, 100, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProgressBar("", tt.count, tt.max, 40)
			if got := p.Filled(20); got != tt.want {
				t.Errorf("Filled(20) = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestProgressBar_View(t *testing.T) {
	p := NewProgressBar("Week 1", 3, 6, 40)
	out := p.View()

	if !strings.Contains(out, "Week 1") {
		t.Errorf("view missing label: %q", out)
	}
	if !strings.HasSuffix(strings.TrimSpace(stripANSI(out)), "3") {
		t.Errorf("view missing count: %q", out)
	}
	if w := lipgloss.Width(out); w != 40 {
		t.Errorf("width = %d, want 40", w)
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && r == 'm':
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
