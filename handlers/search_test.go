package handlers

import "testing"

func TestMatchScore(t *testing.T) {
	cases := []struct {
		name, query string
		want        int
	}{
		{"Widget", "widget", 100},
		{"Widget Pro", "widget", 90},
		{"Super Widget", "widg", 80},
		{"USB Hub", "usb-c", 70},
		{"Lamp", "", 0},
		{"", "lamp", 0},
	}
	for _, tc := range cases {
		if got := matchScore(tc.name, tc.query); got != tc.want {
			t.Errorf("matchScore(%q, %q) = %d, want %d", tc.name, tc.query, got, tc.want)
		}
	}
}

func TestMatchScoreFuzzyWord(t *testing.T) {
	// "keybord" vs "keyboard": one edit over eight chars.
	if got := matchScore("Wireless Keyboard", "keybord"); got != 87 {
		t.Errorf("expected 87, got %d", got)
	}
}

func TestMatchScoreBelowCutoff(t *testing.T) {
	if got := matchScore("Lamp", "keyboard"); got > searchCutoff {
		t.Errorf("unrelated names should not clear the cutoff, got %d", got)
	}
}
