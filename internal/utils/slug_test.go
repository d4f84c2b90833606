package utils

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Acme, Inc.!!", "acme-inc"},
		{"  Hello   World  ", "hello-world"},
		{"---Leading and trailing---", "leading-and-trailing"},
		{"Café Ünïcode", "caf-n-code"},
		{"!!!", "company"},
		{"", "company"},
		{"ALLCAPS123", "allcaps123"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugifyTruncates(t *testing.T) {
	got := Slugify(strings.Repeat("a", 80))
	if len(got) != 50 {
		t.Fatalf("expected 50 characters, got %d", len(got))
	}

	// Trimming happens before truncation, so a separator at the cut stays.
	got = Slugify(strings.Repeat("b", 49) + " tail")
	if want := strings.Repeat("b", 49) + "-"; got != want {
		t.Fatalf("Slugify() = %q, want %q", got, want)
	}
}

func TestSlugCandidate(t *testing.T) {
	if got := SlugCandidate("acme-inc", 0); got != "acme-inc" {
		t.Fatalf("got %q", got)
	}
	if got := SlugCandidate("acme-inc", 2); got != "acme-inc-2" {
		t.Fatalf("got %q", got)
	}
}
