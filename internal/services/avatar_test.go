package services

import "testing"

func TestComputeInitials(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"two names", "Alice Nguyen", "AN"},
		{"single name", "bob", "B"},
		{"middle names skipped", "Anna Maria van Dijk", "AD"},
		{"empty", "   ", "?"},
		{"multi-byte first letter", "åsa öberg", "ÅÖ"},
		{"single multi-byte name", "josé", "J"},
		{"cyrillic", "Иван Петров", "ИП"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := computeInitials(tc.in); got != tc.want {
				t.Fatalf("computeInitials(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
