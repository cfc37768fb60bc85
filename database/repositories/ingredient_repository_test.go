package repositories

import "testing"

func TestEscapeLikePattern(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		want   string
	}{
		{"plain", "Мука", "Мука"},
		{"percent", "50%", `50\%`},
		{"underscore", "_soup", `\_soup`},
		{"backslash", `a\b`, `a\\b`},
		{"all metacharacters", `\%_`, `\\\%\_`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeLikePattern(tt.prefix); got != tt.want {
				t.Errorf("escapeLikePattern(%q) = %q, want %q", tt.prefix, got, tt.want)
			}
		})
	}
}
