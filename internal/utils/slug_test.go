package utils

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"My Team", "my-team"},
		{"my-team", "my-team"},
		{"  Padded  ", "padded"},
		{"Multi  Space", "multi--space"},
		{"UPPER", "upper"},
		{"Team #1!", "team-1"},
		{"café", "caf"},
		{"---", ""},
		{"!!!", ""},
		{"", ""},
		{"42", "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.name); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}
