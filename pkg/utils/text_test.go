package utils

import "testing"

func TestNormalizeDigits(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "ascii untouched", input: "117", want: "117"},
		{name: "persian", input: "۱۳۹۹", want: "1399"},
		{name: "arabic-indic", input: "٢٠٢٤-٠٥-٢٥", want: "2024-05-25"},
		{name: "fullwidth", input: "１２０", want: "120"},
		{name: "trims", input: "  90 ", want: "90"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDigits(tt.input); got != tt.want {
				t.Errorf("NormalizeDigits(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
