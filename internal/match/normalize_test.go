package match

import (
	"testing"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"obsGroupControl", "obsgroupcontrol"},
		{"obs_group-control", "obsgroupcontrol"},
		{"Pulse Abnormal", "pulseabnormal"},
		{"  Dry  Cough ", "drycough"},
		{"B.P.", "bp"},
		{"", ""},
		{"Ä", "ä"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := NormalizeName(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSameName(t *testing.T) {
	if !SameName("Dry cough", "dry_cough") {
		t.Error("expected names to match")
	}

	if SameName("Dry", "Wet") {
		t.Error("expected names to differ")
	}
}
