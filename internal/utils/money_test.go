package utils

import "testing"

func TestFormatRupiah(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "Rp0"},
		{500, "Rp500"},
		{6500, "Rp6.500"},
		{1050000, "Rp1.050.000"},
		{-75000, "-Rp75.000"},
	}
	for _, tc := range cases {
		if got := FormatRupiah(tc.in); got != tc.want {
			t.Errorf("FormatRupiah(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseRupiahToInt(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"Rp 1.000", 1000},
		{"rp1.050.000", 1050000},
		{"1,000", 1000},
		{"  7500 ", 7500},
	}
	for _, tc := range cases {
		got, err := ParseRupiahToInt(tc.in)
		if err != nil {
			t.Fatalf("ParseRupiahToInt(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseRupiahToInt(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}

	if _, err := ParseRupiahToInt("Rp"); err == nil {
		t.Error("empty amount should error")
	}
}
