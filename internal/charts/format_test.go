package charts

import "testing"

func TestFormatters(t *testing.T) {
	tests := []struct {
		name   string
		format Formatter
		in     float64
		want   string
	}{
		{"fixed", Fixed(2), 8, "8.00"},
		{"fixed negative zero", Fixed(1), -0.01, "0.0"},
		{"percent", Percent(1), 4.26, "4.3%"},
		{"rounded percent", RoundedPercent(), 4.5, "5%"},
		{"rounded percent down", RoundedPercent(), 12.49, "12%"},
		{"rounded percent small negative", RoundedPercent(), -0.4, "0%"},
		{"millions", Millions(1), 12_345_678, "12.3M"},
		{"millions zero", Millions(0), 0, "0M"},
		{"abbreviated", Abbreviated(), 1_234_567, "1.23M"},
		{"prefixed", Prefixed("$", Abbreviated()), 248_130, "$248k"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.format(tt.in); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestAbbreviateNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{0.5, "1"},
		{0.2, "0"},
		{7, "7"},
		{100, "100"},
		{999, "999"},
		{1500, "1.50k"},
		{-1500, "-1.50k"},
		{24_813, "24.8k"},
		{248_130, "248k"},
		{1_234_567, "1.23M"},
		{3_400_000_000, "3.40B"},
		{2e12, "2.00T"},
		{5e15, "5000T"},
	}

	for _, tt := range tests {
		if got := AbbreviateNumber(tt.in); got != tt.want {
			t.Errorf("AbbreviateNumber(%v): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestFormatTimestamp(t *testing.T) {
	if got := FormatTimestamp(0); got != "-" {
		t.Errorf("Expected '-' for zero, got %q", got)
	}
	if got := FormatTimestamp(1700000000); got != "11/14 22:13" {
		t.Errorf("Expected '11/14 22:13', got %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(-5); got != "-" {
		t.Errorf("Expected '-' for a negative timestamp, got %q", got)
	}
	if got := FormatDate(1700000000); got != "11/14/2023" {
		t.Errorf("Expected '11/14/2023', got %q", got)
	}
	if got := tooltipDate(1672531200); got != "1/1/2023" {
		t.Errorf("Expected '1/1/2023', got %q", got)
	}
}
