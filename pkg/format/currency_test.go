package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero", 0, "€0.00"},
		{"Small", 187.5, "€187.50"},
		{"Thousands", 12187.5, "€12,187.50"},
		{"Negative", -9687.5, "-€9,687.50"},
		{"Millions", 1234567.891, "€1,234,567.89"},
		{"Negative rounding to zero", -0.001, "€0.00"},
		{"Rounds up into a new group", 999.999, "€1,000.00"},
		{"Negative hundred thousands", -100000, "-€100,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestMilestone(t *testing.T) {
	if got := Milestone(nil); got != NotReached {
		t.Errorf("Milestone(nil) = %q, expected %q", got, NotReached)
	}
	month := 7
	if got := Milestone(&month); got != "month 7" {
		t.Errorf("Milestone(7) = %q, expected %q", got, "month 7")
	}
}
