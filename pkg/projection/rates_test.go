package projection

import (
	"testing"

	"github.com/iwvelando/brewery-forecast/pkg/mathutil"
)

func TestDefaultAlcoholTiersBoundaries(t *testing.T) {
	tests := []struct {
		name             string
		alcoholPercent   float64
		annualProduction int
		expectedTier     string
		expectedRate     float64
	}{
		{"Light beer small producer", 2.0, 1200, "reduced", 3.82},
		{"Light beer large producer", 2.0, 1_200_000, "reduced", 3.82},
		{"Exactly 2.8 percent", 2.8, 500_000, "reduced", 3.82},
		{"Just above 2.8 percent", 2.81, 1200, "small-producer", 3.70},
		{"Regular beer small producer", 5.0, 120_000, "small-producer", 3.70},
		{"Exactly 200000 liters", 5.0, 200_000, "small-producer", 3.70},
		{"Just above 200000 liters", 5.0, 200_001, "standard", 7.49},
		{"Regular beer large producer", 5.0, 2_400_000, "standard", 7.49},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, ok := DefaultAlcoholTiers.Lookup(tt.alcoholPercent, tt.annualProduction)
			if !ok {
				t.Fatalf("Lookup(%v, %d) found no rule", tt.alcoholPercent, tt.annualProduction)
			}
			if rule.Name != tt.expectedTier || rule.Rate != tt.expectedRate {
				t.Errorf("Lookup(%v, %d) = %s@%v, expected %s@%v",
					tt.alcoholPercent, tt.annualProduction, rule.Name, rule.Rate, tt.expectedTier, tt.expectedRate)
			}
		})
	}
}

func TestDefaultLevyTiersBoundaries(t *testing.T) {
	tests := []struct {
		name             string
		alcoholPercent   float64
		annualProduction int
		expectedRate     float64
	}{
		{"Beer is exempt", 5.0, 2_400_000, 0},
		{"Exactly 18 percent is exempt", 18, 2_400_000, 0},
		{"Above 18 percent small producer", 18.5, 200_000, 1.50},
		{"Above 18 percent large producer", 18.5, 200_001, 3.00},
		{"Spirit strength", 40, 12, 1.50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, ok := DefaultLevyTiers.Lookup(tt.alcoholPercent, tt.annualProduction)
			if !ok {
				t.Fatalf("Lookup(%v, %d) found no rule", tt.alcoholPercent, tt.annualProduction)
			}
			if rule.Rate != tt.expectedRate {
				t.Errorf("Lookup(%v, %d) rate = %v, expected %v", tt.alcoholPercent, tt.annualProduction, rule.Rate, tt.expectedRate)
			}
		})
	}
}

func TestRateTableNoMatch(t *testing.T) {
	table := RateTable{{Name: "light only", MaxAlcoholPercent: 1, MaxAnnualProduction: Unbounded, Rate: 2}}
	if _, ok := table.Lookup(5, 100); ok {
		t.Fatal("expected no rule to match")
	}

	p := baseParameters()
	p.Tax = TaxMode{Kind: TaxTiered, Tiers: table}
	p.Months = 2
	p.Quantities = []int{100}
	rows, err := Project(p)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	for _, row := range rows {
		if row.AlcoholTaxCost != 0 || row.AlcoholTaxRate != 0 {
			t.Errorf("month %d expected zero tax without a matching tier, got %v", row.Month, row.AlcoholTaxCost)
		}
	}
}

func TestProjectTieredTax(t *testing.T) {
	tests := []struct {
		name           string
		alcoholPercent float64
		quantity       int
		expectedRate   float64
	}{
		{"Low alcohol small quantity", 2.0, 100, 3.82},
		{"Low alcohol huge quantity", 2.0, 50_000, 3.82},
		{"At small producer limit", 5.0, 16_666, 3.70},
		{"Above small producer limit", 5.0, 16_667, 7.49},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseParameters()
			p.Tax = TieredTax()
			p.AlcoholPercent = tt.alcoholPercent
			p.Quantities = []int{tt.quantity}
			p.Months = 24

			rows, err := Project(p)
			if err != nil {
				t.Fatalf("Project() error = %v", err)
			}
			for _, row := range rows {
				if row.AlcoholTaxRate != tt.expectedRate {
					t.Fatalf("month %d rate = %v, expected %v", row.Month, row.AlcoholTaxRate, tt.expectedRate)
				}
				expectedCost := row.PureAlcoholVolume * tt.expectedRate
				if !mathutil.WithinTolerance(row.AlcoholTaxCost, expectedCost, 1e-6) {
					t.Fatalf("month %d tax cost = %v, expected %v", row.Month, row.AlcoholTaxCost, expectedCost)
				}
			}
		})
	}
}

func TestProjectTierUsesAnnualProduction(t *testing.T) {
	// 10000 per month is 120000 a year, well under the limit, even though the
	// cumulative volume passes 200000 liters in month 21.
	p := baseParameters()
	p.Tax = TieredTax()
	p.Quantities = []int{10_000}
	p.Months = 30

	rows, err := Project(p)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	last := rows[len(rows)-1]
	if last.TotalBeerVolume <= 200_000 {
		t.Fatalf("test setup: cumulative volume %v should exceed the limit", last.TotalBeerVolume)
	}
	if last.AlcoholTaxRate != 3.70 || last.AlcoholTaxTier != "small-producer" {
		t.Errorf("rate = %s@%v, expected small-producer@3.70", last.AlcoholTaxTier, last.AlcoholTaxRate)
	}
}

func TestProjectFixedTaxIgnoresTiers(t *testing.T) {
	p := baseParameters()
	p.Tax = FixedTax(7.5)
	p.AlcoholPercent = 2.0
	p.Quantities = []int{100, 50_000}

	rows, err := Project(p)
	if err != nil {
		t.Fatalf("Project() error = %v", err)
	}
	for _, row := range rows {
		if row.AlcoholTaxRate != 7.5 || row.AlcoholTaxTier != "fixed" {
			t.Fatalf("quantity %d month %d rate = %s@%v, expected fixed@7.5", row.Quantity, row.Month, row.AlcoholTaxTier, row.AlcoholTaxRate)
		}
	}
}

func TestProjectSocialLevy(t *testing.T) {
	tests := []struct {
		name           string
		alcoholPercent float64
		quantity       int
		expectedRate   float64
	}{
		{"Beer never pays levy", 5.0, 100_000, 0},
		{"Exactly 18 percent", 18.0, 100, 0},
		{"Fortified small producer", 20.0, 100, 1.50},
		{"Fortified large producer", 20.0, 20_000, 3.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseParameters()
			p.AlcoholPercent = tt.alcoholPercent
			p.Quantities = []int{tt.quantity}

			rows, err := Project(p)
			if err != nil {
				t.Fatalf("Project() error = %v", err)
			}
			for _, row := range rows {
				if row.LevyRate != tt.expectedRate {
					t.Fatalf("month %d levy rate = %v, expected %v", row.Month, row.LevyRate, tt.expectedRate)
				}
				if tt.expectedRate == 0 && row.SocialLevyCost != 0 {
					t.Fatalf("month %d levy cost = %v, expected exactly 0", row.Month, row.SocialLevyCost)
				}
				expectedTotal := p.InitialInvestment + float64(row.Month)*row.MonthlyRecurringCost + row.AlcoholTaxCost + row.SocialLevyCost
				if !mathutil.WithinTolerance(row.TotalCost, expectedTotal, 1e-6) {
					t.Fatalf("month %d total cost = %v, expected %v", row.Month, row.TotalCost, expectedTotal)
				}
			}
		})
	}
}

func TestAnnualProduction(t *testing.T) {
	if got := AnnualProduction(500); got != 6000 {
		t.Errorf("AnnualProduction(500) = %d, expected 6000", got)
	}
}
