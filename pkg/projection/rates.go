package projection

import (
	"fmt"
	"math"

	"github.com/iwvelando/brewery-forecast/pkg/constants"
)

// Unbounded marks a RateRule limit that never excludes a row.
var Unbounded = math.Inf(1)

// RateRule is one row of a rate decision table. A rule matches when the
// alcohol percent and the annual production are both at or below its limits.
type RateRule struct {
	Name                string
	MaxAlcoholPercent   float64
	MaxAnnualProduction float64
	Rate                float64
}

func (r RateRule) matches(alcoholPercent float64, annualProduction int) bool {
	return alcoholPercent <= r.MaxAlcoholPercent && float64(annualProduction) <= r.MaxAnnualProduction
}

// RateTable is evaluated top to bottom; the first matching rule wins.
type RateTable []RateRule

// DefaultAlcoholTiers is the tiered excise on beer, per liter of pure alcohol.
var DefaultAlcoholTiers = RateTable{
	{Name: "reduced", MaxAlcoholPercent: 2.8, MaxAnnualProduction: Unbounded, Rate: 3.82},
	{Name: "small-producer", MaxAlcoholPercent: Unbounded, MaxAnnualProduction: constants.SmallProducerAnnualLimit, Rate: 3.70},
	{Name: "standard", MaxAlcoholPercent: Unbounded, MaxAnnualProduction: Unbounded, Rate: 7.49},
}

// DefaultLevyTiers is the social security levy on strong beverages, per liter
// of pure alcohol. Products at or below 18% are exempt.
var DefaultLevyTiers = RateTable{
	{Name: "exempt", MaxAlcoholPercent: 18, MaxAnnualProduction: Unbounded, Rate: 0},
	{Name: "small-producer", MaxAlcoholPercent: Unbounded, MaxAnnualProduction: constants.SmallProducerAnnualLimit, Rate: 1.50},
	{Name: "standard", MaxAlcoholPercent: Unbounded, MaxAnnualProduction: Unbounded, Rate: 3.00},
}

// Lookup returns the first rule matching the inputs. The boolean is false
// when no rule matches, in which case the rate is zero.
func (t RateTable) Lookup(alcoholPercent float64, annualProduction int) (RateRule, bool) {
	for _, rule := range t {
		if rule.matches(alcoholPercent, annualProduction) {
			return rule, true
		}
	}
	return RateRule{}, false
}

func (t RateTable) validate(field string) error {
	for i, rule := range t {
		if math.IsNaN(rule.Rate) || math.IsInf(rule.Rate, 0) || rule.Rate < 0 {
			return &InputError{Field: fmt.Sprintf("%s[%d].rate", field, i), Reason: fmt.Sprintf("must be a non-negative finite number, got %g", rule.Rate)}
		}
		if math.IsNaN(rule.MaxAlcoholPercent) || math.IsNaN(rule.MaxAnnualProduction) {
			return &InputError{Field: fmt.Sprintf("%s[%d]", field, i), Reason: "limits must be numbers"}
		}
	}
	return nil
}

// AnnualProduction is the full-year output at a monthly rate of quantity. Tier
// lookups always use this figure, never the cumulative volume of a month.
func AnnualProduction(quantity int) int {
	return quantity * constants.MonthsPerYear
}

type appliedRate struct {
	name string
	rate float64
}

func alcoholTaxRate(p Parameters, annualProduction int) appliedRate {
	if p.Tax.Kind == TaxFixed {
		return appliedRate{name: TaxFixed.String(), rate: p.Tax.Rate}
	}
	rule, ok := p.Tax.table().Lookup(p.AlcoholPercent, annualProduction)
	if !ok {
		return appliedRate{}
	}
	return appliedRate{name: rule.Name, rate: rule.Rate}
}

func levyRate(p Parameters, annualProduction int) appliedRate {
	rule, ok := p.levyTable().Lookup(p.AlcoholPercent, annualProduction)
	if !ok {
		return appliedRate{}
	}
	return appliedRate{name: rule.Name, rate: rule.Rate}
}
