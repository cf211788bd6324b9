package config

import (
	"fmt"
	"strings"

	"github.com/iwvelando/brewery-forecast/pkg/constants"
	"github.com/iwvelando/brewery-forecast/pkg/projection"
	"github.com/iwvelando/brewery-forecast/pkg/quantities"
)

// levyThreshold is the alcohol percent above which DefaultLevyTiers charge.
const levyThreshold = 18.0

// Defaults returns the built-in parameter set used for any value that neither
// a scenario nor Common provides.
func Defaults() Parameters {
	return Parameters{
		InitialInvestment:   floatPtr(constants.DefaultInitialInvestment),
		VariableCostPerUnit: floatPtr(constants.DefaultVariableCostPerUnit),
		FixedMonthlyCost:    floatPtr(constants.DefaultFixedMonthlyCost),
		SalePricePerUnit:    floatPtr(constants.DefaultSalePricePerUnit),
		AlcoholPercent:      floatPtr(constants.DefaultAlcoholPercent),
		Months:              intPtr(constants.DefaultMonths),
		Quantities:          stringPtr(constants.DefaultQuantities),
		Tax:                 &TaxConfig{Mode: constants.TaxModeFixed, Rate: constants.DefaultTaxRate},
		ExtraCosts:          &ExtraCosts{},
	}
}

// Merge layers override on top of base, field by field.
func Merge(base, override Parameters) Parameters {
	merged := base
	if override.InitialInvestment != nil {
		merged.InitialInvestment = override.InitialInvestment
	}
	if override.VariableCostPerUnit != nil {
		merged.VariableCostPerUnit = override.VariableCostPerUnit
	}
	if override.FixedMonthlyCost != nil {
		merged.FixedMonthlyCost = override.FixedMonthlyCost
	}
	if override.SalePricePerUnit != nil {
		merged.SalePricePerUnit = override.SalePricePerUnit
	}
	if override.AlcoholPercent != nil {
		merged.AlcoholPercent = override.AlcoholPercent
	}
	if override.Months != nil {
		merged.Months = override.Months
	}
	if override.Quantities != nil {
		merged.Quantities = override.Quantities
	}
	if override.Tax != nil {
		merged.Tax = override.Tax
	}
	if override.ExtraCosts != nil {
		merged.ExtraCosts = override.ExtraCosts
	}
	if override.TargetMonthlySalary != nil {
		merged.TargetMonthlySalary = override.TargetMonthlySalary
	}
	return merged
}

// Resolve layers scenario over common over Defaults and converts the result
// into engine parameters. Range checks are left to projection.Validate.
func Resolve(common, scenario Parameters) (projection.Parameters, error) {
	merged := Merge(Merge(Defaults(), common), scenario)

	qs, err := quantities.Parse(*merged.Quantities)
	if err != nil {
		return projection.Parameters{}, fmt.Errorf("failed to parse quantities: %w", err)
	}

	tax, err := merged.Tax.toTaxMode()
	if err != nil {
		return projection.Parameters{}, err
	}

	params := projection.Parameters{
		InitialInvestment:   *merged.InitialInvestment,
		VariableCostPerUnit: *merged.VariableCostPerUnit,
		FixedMonthlyCost:    *merged.FixedMonthlyCost,
		SalePricePerUnit:    *merged.SalePricePerUnit,
		AlcoholPercent:      *merged.AlcoholPercent,
		Months:              *merged.Months,
		Quantities:          qs,
		Tax:                 tax,
		ExtraMonthlyCosts:   merged.ExtraCosts.Total(),
	}
	if merged.TargetMonthlySalary != nil {
		params.TargetMonthlySalary = floatPtr(*merged.TargetMonthlySalary)
	}
	return params, nil
}

func (t *TaxConfig) toTaxMode() (projection.TaxMode, error) {
	switch strings.ToLower(strings.TrimSpace(t.Mode)) {
	case "", constants.TaxModeFixed:
		return projection.FixedTax(t.Rate), nil
	case constants.TaxModeTiered:
		return projection.TieredTax(), nil
	default:
		return projection.TaxMode{}, fmt.Errorf("%w: unknown tax mode %q, expected %s or %s",
			projection.ErrInvalidInput, t.Mode, constants.TaxModeFixed, constants.TaxModeTiered)
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

func intPtr(v int) *int {
	return &v
}

func stringPtr(v string) *string {
	return &v
}
