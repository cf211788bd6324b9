// Package projection computes the month-by-month financial trajectory of a
// small brewery for a set of candidate monthly production quantities.
//
// Project is pure: identical Parameters always yield identical rows, and it is
// safe to call from multiple goroutines.
package projection

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned (wrapped in an *InputError) when Parameters
// violate the engine's input contract.
var ErrInvalidInput = errors.New("invalid input")

// InputError identifies the parameter that failed validation.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidInput.
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// TaxKind selects how the alcohol excise rate is determined.
type TaxKind int

const (
	// TaxFixed applies TaxMode.Rate to every row.
	TaxFixed TaxKind = iota
	// TaxTiered looks the rate up in TaxMode.Tiers (or DefaultAlcoholTiers).
	TaxTiered
)

func (k TaxKind) String() string {
	switch k {
	case TaxFixed:
		return "fixed"
	case TaxTiered:
		return "tiered"
	default:
		return fmt.Sprintf("TaxKind(%d)", int(k))
	}
}

// TaxMode describes the alcohol excise applied per liter of pure alcohol.
type TaxMode struct {
	Kind  TaxKind
	Rate  float64
	Tiers RateTable
}

// FixedTax returns a TaxMode that always applies rate.
func FixedTax(rate float64) TaxMode {
	return TaxMode{Kind: TaxFixed, Rate: rate}
}

// TieredTax returns a TaxMode using DefaultAlcoholTiers.
func TieredTax() TaxMode {
	return TaxMode{Kind: TaxTiered}
}

func (m TaxMode) table() RateTable {
	if len(m.Tiers) == 0 {
		return DefaultAlcoholTiers
	}
	return m.Tiers
}

// Parameters holds every input of a projection.
type Parameters struct {
	InitialInvestment   float64
	VariableCostPerUnit float64
	FixedMonthlyCost    float64
	SalePricePerUnit    float64
	AlcoholPercent      float64
	Months              int
	Quantities          []int
	Tax                 TaxMode
	ExtraMonthlyCosts   float64
	TargetMonthlySalary *float64

	// LevyTiers overrides DefaultLevyTiers when non-empty.
	LevyTiers RateTable
}

func (p Parameters) levyTable() RateTable {
	if len(p.LevyTiers) == 0 {
		return DefaultLevyTiers
	}
	return p.LevyTiers
}

// Validate reports the first input contract violation, if any.
func Validate(p Parameters) error {
	if p.Months < 1 {
		return &InputError{Field: "months", Reason: fmt.Sprintf("must be at least 1, got %d", p.Months)}
	}
	if len(p.Quantities) == 0 {
		return &InputError{Field: "quantities", Reason: "must not be empty"}
	}
	for i, q := range p.Quantities {
		if q <= 0 {
			return &InputError{Field: fmt.Sprintf("quantities[%d]", i), Reason: fmt.Sprintf("must be positive, got %d", q)}
		}
	}

	amounts := []struct {
		field string
		value float64
	}{
		{"initialInvestment", p.InitialInvestment},
		{"variableCostPerUnit", p.VariableCostPerUnit},
		{"fixedMonthlyCost", p.FixedMonthlyCost},
		{"salePricePerUnit", p.SalePricePerUnit},
		{"alcoholPercent", p.AlcoholPercent},
		{"extraMonthlyCosts", p.ExtraMonthlyCosts},
	}
	if p.Tax.Kind == TaxFixed {
		amounts = append(amounts, struct {
			field string
			value float64
		}{"tax.rate", p.Tax.Rate})
	}
	if p.TargetMonthlySalary != nil {
		amounts = append(amounts, struct {
			field string
			value float64
		}{"targetMonthlySalary", *p.TargetMonthlySalary})
	}
	for _, a := range amounts {
		if err := checkAmount(a.field, a.value); err != nil {
			return err
		}
	}

	if p.AlcoholPercent > 100 {
		return &InputError{Field: "alcoholPercent", Reason: fmt.Sprintf("must not exceed 100, got %g", p.AlcoholPercent)}
	}

	switch p.Tax.Kind {
	case TaxFixed:
	case TaxTiered:
		if err := p.Tax.table().validate("tax.tiers"); err != nil {
			return err
		}
	default:
		return &InputError{Field: "tax.mode", Reason: fmt.Sprintf("unknown mode %s", p.Tax.Kind)}
	}

	return p.levyTable().validate("levyTiers")
}

func checkAmount(field string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return &InputError{Field: field, Reason: "must be a finite number"}
	}
	if value < 0 {
		return &InputError{Field: field, Reason: fmt.Sprintf("must not be negative, got %g", value)}
	}
	return nil
}
