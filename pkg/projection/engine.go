package projection

import (
	"github.com/iwvelando/brewery-forecast/pkg/constants"
)

// Row is the state of one production quantity at the end of one month.
type Row struct {
	// Group is the index of Quantity within Parameters.Quantities. Duplicate
	// quantities produce distinct groups.
	Group    int
	Quantity int
	Month    int

	TotalBeerVolume   float64
	PureAlcoholVolume float64

	AlcoholTaxTier string
	AlcoholTaxRate float64
	AlcoholTaxCost float64
	LevyTier       string
	LevyRate       float64
	SocialLevyCost float64

	MonthlyRecurringCost float64
	TotalCost            float64
	Revenue              float64
	Profit               float64
	CumulativeProfit     float64

	IsProfitable     bool
	InvestmentRepaid bool
	SalaryTargetMet  bool
}

// Project evaluates every quantity of p over months 1..p.Months. Rows are
// grouped by quantity in input order and ascend by month within a group.
func Project(p Parameters) ([]Row, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(p.Quantities)*p.Months)
	for group, quantity := range p.Quantities {
		rows = appendGroup(rows, p, group, quantity)
	}
	return rows, nil
}

func appendGroup(rows []Row, p Parameters, group, quantity int) []Row {
	annual := AnnualProduction(quantity)
	tax := alcoholTaxRate(p, annual)
	levy := levyRate(p, annual)

	q := float64(quantity)
	recurring := q*p.VariableCostPerUnit + p.FixedMonthlyCost + p.ExtraMonthlyCosts

	cumulative := 0.0
	for month := 1; month <= p.Months; month++ {
		m := float64(month)
		beer := q * m
		pure := beer * p.AlcoholPercent / constants.PercentageMultiplier
		taxCost := pure * tax.rate
		levyCost := pure * levy.rate

		totalCost := p.InitialInvestment + m*recurring + taxCost + levyCost
		revenue := q * p.SalePricePerUnit * m
		profit := revenue - totalCost
		cumulative += profit

		row := Row{
			Group:                group,
			Quantity:             quantity,
			Month:                month,
			TotalBeerVolume:      beer,
			PureAlcoholVolume:    pure,
			AlcoholTaxTier:       tax.name,
			AlcoholTaxRate:       tax.rate,
			AlcoholTaxCost:       taxCost,
			LevyTier:             levy.name,
			LevyRate:             levy.rate,
			SocialLevyCost:       levyCost,
			MonthlyRecurringCost: recurring,
			TotalCost:            totalCost,
			Revenue:              revenue,
			Profit:               profit,
			CumulativeProfit:     cumulative,
			IsProfitable:         profit > 0,
			InvestmentRepaid:     cumulative >= p.InitialInvestment,
		}
		if p.TargetMonthlySalary != nil {
			row.SalaryTargetMet = profit >= *p.TargetMonthlySalary
		}
		rows = append(rows, row)
	}
	return rows
}
