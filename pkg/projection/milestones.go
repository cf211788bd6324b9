package projection

// Groups splits a row sequence returned by Project into one slice per
// quantity, in input order. The slices share storage with rows.
func Groups(rows []Row) [][]Row {
	var groups [][]Row
	start := 0
	for i := 1; i <= len(rows); i++ {
		if i == len(rows) || rows[i].Group != rows[start].Group {
			groups = append(groups, rows[start:i])
			start = i
		}
	}
	return groups
}

// FirstMonth returns the smallest month among rows satisfying flag. The whole
// range is scanned since per-month flags such as IsProfitable can flip back.
func FirstMonth(rows []Row, flag func(Row) bool) (int, bool) {
	first, found := 0, false
	for _, row := range rows {
		if !flag(row) {
			continue
		}
		if !found || row.Month < first {
			first, found = row.Month, true
		}
	}
	return first, found
}

// Milestone flag selectors for FirstMonth.
var (
	Profitable       = func(r Row) bool { return r.IsProfitable }
	InvestmentRepaid = func(r Row) bool { return r.InvestmentRepaid }
	SalaryTargetMet  = func(r Row) bool { return r.SalaryTargetMet }
)

// Summary is the per-quantity view a dashboard shows next to its chart.
type Summary struct {
	Group            int    `json:"group"`
	Quantity         int    `json:"quantity"`
	AnnualProduction int    `json:"annualProduction"`
	AlcoholTaxTier   string `json:"alcoholTaxTier"`
	LevyTier         string `json:"levyTier"`

	// Milestone months are nil when never reached.
	FirstProfitableMonth   *int `json:"firstProfitableMonth"`
	InvestmentRepaidMonth  *int `json:"investmentRepaidMonth"`
	SalaryTargetMetMonth   *int `json:"salaryTargetMetMonth"`
	SalaryTargetConfigured bool `json:"salaryTargetConfigured"`

	FinalProfit           float64 `json:"finalProfit"`
	FinalCumulativeProfit float64 `json:"finalCumulativeProfit"`
}

// Summarize builds one Summary per row group.
func Summarize(rows []Row, p Parameters) []Summary {
	groups := Groups(rows)
	summaries := make([]Summary, 0, len(groups))
	for _, group := range groups {
		last := group[len(group)-1]
		s := Summary{
			Group:                  last.Group,
			Quantity:               last.Quantity,
			AnnualProduction:       AnnualProduction(last.Quantity),
			AlcoholTaxTier:         last.AlcoholTaxTier,
			LevyTier:               last.LevyTier,
			FirstProfitableMonth:   monthPtr(FirstMonth(group, Profitable)),
			InvestmentRepaidMonth:  monthPtr(FirstMonth(group, InvestmentRepaid)),
			SalaryTargetConfigured: p.TargetMonthlySalary != nil,
			FinalProfit:            last.Profit,
			FinalCumulativeProfit:  last.CumulativeProfit,
		}
		if s.SalaryTargetConfigured {
			s.SalaryTargetMetMonth = monthPtr(FirstMonth(group, SalaryTargetMet))
		}
		summaries = append(summaries, s)
	}
	return summaries
}

func monthPtr(month int, ok bool) *int {
	if !ok {
		return nil
	}
	return &month
}
