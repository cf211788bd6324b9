package output

import (
	"github.com/iwvelando/brewery-forecast/internal/forecast"
	"github.com/iwvelando/brewery-forecast/pkg/projection"
)

// RowRecord is the tabular wire shape of a projection row.
type RowRecord struct {
	Group                int     `json:"group"`
	Quantity             int     `json:"quantity"`
	Month                int     `json:"month"`
	TotalBeerVolume      float64 `json:"totalBeerVolume"`
	PureAlcoholVolume    float64 `json:"pureAlcoholVolume"`
	AlcoholTaxTier       string  `json:"alcoholTaxTier"`
	AlcoholTaxRate       float64 `json:"alcoholTaxRate"`
	AlcoholTaxCost       float64 `json:"alcoholTaxCost"`
	LevyTier             string  `json:"levyTier"`
	LevyRate             float64 `json:"levyRate"`
	SocialLevyCost       float64 `json:"socialLevyCost"`
	MonthlyRecurringCost float64 `json:"monthlyRecurringCost"`
	TotalCost            float64 `json:"totalCost"`
	Revenue              float64 `json:"revenue"`
	Profit               float64 `json:"profit"`
	CumulativeProfit     float64 `json:"cumulativeProfit"`
	IsProfitable         bool    `json:"isProfitable"`
	InvestmentRepaid     bool    `json:"investmentRepaid"`
	SalaryTargetMet      bool    `json:"salaryTargetMet"`
}

// ScenarioRecord bundles one scenario's rows and milestone summaries.
type ScenarioRecord struct {
	Name      string               `json:"name"`
	Rows      []RowRecord          `json:"rows"`
	Summaries []projection.Summary `json:"summaries"`
}

// NewRowRecords converts engine rows into their wire shape.
func NewRowRecords(rows []projection.Row) []RowRecord {
	records := make([]RowRecord, len(rows))
	for i, row := range rows {
		records[i] = RowRecord{
			Group:                row.Group,
			Quantity:             row.Quantity,
			Month:                row.Month,
			TotalBeerVolume:      row.TotalBeerVolume,
			PureAlcoholVolume:    row.PureAlcoholVolume,
			AlcoholTaxTier:       row.AlcoholTaxTier,
			AlcoholTaxRate:       row.AlcoholTaxRate,
			AlcoholTaxCost:       row.AlcoholTaxCost,
			LevyTier:             row.LevyTier,
			LevyRate:             row.LevyRate,
			SocialLevyCost:       row.SocialLevyCost,
			MonthlyRecurringCost: row.MonthlyRecurringCost,
			TotalCost:            row.TotalCost,
			Revenue:              row.Revenue,
			Profit:               row.Profit,
			CumulativeProfit:     row.CumulativeProfit,
			IsProfitable:         row.IsProfitable,
			InvestmentRepaid:     row.InvestmentRepaid,
			SalaryTargetMet:      row.SalaryTargetMet,
		}
	}
	return records
}

// NewScenarioRecord converts a forecast into its wire shape.
func NewScenarioRecord(result forecast.Forecast) ScenarioRecord {
	summaries := result.Summaries
	if summaries == nil {
		summaries = []projection.Summary{}
	}
	return ScenarioRecord{
		Name:      result.Name,
		Rows:      NewRowRecords(result.Rows),
		Summaries: summaries,
	}
}
