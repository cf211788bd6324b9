// Package output provides utilities for formatting and displaying forecast results.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/iwvelando/brewery-forecast/internal/forecast"
	"github.com/iwvelando/brewery-forecast/pkg/format"
	"github.com/iwvelando/brewery-forecast/pkg/mathutil"
	"github.com/iwvelando/brewery-forecast/pkg/projection"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CSVHeader lists the CSV columns in order.
var CSVHeader = []string{
	"scenario", "quantity", "month",
	"total_beer_volume", "pure_alcohol_volume",
	"alcohol_tax_rate", "alcohol_tax_cost", "social_levy_cost",
	"total_cost", "revenue", "profit", "cumulative_profit",
	"is_profitable", "investment_repaid", "salary_target_met",
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []forecast.Forecast) {
	WritePretty(os.Stdout, results)
}

// WritePretty writes the human-readable table for every scenario to w.
func WritePretty(w io.Writer, results []forecast.Forecast) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		_, _ = fmt.Fprintf(w, "--- Results for scenario %s ---\n", result.Name)
		for g, group := range projection.Groups(result.Rows) {
			quantity := group[0].Quantity
			_, _ = p.Fprintf(w, "Quantity %d units/month (annual production %d)\n", quantity, projection.AnnualProduction(quantity))
			_, _ = fmt.Fprintf(w, "Month | Alcohol Tax | Social Levy | Total Cost | Revenue | Profit | Cumulative Profit | Flags\n")
			_, _ = fmt.Fprintf(w, "_____ | ___________ | ___________ | __________ | _______ | ______ | _________________ | _____\n")
			for _, row := range group {
				_, _ = fmt.Fprintf(w, "%5d | %s | %s | %s | %s | %s | %s | %s\n",
					row.Month,
					format.Currency(row.AlcoholTaxCost),
					format.Currency(row.SocialLevyCost),
					format.Currency(row.TotalCost),
					format.Currency(row.Revenue),
					format.Currency(row.Profit),
					format.Currency(row.CumulativeProfit),
					flags(row),
				)
			}
			if g < len(result.Summaries) {
				writeSummary(w, result.Summaries[g])
			}
			_, _ = fmt.Fprintf(w, "\n")
		}
		if len(results) > 1 && i < len(results)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}

func writeSummary(w io.Writer, s projection.Summary) {
	_, _ = fmt.Fprintf(w, "Tax tier: %s | Levy tier: %s\n", s.AlcoholTaxTier, s.LevyTier)
	_, _ = fmt.Fprintf(w, "First profitable month: %s\n", format.Milestone(s.FirstProfitableMonth))
	_, _ = fmt.Fprintf(w, "Investment repaid: %s\n", format.Milestone(s.InvestmentRepaidMonth))
	if s.SalaryTargetConfigured {
		_, _ = fmt.Fprintf(w, "Salary target met: %s\n", format.Milestone(s.SalaryTargetMetMonth))
	}
}

func flags(row projection.Row) string {
	out := ""
	add := func(set bool, label string) {
		if !set {
			return
		}
		if out != "" {
			out += ","
		}
		out += label
	}
	add(row.IsProfitable, "profitable")
	add(row.InvestmentRepaid, "repaid")
	add(row.SalaryTargetMet, "salary")
	return out
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []forecast.Forecast) {
	_ = WriteCSV(os.Stdout, results)
}

// CsvString returns the CSV rendering of results.
func CsvString(results []forecast.Forecast) string {
	var buf bytes.Buffer
	_ = WriteCSV(&buf, results)
	return buf.String()
}

// WriteCSV writes one CSV record per projection row, preceded by CSVHeader.
func WriteCSV(w io.Writer, results []forecast.Forecast) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, result := range results {
		for _, row := range result.Rows {
			if err := cw.Write(csvRecord(result.Name, row)); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRecord(name string, row projection.Row) []string {
	return []string{
		name,
		strconv.Itoa(row.Quantity),
		strconv.Itoa(row.Month),
		money(row.TotalBeerVolume),
		money(row.PureAlcoholVolume),
		money(row.AlcoholTaxRate),
		money(row.AlcoholTaxCost),
		money(row.SocialLevyCost),
		money(row.TotalCost),
		money(row.Revenue),
		money(row.Profit),
		money(row.CumulativeProfit),
		strconv.FormatBool(row.IsProfitable),
		strconv.FormatBool(row.InvestmentRepaid),
		strconv.FormatBool(row.SalaryTargetMet),
	}
}

func money(v float64) string {
	return strconv.FormatFloat(mathutil.Round(v), 'f', 2, 64)
}

// JSONFormat outputs the results as indented JSON.
func JSONFormat(results []forecast.Forecast) {
	_ = WriteJSON(os.Stdout, results)
}

// WriteJSON writes results as an indented JSON array of ScenarioRecords.
func WriteJSON(w io.Writer, results []forecast.Forecast) error {
	records := make([]ScenarioRecord, 0, len(results))
	for _, result := range results {
		records = append(records, NewScenarioRecord(result))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
