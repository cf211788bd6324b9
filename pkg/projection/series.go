package projection

// Series labels, in the order they are emitted per month.
const (
	SeriesTotalCost  = "total_cost"
	SeriesRevenue    = "revenue"
	SeriesProfit     = "profit"
	SeriesAlcoholTax = "alcohol_tax"
	SeriesSocialLevy = "social_levy"
)

// SeriesPoint is one value of a labelled line in long format.
type SeriesPoint struct {
	Group    int     `json:"group"`
	Quantity int     `json:"quantity"`
	Month    int     `json:"month"`
	Series   string  `json:"series"`
	Value    float64 `json:"value"`
}

// Series flattens rows into chart points, one per row and label.
func Series(rows []Row) []SeriesPoint {
	points := make([]SeriesPoint, 0, len(rows)*5)
	for _, row := range rows {
		for _, v := range []struct {
			label string
			value float64
		}{
			{SeriesTotalCost, row.TotalCost},
			{SeriesRevenue, row.Revenue},
			{SeriesProfit, row.Profit},
			{SeriesAlcoholTax, row.AlcoholTaxCost},
			{SeriesSocialLevy, row.SocialLevyCost},
		} {
			points = append(points, SeriesPoint{
				Group:    row.Group,
				Quantity: row.Quantity,
				Month:    row.Month,
				Series:   v.label,
				Value:    v.value,
			})
		}
	}
	return points
}
