// Package format renders projection values for humans.
package format

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotReached is shown in place of a milestone month that never occurs.
const NotReached = "not reached"

// Currency returns an amount with a euro sign and thousands separators (e.g., "-€1,234.56").
func Currency(amount float64) string {
	formatted := message.NewPrinter(language.English).Sprintf("%.2f", math.Abs(amount))
	if amount < 0 && formatted != "0.00" {
		return "-€" + formatted
	}
	return "€" + formatted
}

// Milestone renders an optional milestone month.
func Milestone(month *int) string {
	if month == nil {
		return NotReached
	}
	return fmt.Sprintf("month %d", *month)
}
