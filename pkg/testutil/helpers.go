// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/brewery-forecast/internal/forecast"
	"github.com/iwvelando/brewery-forecast/pkg/projection"
)

// FindScenario finds a scenario by name in the results slice.
// Returns a pointer to the forecast if found, nil otherwise.
func FindScenario(results []forecast.Forecast, name string) *forecast.Forecast {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// FindRow returns the row for the given quantity group and month, or nil.
func FindRow(result *forecast.Forecast, group, month int) *projection.Row {
	if result == nil {
		return nil
	}
	for i := range result.Rows {
		if result.Rows[i].Group == group && result.Rows[i].Month == month {
			return &result.Rows[i]
		}
	}
	return nil
}
