// Package forecast runs the projection engine for every active scenario of a
// configuration.
package forecast

import (
	"fmt"
	"runtime"

	"github.com/iwvelando/brewery-forecast/internal/config"
	"github.com/iwvelando/brewery-forecast/pkg/projection"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Forecast holds all information related to a specific scenario's projection.
type Forecast struct {
	Name       string
	Parameters projection.Parameters
	Rows       []projection.Row
	Summaries  []projection.Summary
}

// GetForecast processes the Forecasts for all active Scenarios. Scenarios run
// concurrently; results keep configuration order.
func GetForecast(logger *zap.Logger, conf config.Configuration) ([]Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var scenarios []config.Scenario
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			logger.Debug(fmt.Sprintf("skipping scenario %s because it is inactive", scenario.Name),
				zap.String("op", "forecast.GetForecast"),
			)
			continue
		}
		scenarios = append(scenarios, scenario)
	}

	results := make([]Forecast, len(scenarios))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, scenario := range scenarios {
		g.Go(func() error {
			result, err := Run(logger, scenario.Name, conf.Common, scenario.Parameters)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// Run resolves one scenario's parameters and projects it.
func Run(logger *zap.Logger, name string, common, overrides config.Parameters) (Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	params, err := config.Resolve(common, overrides)
	if err != nil {
		return Forecast{}, fmt.Errorf("scenario %s: %w", name, err)
	}
	return Project(logger, name, params)
}

// Project runs the engine on already-resolved parameters.
func Project(logger *zap.Logger, name string, params projection.Parameters) (Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	rows, err := projection.Project(params)
	if err != nil {
		return Forecast{}, fmt.Errorf("scenario %s: %w", name, err)
	}

	logger.Debug("scenario projected",
		zap.String("op", "forecast.Project"),
		zap.String("scenario", name),
		zap.Ints("quantities", params.Quantities),
		zap.Int("months", params.Months),
		zap.Int("rows", len(rows)),
	)

	return Forecast{
		Name:       name,
		Parameters: params,
		Rows:       rows,
		Summaries:  projection.Summarize(rows, params),
	}, nil
}
