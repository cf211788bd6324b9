// Package config defines the data structures related to configuration and
// includes functions for loading the config and resolving scenarios into
// projection parameters.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/brewery-forecast/pkg/constants"
	"github.com/iwvelando/brewery-forecast/pkg/mathutil"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for brewery-forecast.
type Configuration struct {
	Common    Parameters    `yaml:"common,omitempty"`
	Scenarios []Scenario    `yaml:"scenarios"`
	Logging   LoggingConfig `yaml:"logging,omitempty"`
	Output    OutputConfig  `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// Scenario is a named set of parameter overrides on top of Common.
type Scenario struct {
	Name       string     `yaml:"name"`
	Active     bool       `yaml:"active"`
	Parameters Parameters `yaml:"parameters,omitempty"`
}

// Parameters mirrors projection.Parameters with every field optional so that
// scenarios only need to state what differs from Common.
type Parameters struct {
	InitialInvestment   *float64    `yaml:"initialInvestment,omitempty"`
	VariableCostPerUnit *float64    `yaml:"variableCostPerUnit,omitempty"`
	FixedMonthlyCost    *float64    `yaml:"fixedMonthlyCost,omitempty"`
	SalePricePerUnit    *float64    `yaml:"salePricePerUnit,omitempty"`
	AlcoholPercent      *float64    `yaml:"alcoholPercent,omitempty"`
	Months              *int        `yaml:"months,omitempty"`
	Quantities          *string     `yaml:"quantities,omitempty"`
	Tax                 *TaxConfig  `yaml:"tax,omitempty"`
	ExtraCosts          *ExtraCosts `yaml:"extraCosts,omitempty"`
	TargetMonthlySalary *float64    `yaml:"targetMonthlySalary,omitempty"`
}

// TaxConfig selects the alcohol excise model.
type TaxConfig struct {
	Mode string  `yaml:"mode"` // fixed, tiered
	Rate float64 `yaml:"rate,omitempty"`
}

// ExtraCosts are additional recurring monthly costs.
type ExtraCosts struct {
	Labor        float64 `yaml:"labor,omitempty"`
	Marketing    float64 `yaml:"marketing,omitempty"`
	Distribution float64 `yaml:"distribution,omitempty"`
	Other        float64 `yaml:"other,omitempty"`
}

// Total sums all extra cost components.
func (e ExtraCosts) Total() float64 {
	return e.Labor + e.Marketing + e.Distribution + e.Other
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ActiveScenarios returns the scenarios marked active, in file order.
func (c *Configuration) ActiveScenarios() []Scenario {
	var active []Scenario
	for _, scenario := range c.Scenarios {
		if scenario.Active {
			active = append(active, scenario)
		}
	}
	return active
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Hard errors surface later when scenarios are resolved.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.ActiveScenarios()) == 0 {
		warnings = append(warnings, "No active scenarios configured; nothing will be projected")
	}

	seen := make(map[string]bool)
	for _, scenario := range c.Scenarios {
		name := strings.TrimSpace(scenario.Name)
		if name == "" {
			warnings = append(warnings, "Scenario without a name")
			continue
		}
		if seen[name] {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' is defined more than once", name))
		}
		seen[name] = true
	}

	for _, scenario := range c.ActiveScenarios() {
		params, err := Resolve(c.Common, scenario.Parameters)
		if err != nil {
			continue
		}
		if mathutil.Margin(params.SalePricePerUnit, params.VariableCostPerUnit) <= 0 {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' sells at or below variable cost (%.2f <= %.2f) and can never break even",
				scenario.Name, params.SalePricePerUnit, params.VariableCostPerUnit))
		}
		if params.AlcoholPercent > levyThreshold {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' is above %.0f%% alcohol; the social security levy applies",
				scenario.Name, levyThreshold))
		}
		if params.Months > constants.LongHorizonMonths {
			warnings = append(warnings, fmt.Sprintf("Scenario '%s' projects %d months; horizons beyond %d months assume constant prices",
				scenario.Name, params.Months, constants.LongHorizonMonths))
		}
	}

	return warnings
}
