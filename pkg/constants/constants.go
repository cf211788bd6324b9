// Package constants provides shared constants for the brewery-forecast application.
package constants

// Production constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// SmallProducerAnnualLimit is the highest annual production (liters) still
	// taxed at small-producer rates
	SmallProducerAnnualLimit = 200000

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// LongHorizonMonths is the horizon beyond which a configuration warning is raised
	LongHorizonMonths = 120
)

// Scenario defaults, matching the calculator's initial form values
const (
	DefaultInitialInvestment   = 10000.0
	DefaultVariableCostPerUnit = 2.0
	DefaultFixedMonthlyCost    = 1000.0
	DefaultSalePricePerUnit    = 5.0
	DefaultAlcoholPercent      = 5.0
	DefaultMonths              = 12
	DefaultQuantities          = "100,200,300,400,500"
	DefaultTaxRate             = 7.5
)

// Tax mode names used in configuration
const (
	TaxModeFixed  = "fixed"
	TaxModeTiered = "tiered"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML configs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// AddressEnvVar overrides the configured listen address
	AddressEnvVar = "BREWERY_ADDRESS"
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01
)
