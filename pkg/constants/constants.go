// Package constants provides shared constants for the prequal application.
package constants

// Financial constants
const (
	// MonthsPerYear is the number of months in a year
	MonthsPerYear = 12

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// MaxRatio caps every reported ratio, in percent. Anything larger,
	// including a ratio whose division overflowed, is reported at the cap.
	MaxRatio = 1e6
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON emits the raw results as a JSON array
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default applications file name
	DefaultConfigFile = "applications.yaml"

	// ExampleConfigFile is the example applications file name
	ExampleConfigFile = "applications.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultBatchWorkers bounds concurrent evaluations in a batch
	DefaultBatchWorkers = 8

	// MaxBatchSize is the largest number of applications accepted in one batch request
	MaxBatchSize = 500
)
