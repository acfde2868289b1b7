package reconcile

// Config holds configuration for the reconciliation run.
type Config struct {
	// Fields lists the report fields requested from the remote service.
	Fields []string `mapstructure:"fields" default:"serviceTag"`
	// MaxPages caps report pages fetched per run. Zero or less disables the cap;
	// a repeated token still stops pagination.
	MaxPages int `mapstructure:"max_pages" default:"10000"`
}
