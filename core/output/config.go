package output

// Config holds configuration for where and how the result datasets are written.
type Config struct {
	// Target selects the sink: "file" for a local directory, "s3" for an object storage bucket.
	Target string `mapstructure:"target" default:"file"`
	// Dir is the local directory used by the file target. Created if missing.
	Dir string `mapstructure:"dir" default:"out"`
	// Prefix is the object key prefix used by the s3 target.
	Prefix string `mapstructure:"prefix" default:"reconcile"`
	// Delimiter separates columns. Only the first rune is used.
	Delimiter string `mapstructure:"delimiter" default:","`
	// InventoryFile names the full inventory snapshot dataset.
	InventoryFile string `mapstructure:"inventory_file" default:"inventory.csv"`
	// MatchedFile names the matched records dataset.
	MatchedFile string `mapstructure:"matched_file" default:"matched.csv"`
	// UnmatchedFile names the unmatched serials dataset.
	UnmatchedFile string `mapstructure:"unmatched_file" default:"unmatched.csv"`
}

const (
	TargetFile = "file"
	TargetS3   = "s3"
)
