package loader

// Config holds configuration for reading the local serial list.
type Config struct {
	// Source selects where serials come from: "file", "s3" or "db".
	Source string `mapstructure:"source" default:"file"`
	// Path is the local file read by the file source.
	Path string `mapstructure:"path" default:"serials.csv"`
	// Object is the object key read from the storage bucket by the s3 source.
	Object string `mapstructure:"object" default:"serials.csv"`
	// Delimiter separates columns on a line. Only the first rune is used.
	Delimiter string `mapstructure:"delimiter" default:","`
	// Column is the zero-based column holding the serial number.
	Column int `mapstructure:"column" default:"0"`
	// SkipHeader drops the first line.
	SkipHeader bool `mapstructure:"skip_header" default:"false"`
	// Table is the asset table read by the db source.
	Table string `mapstructure:"table" default:"assets"`
	// TableColumn is the column of Table holding serial numbers.
	TableColumn string `mapstructure:"table_column" default:"service_tag"`
	// OrderBy optionally orders rows read by the db source. Empty leaves the order to the database.
	OrderBy string `mapstructure:"order_by" default:""`
}

const (
	SourceFile = "file"
	SourceS3   = "s3"
	SourceDB   = "db"
)
