package config

import (
	"reflect"
	"strings"

	"tag-reconciler/core/database"
	"tag-reconciler/core/loader"
	"tag-reconciler/core/logger"
	"tag-reconciler/core/output"
	"tag-reconciler/core/reconcile"
	"tag-reconciler/core/remote"
	"tag-reconciler/core/server"
	"tag-reconciler/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// Each section is owned by the package that consumes it.
type Config struct {
	// Remote holds the device-management service endpoint and credentials.
	Remote remote.Config `mapstructure:"remote"`
	// Input selects and shapes the local serial list.
	Input loader.Config `mapstructure:"input"`
	// Output selects where the result datasets go.
	Output output.Config `mapstructure:"output"`
	// Reconcile tunes the report request and pagination.
	Reconcile reconcile.Config `mapstructure:"reconcile"`
	// Storage holds configuration for the object storage (e.g., S3, Minio).
	Storage storage.Config `mapstructure:"storage"`
	// Database holds configuration for the asset database connection.
	Database database.Config `mapstructure:"database"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Server holds configuration for the mock device-management API.
	Server server.Config `mapstructure:"server"`
}

// LoadConfig loads configuration from environment variables and the .env file in path.
func LoadConfig(path string) (*Config, error) {
	v := newViper(path)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func newViper(path string) *viper.Viper {
	envPath := path + "/.env"
	if path == "." || path == "" {
		envPath = ".env"
	}

	// A missing .env is normal outside development.
	_ = godotenv.Overload(envPath)

	v := viper.New()
	bindValues(v, Config{}, "")

	// REMOTE_BASE_URL -> remote.base_url
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set a default, even empty, so AutomaticEnv picks the key up.
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
