package remote

// Config holds configuration for the device-management service client.
type Config struct {
	// BaseURL is the root URL of the device-management API (e.g. https://dm.example.com/api).
	BaseURL string `mapstructure:"base_url" default:"http://localhost:8081"`
	// ClientID identifies this tool to the remote service.
	ClientID string `mapstructure:"client_id" default:""`
	// ClientSecret is the secret paired with ClientID.
	ClientSecret string `mapstructure:"client_secret" default:""`
	// TimeoutSeconds bounds connection setup and each response.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
