package server

import "time"

// Config holds configuration for the mock device-management API served by the
// mock-server command.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8081"`
	// ClientID and ClientSecret are the only credentials the server accepts.
	// Both empty disables the authorization check.
	ClientID     string `mapstructure:"client_id" default:""`
	ClientSecret string `mapstructure:"client_secret" default:""`
	// PageSize is the number of report rows served per page.
	PageSize int `mapstructure:"page_size" default:"100"`
	// Fixture is the YAML file listing the hosts the server knows.
	Fixture string `mapstructure:"fixture" default:"hosts.yaml"`
	// ReportTTLSeconds is how long an unserved report page stays available.
	ReportTTLSeconds int `mapstructure:"report_ttl_seconds" default:"600"`
}

const (
	DefaultPageSize  = 100
	MaxPageSize      = 10000
	DefaultReportTTL = 10 * time.Minute
)

// AuthEnabled reports whether requests must carry basic credentials.
func (c Config) AuthEnabled() bool {
	return c.ClientID != "" || c.ClientSecret != ""
}

// EffectivePageSize clamps PageSize into [1, MaxPageSize], falling back to
// DefaultPageSize when unset.
func (c Config) EffectivePageSize() int {
	switch {
	case c.PageSize <= 0:
		return DefaultPageSize
	case c.PageSize > MaxPageSize:
		return MaxPageSize
	default:
		return c.PageSize
	}
}

// ReportTTL returns ReportTTLSeconds as a duration, DefaultReportTTL when unset.
func (c Config) ReportTTL() time.Duration {
	if c.ReportTTLSeconds <= 0 {
		return DefaultReportTTL
	}
	return time.Duration(c.ReportTTLSeconds) * time.Second
}
