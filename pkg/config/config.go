package config

import "time"

// Config holds all configuration
type Config struct {
	Discovery DiscoveryConfig
	Schedule  ScheduleConfig
	HTTP      HTTPConfig
	DNS       DNSConfig
	Suffix    SuffixConfig
	Metrics   MetricsConfig
}

type DiscoveryConfig struct {
	BaseURL string
	Product string
	Scope   []string
}

type ScheduleConfig struct {
	Interval     time.Duration
	InitialDelay time.Duration
	Once         bool
}

type HTTPConfig struct {
	Timeout         time.Duration
	MaxResponseSize int64
	UserAgent       string
}

type DNSConfig struct {
	Servers []string
	Timeout time.Duration
}

type SuffixConfig struct {
	File          string
	URL           string
	IgnorePrivate bool
}

type MetricsConfig struct {
	Listen string
}

// New creates config with defaults for everything but the base URL
func New(baseURL string) *Config {
	return &Config{
		Discovery: DiscoveryConfig{
			BaseURL: baseURL,
			Product: "jenkins",
		},
		Schedule: ScheduleConfig{
			Interval: 24 * time.Hour,
		},
		HTTP: HTTPConfig{
			Timeout:         30 * time.Second,
			MaxResponseSize: 64 * 1024,
		},
		DNS: DNSConfig{
			Timeout: 5 * time.Second,
		},
	}
}
