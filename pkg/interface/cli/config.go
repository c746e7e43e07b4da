package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/WangYihang/discovery-pinger/pkg/common"
	"github.com/WangYihang/discovery-pinger/pkg/config"
	"github.com/WangYihang/discovery-pinger/pkg/domain/entity"
	"github.com/jessevdk/go-flags"
)

// Config holds all application configuration
type Config struct {
	// Discovery
	BaseURL string   `short:"u" long:"url" description:"Externally reachable base URL of this instance"`
	Product string   `long:"product" description:"Product name, reports go to discover-<product>.<domain>" default:"jenkins"`
	Scope   []string `long:"scope" description:"Only report to domains at or below this suffix (repeatable)"`

	// Schedule
	Interval     time.Duration `long:"interval" description:"Time between discovery runs" default:"24h"`
	InitialDelay time.Duration `long:"initial-delay" description:"Delay before the first run, 0 picks a random delay within one interval" default:"0s"`
	Once         bool          `long:"once" description:"Run discovery once and exit"`
	Plan         bool          `long:"plan" description:"Print the discovery targets without reporting"`

	// HTTP
	HTTPTimeout     int    `long:"http-timeout" description:"HTTP request timeout in seconds" default:"30"`
	MaxResponseSize int64  `long:"max-response-size" description:"Maximum response bytes read from a discovery endpoint" default:"65536"`
	UserAgent       string `long:"user-agent" description:"HTTP User-Agent header"`

	// Real HTTP timeout duration (not parsed from flags directly)
	HTTPTimeoutDuration time.Duration

	// DNS
	DNSServers []string `long:"dns-server" description:"DNS server (host:port) used to pre-check discovery names (repeatable)"`
	DNSTimeout int      `long:"dns-timeout" description:"DNS query timeout in seconds" default:"5"`

	// Real DNS timeout duration
	DNSTimeoutDuration time.Duration

	// Public suffix list
	SuffixFile    string `long:"psl-file" description:"Load the public suffix list from this file"`
	SuffixURL     string `long:"psl-url" description:"Fetch the public suffix list from this URL at start-up"`
	IgnorePrivate bool   `long:"ignore-private" description:"Only honour ICANN public suffix rules"`

	// Observability
	MetricsListen string `long:"metrics-listen" description:"Serve Prometheus metrics on this address, e.g. :2112"`
	Verbose       bool   `short:"v" long:"verbose" description:"Enable debug logging"`
	Version       bool   `long:"version" description:"Print version and exit"`
}

// ParseFlags parses command line flags
func ParseFlags() (*Config, error) {
	return parseArgs(os.Args[1:])
}

func parseArgs(args []string) (*Config, error) {
	cfg := &Config{}

	parser := flags.NewParser(cfg, flags.Default)
	parser.Usage = "[OPTIONS]"

	if _, err := parser.ParseArgs(args); err != nil {
		if flags.WroteHelp(err) {
			// Help has been printed by the library, exit cleanly
			os.Exit(0)
		}
		return nil, err
	}

	if cfg.Version {
		return cfg, nil
	}

	// Convert timeouts
	cfg.HTTPTimeoutDuration = time.Duration(cfg.HTTPTimeout) * time.Second
	cfg.DNSTimeoutDuration = time.Duration(cfg.DNSTimeout) * time.Second

	if cfg.UserAgent == "" {
		cfg.UserAgent = "discovery-pinger/" + common.PV.Version
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required (--url)")
	}

	// the product must stay a single label
	if strings.Contains(c.Product, ".") {
		return fmt.Errorf("product %q must not contain a dot", c.Product)
	}
	if _, err := entity.ParseName(entity.DiscoveryLabel(c.Product)); err != nil {
		return fmt.Errorf("product %q does not form a valid DNS label: %w", c.Product, err)
	}

	if c.Interval <= 0 {
		return fmt.Errorf("interval must be > 0, got %s", c.Interval)
	}

	if c.InitialDelay < 0 {
		return fmt.Errorf("initial delay must be >= 0, got %s", c.InitialDelay)
	}

	if c.HTTPTimeoutDuration <= 0 {
		return fmt.Errorf("HTTP timeout must be > 0, got %s", c.HTTPTimeoutDuration)
	}

	if c.DNSTimeoutDuration <= 0 {
		return fmt.Errorf("DNS timeout must be > 0, got %s", c.DNSTimeoutDuration)
	}

	if c.MaxResponseSize <= 0 {
		return fmt.Errorf("max response size must be > 0, got %d", c.MaxResponseSize)
	}

	if c.SuffixFile != "" && c.SuffixURL != "" {
		return fmt.Errorf("--psl-file and --psl-url are mutually exclusive")
	}

	return nil
}

// ToConfig groups the flags into sections
func (c *Config) ToConfig() *config.Config {
	cfg := config.New(c.BaseURL)

	cfg.Discovery.Product = c.Product
	cfg.Discovery.Scope = c.Scope
	cfg.Schedule = config.ScheduleConfig{
		Interval:     c.Interval,
		InitialDelay: c.InitialDelay,
		Once:         c.Once,
	}
	cfg.HTTP = config.HTTPConfig{
		Timeout:         c.HTTPTimeoutDuration,
		MaxResponseSize: c.MaxResponseSize,
		UserAgent:       c.UserAgent,
	}
	cfg.DNS = config.DNSConfig{
		Servers: c.DNSServers,
		Timeout: c.DNSTimeoutDuration,
	}
	cfg.Suffix = config.SuffixConfig{
		File:          c.SuffixFile,
		URL:           c.SuffixURL,
		IgnorePrivate: c.IgnorePrivate,
	}
	cfg.Metrics = config.MetricsConfig{Listen: c.MetricsListen}

	return cfg
}
