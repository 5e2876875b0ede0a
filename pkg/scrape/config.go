package scrape

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"cotacao-api/pkg/confkit"
)

const (
	defaultUserAgent = "Mozilla/5.0"
	defaultTimeout   = 10 * time.Second
	defaultBarWindow = 10
)

// Config describes the external rates source and what to extract from it.
type Config struct {
	SourceURL string `yaml:"source_url"`
	UserAgent string `yaml:"user_agent"`

	TimeoutRaw string        `yaml:"timeout"`
	Timeout    time.Duration `yaml:"-"`

	// BarWindow is the number of data rows taken from the OHLCV table after
	// its header row.
	BarWindow int `yaml:"bar_window"`

	// Pairs maps a target pair ID (e.g. USD_BRL) to the source instrument
	// pattern used to locate it in the page.
	Pairs map[string]PairPattern `yaml:"pairs"`
}

// PairPattern identifies one instrument link in the source page.
type PairPattern struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// LoadConfig reads scraper configuration from disk.
func LoadConfig(path string) (*Config, error) {
	confkit.LoadDotenvOnce()
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scraper config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// MustLoad reads scraper configuration from the default project location and
// panics on error.
func MustLoad() *Config {
	path := confkit.MustProjectPath("etc/scraper.yaml")
	cfg, err := LoadConfig(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadConfigFromReader constructs a Config from an io.Reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read scraper config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal scraper config: %w", err)
	}
	if err := cfg.normalise(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalise() error {
	c.SourceURL = os.ExpandEnv(strings.TrimSpace(c.SourceURL))
	c.UserAgent = strings.TrimSpace(c.UserAgent)
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	if c.BarWindow <= 0 {
		c.BarWindow = defaultBarWindow
	}

	raw := os.ExpandEnv(strings.TrimSpace(c.TimeoutRaw))
	if raw == "" {
		c.Timeout = defaultTimeout
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("scraper config: parse timeout %q: %w", raw, err)
	}
	if d <= 0 {
		return fmt.Errorf("scraper config: timeout must be positive, got %s", d)
	}
	c.Timeout = d
	return nil
}

// Validate reports missing required settings. Failures here are fatal and
// surface before the first scrape cycle.
func (c *Config) Validate() error {
	if c.SourceURL == "" {
		return errors.New("scraper config: source_url is required")
	}
	if len(c.Pairs) == 0 {
		return errors.New("scraper config: at least one pair pattern is required")
	}
	for id, p := range c.Pairs {
		if strings.TrimSpace(p.From) == "" || strings.TrimSpace(p.To) == "" {
			return fmt.Errorf("scraper config: pair %s needs both from and to", id)
		}
	}
	return nil
}

// PairIDs returns the configured pair identifiers in stable order.
func (c *Config) PairIDs() []string {
	ids := make([]string, 0, len(c.Pairs))
	for id := range c.Pairs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
