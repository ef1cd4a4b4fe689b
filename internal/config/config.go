package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rohmanhakim/flowmap/internal/metadata"
	"github.com/rohmanhakim/flowmap/pkg/fileutil"
	"github.com/rohmanhakim/flowmap/pkg/hashutil"
	"gopkg.in/yaml.v3"
)

const (
	ReportFormatTable    = "table"
	ReportFormatJSON     = "json"
	ReportFormatCSV      = "csv"
	ReportFormatMarkdown = "markdown"
)

type Config struct {
	//===============
	// Limits
	//===============
	// Maximum number of hyperlink hops from the seed URL
	maxDepth int
	// Maximum number of URLs claimed for fetching in one crawl. 0 means unlimited
	maxPages int
	// Maximum number of queued items. 0 means unlimited
	maxFrontier int
	// Overall deadline of one crawl. 0 means none
	crawlTimeout time.Duration

	//===============
	// Workers
	//===============
	// Number of goroutines fetching pages of the same BFS layer
	concurrency int
	// Randomized variation added on top of retry backoff
	jitter time.Duration
	// Controls the random number generator
	randomSeed int64
	// maximum attempt during retry
	maxAttempt int
	// initial delay for backoff
	backoffInitialDuration time.Duration
	// multiplier during exponential backoff
	backoffMultiplier float64
	// capped maximum delay for backoff to stop exponential multiplication
	backoffMaxDuration time.Duration

	//===============
	// Fetch
	//===============
	// Maximum time of a single fetch request
	timeout time.Duration
	// User agent that will be used in the request header. In raw string
	userAgent string
	// Response bodies are truncated after this many bytes
	maxBodyBytes int64

	//===============
	// Output
	//===============
	// Directory in which report files are written
	outputDir string
	// One of table, json, csv, markdown
	reportFormat string
	// Hash used to derive report file names from the seed URL
	hashAlgo hashutil.HashAlgo

	//===============
	// Server
	//===============
	listenAddr    string
	allowedOrigin string

	//===============
	// Logging
	//===============
	logLevel  string
	logFormat string
}

// configDTO is shared by the JSON and YAML decoders. Durations are strings
// accepted by time.ParseDuration.
type configDTO struct {
	MaxDepth               *int    `json:"maxDepth,omitempty" yaml:"maxDepth,omitempty"`
	MaxPages               *int    `json:"maxPages,omitempty" yaml:"maxPages,omitempty"`
	MaxFrontier            *int    `json:"maxFrontier,omitempty" yaml:"maxFrontier,omitempty"`
	CrawlTimeout           string  `json:"crawlTimeout,omitempty" yaml:"crawlTimeout,omitempty"`
	Concurrency            int     `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
	Jitter                 string  `json:"jitter,omitempty" yaml:"jitter,omitempty"`
	RandomSeed             int64   `json:"randomSeed,omitempty" yaml:"randomSeed,omitempty"`
	MaxAttempt             int     `json:"maxAttempt,omitempty" yaml:"maxAttempt,omitempty"`
	BackoffInitialDuration string  `json:"backoffInitialDuration,omitempty" yaml:"backoffInitialDuration,omitempty"`
	BackoffMultiplier      float64 `json:"backoffMultiplier,omitempty" yaml:"backoffMultiplier,omitempty"`
	BackoffMaxDuration     string  `json:"backoffMaxDuration,omitempty" yaml:"backoffMaxDuration,omitempty"`
	Timeout                string  `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	UserAgent              string  `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
	MaxBodyBytes           int64   `json:"maxBodyBytes,omitempty" yaml:"maxBodyBytes,omitempty"`
	OutputDir              string  `json:"outputDir,omitempty" yaml:"outputDir,omitempty"`
	ReportFormat           string  `json:"reportFormat,omitempty" yaml:"reportFormat,omitempty"`
	HashAlgo               string  `json:"hashAlgo,omitempty" yaml:"hashAlgo,omitempty"`
	ListenAddr             string  `json:"listenAddr,omitempty" yaml:"listenAddr,omitempty"`
	AllowedOrigin          string  `json:"allowedOrigin,omitempty" yaml:"allowedOrigin,omitempty"`
	LogLevel               string  `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
	LogFormat              string  `json:"logFormat,omitempty" yaml:"logFormat,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	cfg := WithDefault()

	// Limits may legitimately be 0, so only nil means "not provided"
	if dto.MaxDepth != nil {
		cfg.maxDepth = *dto.MaxDepth
	}
	if dto.MaxPages != nil {
		cfg.maxPages = *dto.MaxPages
	}
	if dto.MaxFrontier != nil {
		cfg.maxFrontier = *dto.MaxFrontier
	}

	durations := []struct {
		field  string
		raw    string
		target *time.Duration
	}{
		{"crawlTimeout", dto.CrawlTimeout, &cfg.crawlTimeout},
		{"jitter", dto.Jitter, &cfg.jitter},
		{"backoffInitialDuration", dto.BackoffInitialDuration, &cfg.backoffInitialDuration},
		{"backoffMaxDuration", dto.BackoffMaxDuration, &cfg.backoffMaxDuration},
		{"timeout", dto.Timeout, &cfg.timeout},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s: %s", ErrConfigParsingFail, d.field, err.Error())
		}
		*d.target = parsed
	}

	if dto.Concurrency != 0 {
		cfg.concurrency = dto.Concurrency
	}
	if dto.RandomSeed != 0 {
		cfg.randomSeed = dto.RandomSeed
	}
	if dto.MaxAttempt != 0 {
		cfg.maxAttempt = dto.MaxAttempt
	}
	if dto.BackoffMultiplier != 0 {
		cfg.backoffMultiplier = dto.BackoffMultiplier
	}
	if dto.UserAgent != "" {
		cfg.userAgent = dto.UserAgent
	}
	if dto.MaxBodyBytes != 0 {
		cfg.maxBodyBytes = dto.MaxBodyBytes
	}
	if dto.OutputDir != "" {
		cfg.outputDir = dto.OutputDir
	}
	if dto.ReportFormat != "" {
		cfg.reportFormat = dto.ReportFormat
	}
	if dto.HashAlgo != "" {
		cfg.hashAlgo = hashutil.HashAlgo(dto.HashAlgo)
	}
	if dto.ListenAddr != "" {
		cfg.listenAddr = dto.ListenAddr
	}
	if dto.AllowedOrigin != "" {
		cfg.allowedOrigin = dto.AllowedOrigin
	}
	if dto.LogLevel != "" {
		cfg.logLevel = dto.LogLevel
	}
	if dto.LogFormat != "" {
		cfg.logFormat = dto.LogFormat
	}

	return cfg.Build()
}

// WithConfigFile loads a JSON or YAML config file, chosen by extension.
func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}

	cfgDTO := configDTO{}
	switch fileutil.GetFileExtension(path) {
	case "json":
		err = json.Unmarshal(configContent, &cfgDTO)
	case "yaml", "yml":
		err = yaml.Unmarshal(configContent, &cfgDTO)
	default:
		return Config{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(cfgDTO)
}

// WithDefault creates a new Config with default values for every field.
func WithDefault() *Config {
	defaultConfig := Config{
		maxDepth:               2,
		maxPages:               500,
		maxFrontier:            10000,
		crawlTimeout:           5 * time.Minute,
		concurrency:            1,
		jitter:                 100 * time.Millisecond,
		randomSeed:             time.Now().UnixNano(),
		maxAttempt:             1,
		backoffInitialDuration: 200 * time.Millisecond,
		backoffMultiplier:      2.0,
		backoffMaxDuration:     5 * time.Second,
		timeout:                10 * time.Second,
		userAgent:              "Intelligent-Flow-Mapper/1.0",
		maxBodyBytes:           10 << 20,
		outputDir:              "output",
		reportFormat:           ReportFormatTable,
		hashAlgo:               hashutil.HashAlgoBLAKE3,
		listenAddr:             ":3000",
		allowedOrigin:          "http://localhost:5173",
		logLevel:               "info",
		logFormat:              metadata.LogFormatText,
	}
	return &defaultConfig
}

func (c *Config) WithMaxDepth(depth int) *Config {
	c.maxDepth = depth
	return c
}

func (c *Config) WithMaxPages(pages int) *Config {
	c.maxPages = pages
	return c
}

func (c *Config) WithMaxFrontier(size int) *Config {
	c.maxFrontier = size
	return c
}

func (c *Config) WithCrawlTimeout(timeout time.Duration) *Config {
	c.crawlTimeout = timeout
	return c
}

func (c *Config) WithConcurrency(concurrency int) *Config {
	c.concurrency = concurrency
	return c
}

func (c *Config) WithJitter(jitter time.Duration) *Config {
	c.jitter = jitter
	return c
}

func (c *Config) WithRandomSeed(seed int64) *Config {
	c.randomSeed = seed
	return c
}

func (c *Config) WithMaxAttempt(attempts int) *Config {
	c.maxAttempt = attempts
	return c
}

func (c *Config) WithBackoffInitialDuration(duration time.Duration) *Config {
	c.backoffInitialDuration = duration
	return c
}

func (c *Config) WithBackoffMultiplier(multiplier float64) *Config {
	c.backoffMultiplier = multiplier
	return c
}

func (c *Config) WithBackoffMaxDuration(duration time.Duration) *Config {
	c.backoffMaxDuration = duration
	return c
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.timeout = timeout
	return c
}

func (c *Config) WithUserAgent(agent string) *Config {
	c.userAgent = agent
	return c
}

func (c *Config) WithMaxBodyBytes(n int64) *Config {
	c.maxBodyBytes = n
	return c
}

func (c *Config) WithOutputDir(outputDir string) *Config {
	c.outputDir = outputDir
	return c
}

func (c *Config) WithReportFormat(format string) *Config {
	c.reportFormat = format
	return c
}

func (c *Config) WithHashAlgo(algo hashutil.HashAlgo) *Config {
	c.hashAlgo = algo
	return c
}

func (c *Config) WithListenAddr(addr string) *Config {
	c.listenAddr = addr
	return c
}

func (c *Config) WithAllowedOrigin(origin string) *Config {
	c.allowedOrigin = origin
	return c
}

func (c *Config) WithLogLevel(level string) *Config {
	c.logLevel = level
	return c
}

func (c *Config) WithLogFormat(format string) *Config {
	c.logFormat = format
	return c
}

// Builder returns a mutable copy of c so a loaded config can take overrides.
func (c Config) Builder() *Config {
	copied := c
	return &copied
}

func (c *Config) Build() (Config, error) {
	switch {
	case c.maxDepth < 0:
		return Config{}, fmt.Errorf("%w: maxDepth must not be negative", ErrInvalidConfig)
	case c.maxPages < 0:
		return Config{}, fmt.Errorf("%w: maxPages must not be negative", ErrInvalidConfig)
	case c.maxFrontier < 0:
		return Config{}, fmt.Errorf("%w: maxFrontier must not be negative", ErrInvalidConfig)
	case c.crawlTimeout < 0:
		return Config{}, fmt.Errorf("%w: crawlTimeout must not be negative", ErrInvalidConfig)
	case c.concurrency < 1:
		return Config{}, fmt.Errorf("%w: concurrency must be at least 1", ErrInvalidConfig)
	case c.maxAttempt < 1:
		return Config{}, fmt.Errorf("%w: maxAttempt must be at least 1", ErrInvalidConfig)
	case c.timeout <= 0:
		return Config{}, fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	case c.maxBodyBytes <= 0:
		return Config{}, fmt.Errorf("%w: maxBodyBytes must be positive", ErrInvalidConfig)
	}

	switch c.reportFormat {
	case ReportFormatTable, ReportFormatJSON, ReportFormatCSV, ReportFormatMarkdown:
	default:
		return Config{}, fmt.Errorf("%w: unknown report format %q", ErrInvalidConfig, c.reportFormat)
	}

	if _, err := hashutil.ParseHashAlgo(string(c.hashAlgo)); err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}

	switch c.logFormat {
	case metadata.LogFormatText, metadata.LogFormatJSON:
	default:
		return Config{}, fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.logFormat)
	}

	return *c, nil
}

func (c Config) MaxDepth() int {
	return c.maxDepth
}

func (c Config) MaxPages() int {
	return c.maxPages
}

func (c Config) MaxFrontier() int {
	return c.maxFrontier
}

func (c Config) CrawlTimeout() time.Duration {
	return c.crawlTimeout
}

func (c Config) Concurrency() int {
	return c.concurrency
}

func (c Config) Jitter() time.Duration {
	return c.jitter
}

func (c Config) RandomSeed() int64 {
	return c.randomSeed
}

func (c Config) MaxAttempt() int {
	return c.maxAttempt
}

func (c Config) BackoffInitialDuration() time.Duration {
	return c.backoffInitialDuration
}

func (c Config) BackoffMultiplier() float64 {
	return c.backoffMultiplier
}

func (c Config) BackoffMaxDuration() time.Duration {
	return c.backoffMaxDuration
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) MaxBodyBytes() int64 {
	return c.maxBodyBytes
}

func (c Config) OutputDir() string {
	return c.outputDir
}

func (c Config) ReportFormat() string {
	return c.reportFormat
}

func (c Config) HashAlgo() hashutil.HashAlgo {
	return c.hashAlgo
}

func (c Config) ListenAddr() string {
	return c.listenAddr
}

func (c Config) AllowedOrigin() string {
	return c.allowedOrigin
}

func (c Config) LogLevel() string {
	return c.logLevel
}

func (c Config) LogFormat() string {
	return c.logFormat
}
