package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rohmanhakim/flowmap/internal/config"
	"github.com/rohmanhakim/flowmap/pkg/hashutil"
	"github.com/spf13/cobra"
)

var (
	cfgFile       string
	logLevel      string
	logFormat     string
	seedURL       string
	maxDepth      int
	username      string
	password      string
	concurrency   int
	maxPages      int
	maxFrontier   int
	maxAttempt    int
	timeout       time.Duration
	crawlTimeout  time.Duration
	userAgent     string
	randomSeed    int64
	reportFormat  string
	outputDir     string
	hashAlgo      string
	listenAddr    string
	allowedOrigin string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "flowmap",
	Short: "Map the navigation flow of a website.",
	Long: `flowmap crawls a website breadth-first from a seed URL, stays on the
seed's hostname, and records every page with its title, depth and outgoing
links.

Links that appear on most pages (headers, footers, sidebars) are detected as
global navigation and removed, leaving the links that describe how a user
actually moves through the site.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path, JSON or YAML (default: $XDG_CONFIG_HOME/flowmap/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json")

	rootCmd.AddCommand(crawlCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// InitConfigWithError loads the config file when one is given or found, then
// applies every flag that was set on top of it.
func InitConfigWithError() (config.Config, error) {
	configBuilder := config.WithDefault()

	if path := config.FindConfigFile(cfgFile); path != "" {
		cfg, err := config.WithConfigFile(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("error initializing config from file: %w", err)
		}
		configBuilder = cfg.Builder()
	} else if cfgFile != "" {
		return config.Config{}, fmt.Errorf("%w: %s", config.ErrFileDoesNotExist, cfgFile)
	}

	// Override with CLI flag values where provided
	if maxDepth >= 0 {
		configBuilder = configBuilder.WithMaxDepth(maxDepth)
	}

	if concurrency > 0 {
		configBuilder = configBuilder.WithConcurrency(concurrency)
	}

	if maxPages >= 0 {
		configBuilder = configBuilder.WithMaxPages(maxPages)
	}

	if maxFrontier >= 0 {
		configBuilder = configBuilder.WithMaxFrontier(maxFrontier)
	}

	if maxAttempt > 0 {
		configBuilder = configBuilder.WithMaxAttempt(maxAttempt)
	}

	if timeout > 0 {
		configBuilder = configBuilder.WithTimeout(timeout)
	}

	if crawlTimeout > 0 {
		configBuilder = configBuilder.WithCrawlTimeout(crawlTimeout)
	}

	if userAgent != "" {
		configBuilder = configBuilder.WithUserAgent(userAgent)
	}

	if randomSeed != 0 {
		configBuilder = configBuilder.WithRandomSeed(randomSeed)
	}

	if reportFormat != "" {
		configBuilder = configBuilder.WithReportFormat(reportFormat)
	}

	if outputDir != "" {
		configBuilder = configBuilder.WithOutputDir(outputDir)
	}

	if hashAlgo != "" {
		configBuilder = configBuilder.WithHashAlgo(hashutil.HashAlgo(hashAlgo))
	}

	if listenAddr != "" {
		configBuilder = configBuilder.WithListenAddr(listenAddr)
	}

	if allowedOrigin != "" {
		configBuilder = configBuilder.WithAllowedOrigin(allowedOrigin)
	}

	if logLevel != "" {
		configBuilder = configBuilder.WithLogLevel(logLevel)
	}

	if logFormat != "" {
		configBuilder = configBuilder.WithLogFormat(logFormat)
	}

	return configBuilder.Build()
}

func ResetFlags() {
	cfgFile = ""
	logLevel = ""
	logFormat = ""
	seedURL = ""
	maxDepth = -1
	username = ""
	password = ""
	concurrency = 0
	maxPages = -1
	maxFrontier = -1
	maxAttempt = 0
	timeout = 0
	crawlTimeout = 0
	userAgent = ""
	randomSeed = 0
	reportFormat = ""
	outputDir = ""
	hashAlgo = ""
	listenAddr = ""
	allowedOrigin = ""
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetLogLevelForTest(level string) {
	logLevel = level
}

func SetMaxDepthForTest(depth int) {
	maxDepth = depth
}

func SetConcurrencyForTest(conc int) {
	concurrency = conc
}

func SetMaxPagesForTest(pages int) {
	maxPages = pages
}

func SetMaxFrontierForTest(size int) {
	maxFrontier = size
}

func SetTimeoutForTest(t time.Duration) {
	timeout = t
}

func SetCrawlTimeoutForTest(t time.Duration) {
	crawlTimeout = t
}

func SetUserAgentForTest(agent string) {
	userAgent = agent
}

func SetReportFormatForTest(format string) {
	reportFormat = format
}

func SetOutputDirForTest(dir string) {
	outputDir = dir
}

func SetHashAlgoForTest(algo string) {
	hashAlgo = algo
}

func SetListenAddrForTest(addr string) {
	listenAddr = addr
}

func SetAllowedOriginForTest(origin string) {
	allowedOrigin = origin
}
