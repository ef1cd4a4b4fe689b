package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rodaine/table"
	"github.com/rohmanhakim/flowmap/internal/config"
	"github.com/rohmanhakim/flowmap/internal/flowmap"
	"github.com/rohmanhakim/flowmap/internal/metadata"
	"github.com/rohmanhakim/flowmap/internal/scheduler"
	"github.com/rohmanhakim/flowmap/internal/storage"
	"github.com/rohmanhakim/flowmap/pkg/types"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl a site and print or write its flow map.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedURL == "" {
			return fmt.Errorf("--seed-url is required")
		}

		cfg, err := InitConfigWithError()
		if err != nil {
			return err
		}
		logger, err := metadata.NewLogger(cfg.LogLevel(), cfg.LogFormat(), os.Stderr)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return RunCrawl(ctx, cfg, logger, cmd.OutOrStdout(), crawlRequest(cfg))
	},
}

func init() {
	crawlCmd.Flags().StringVar(&seedURL, "seed-url", "", "absolute URL to start crawling from")
	crawlCmd.Flags().IntVar(&maxDepth, "max-depth", -1, "maximum link depth from the seed URL (-1 uses the configured default)")
	crawlCmd.Flags().StringVar(&username, "username", "", "basic auth username, sent only together with --password")
	crawlCmd.Flags().StringVar(&password, "password", "", "basic auth password")
	crawlCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent fetch workers")
	crawlCmd.Flags().IntVar(&maxPages, "max-pages", -1, "maximum number of pages to fetch, 0 for unlimited (-1 uses the configured default)")
	crawlCmd.Flags().IntVar(&maxFrontier, "max-frontier", -1, "maximum number of distinct URLs waiting in the queue, 0 for unlimited (-1 uses the configured default)")
	crawlCmd.Flags().IntVar(&maxAttempt, "max-attempt", 0, "fetch attempts per URL for retryable failures")
	crawlCmd.Flags().DurationVar(&timeout, "timeout", 0, "timeout for a single HTTP request")
	crawlCmd.Flags().DurationVar(&crawlTimeout, "crawl-timeout", 0, "deadline for the whole crawl")
	crawlCmd.Flags().StringVar(&userAgent, "user-agent", "", "user agent string for HTTP requests")
	crawlCmd.Flags().Int64Var(&randomSeed, "random-seed", 0, "seed for retry jitter (0 for current time)")
	crawlCmd.Flags().StringVar(&reportFormat, "format", "", "output format: table, json, csv or markdown")
	crawlCmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for json, csv and markdown reports")
	crawlCmd.Flags().StringVar(&hashAlgo, "hash-algo", "", "hash used for report file names: sha256 or blake3")
}

func crawlRequest(cfg config.Config) types.CrawlRequest {
	req := types.CrawlRequest{
		SeedURL:  seedURL,
		MaxDepth: cfg.MaxDepth(),
	}
	if username != "" || password != "" {
		req.Credentials = &types.Credentials{Username: username, Password: password}
	}
	return req
}

// RunCrawl maps req and prints a table to out, or writes a report file and
// prints its path, depending on cfg.ReportFormat().
func RunCrawl(
	ctx context.Context,
	cfg config.Config,
	logger *logrus.Logger,
	out io.Writer,
	req types.CrawlRequest,
) error {
	recorder := metadata.NewRecorder("cli", logger)
	mapper := flowmap.NewMapper(scheduler.NewScheduler(cfg, recorder))

	result, err := mapper.Map(ctx, req)
	if err != nil {
		var seedErr *scheduler.InvalidSeedError
		if errors.As(err, &seedErr) {
			return fmt.Errorf("invalid or malformed URL provided: %w", err)
		}
		return fmt.Errorf("mapping failed: %w", err)
	}

	if cfg.ReportFormat() == config.ReportFormatTable {
		PrintTable(out, result)
		return nil
	}

	sink := storage.NewLocalSink(recorder.WithCrawlID(result.CrawlID))
	writeResult, writeErr := sink.Write(cfg.OutputDir(), cfg.ReportFormat(), result, cfg.HashAlgo())
	if writeErr != nil {
		return writeErr
	}
	fmt.Fprintf(out, "Report written to %s\n", writeResult.Path())
	return nil
}

// PrintTable writes one row per page followed by a short summary.
func PrintTable(out io.Writer, result types.MapResult) {
	tbl := table.New("Depth", "Title", "URL", "Links").WithWriter(out)
	for _, page := range result.Pages {
		tbl.AddRow(page.Depth, page.Title, page.URL, len(page.Links))
	}
	tbl.Print()

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Pages: %d\n", result.TotalPages)
	if len(result.GlobalNav) > 0 {
		fmt.Fprintf(out, "Global navigation: %s\n", strings.Join(result.GlobalNav, ", "))
	}
	if result.Stats.Failures > 0 {
		fmt.Fprintf(out, "Failures: %d (auth required: %d)\n", result.Stats.Failures, result.Stats.AuthFailures)
	}
	if result.Stats.Truncated {
		fmt.Fprintln(out, "Crawl truncated by a limit, results are partial")
	}
}
