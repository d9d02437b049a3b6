package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sukarth/faculty-scraper/internal/config"
	"github.com/sukarth/faculty-scraper/internal/extraction"
	"github.com/sukarth/faculty-scraper/internal/fetch"
	"github.com/sukarth/faculty-scraper/internal/llm"
	"github.com/sukarth/faculty-scraper/internal/observability"
	"github.com/sukarth/faculty-scraper/internal/pipeline"
	"github.com/sukarth/faculty-scraper/internal/report"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Process the URL list and write the professor workbook",
	Long:  "Read the newline-delimited URL list, drive each URL through fetch, extraction, and parsing with bounded retries, and write one workbook sheet per institution.",
	RunE:  runScrape,
}

var (
	configPath string
	inputFile  string
	outputDir  string
	logDir     string
)

func init() {
	scrapeCmd.Flags().StringVarP(&configPath, "config", "c", "config.json", "Path to JSON configuration file")
	scrapeCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Path to URL list (overrides config)")
	scrapeCmd.Flags().StringVarP(&outputDir, "out", "o", "", "Output directory (overrides config)")
	scrapeCmd.Flags().StringVar(&logDir, "log-dir", "logs", "Directory for run logs")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if inputFile != "" {
		cfg.InputFile = inputFile
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Fatal before any URL is processed if the input list is unreadable
	urls, err := config.ReadURLList(cfg.InputFile)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs found in %s", cfg.InputFile)
	}

	now := time.Now()
	logger, logPath, err := observability.NewLogger(logDir, now)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintBanner()

	ctx := cmd.Context()
	client, err := llm.NewGeminiClient(ctx, nil, cfg.GeminiAPIKey)
	if err != nil {
		return fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	defer func() { _ = client.Close() }()

	fetcher := fetch.NewFetcher(&fetch.Options{
		Timeout:      time.Duration(cfg.FetchTimeoutSeconds) * time.Second,
		UserAgent:    fetch.DefaultUserAgent,
		MaxTextChars: cfg.MaxContentChars,
	})

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
	}
	workbookPath := filepath.Join(cfg.OutputDir, report.WorkbookFilename(now))

	summary, err := pipeline.Run(ctx, fetcher, extraction.New(client), pipeline.RunOptions{
		URLs:         urls,
		OutputDir:    cfg.OutputDir,
		WorkbookPath: workbookPath,
		Retry: pipeline.Config{
			MaxRetries: cfg.MaxRetries,
			RetryDelay: time.Duration(cfg.RetryDelaySeconds) * time.Second,
		},
		Logger:  logger,
		Printer: printer,
	})
	// A fatal abort still reports whatever was completed before it
	printer.PrintSummary(summary, len(urls), workbookPath, logPath)
	return err
}
