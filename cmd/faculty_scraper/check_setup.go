package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sukarth/faculty-scraper/internal/config"
	"github.com/sukarth/faculty-scraper/internal/llm"
	"github.com/sukarth/faculty-scraper/internal/prompts"
)

var checkSetupCmd = &cobra.Command{
	Use:   "check-setup",
	Short: "Verify configuration, input file, and API connectivity",
	Long:  "Check that the config file is valid, the URL list is present and non-empty, the output directory is writable, and the Gemini API accepts the configured key.",
	RunE:  runCheckSetup,
}

var (
	checkConfigPath string
	skipAPICheck    bool
)

func init() {
	checkSetupCmd.Flags().StringVarP(&checkConfigPath, "config", "c", "config.json", "Path to JSON configuration file")
	checkSetupCmd.Flags().BoolVar(&skipAPICheck, "skip-api", false, "Skip the live API connectivity check")

	rootCmd.AddCommand(checkSetupCmd)
}

func runCheckSetup(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	allPassed := true

	pass := func(msg string) { fmt.Fprintf(out, "  ✓ %s\n", msg) }
	fail := func(msg string) { fmt.Fprintf(out, "  ✗ %s\n", msg); allPassed = false }

	fmt.Fprintln(out, "Checking configuration...")
	cfg, err := config.LoadConfig(checkConfigPath)
	if err != nil {
		fail(err.Error())
	} else if err := cfg.Validate(); err != nil {
		fail(err.Error())
	} else {
		pass(checkConfigPath + " is valid")
	}

	if cfg != nil {
		fmt.Fprintln(out, "\nChecking input file...")
		urls, err := config.ReadURLList(cfg.InputFile)
		switch {
		case err != nil:
			fail(err.Error())
		case len(urls) == 0:
			fail(cfg.InputFile + " is empty")
		default:
			pass(fmt.Sprintf("found %d URLs in %s", len(urls), cfg.InputFile))
		}

		fmt.Fprintln(out, "\nChecking output directory...")
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			fail(fmt.Sprintf("cannot create output directory %s: %v", cfg.OutputDir, err))
		} else {
			pass("output directory " + cfg.OutputDir + " is writable")
		}
	}

	if allPassed && !skipAPICheck && cfg != nil {
		fmt.Fprintln(out, "\nChecking API connection...")
		client, err := llm.NewGeminiClient(cmd.Context(), nil, cfg.GeminiAPIKey)
		if err != nil {
			fail(fmt.Sprintf("failed to create client: %v", err))
		} else {
			defer func() { _ = client.Close() }()
			ping, err := prompts.Ping()
			if err != nil {
				fail(err.Error())
			} else {
				resp, err := client.GenerateContent(cmd.Context(), ping)
				switch {
				case err != nil:
					fail(fmt.Sprintf("API request failed: %v", err))
				case strings.TrimSpace(resp) == "":
					fail("API responded with empty content")
				default:
					pass("API is responding correctly")
				}
			}
		}
	}

	fmt.Fprintln(out)
	if !allPassed {
		return fmt.Errorf("setup verification failed")
	}
	fmt.Fprintln(out, "All checks passed. Run the scraper with: faculty_scraper scrape")
	return nil
}
