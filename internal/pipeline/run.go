package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sukarth/faculty-scraper/internal/aggregate"
	"github.com/sukarth/faculty-scraper/internal/observability"
	"github.com/sukarth/faculty-scraper/internal/report"
	"github.com/sukarth/faculty-scraper/internal/types"
)

// DefaultPolitenessDelay is the pause between URLs, out of courtesy to the
// scraped sites.
const DefaultPolitenessDelay = time.Second

// RunOptions holds configuration for a full scrape run.
type RunOptions struct {
	URLs            []string
	OutputDir       string
	WorkbookPath    string
	Retry           Config
	PolitenessDelay time.Duration
	Logger          *zap.Logger
	Printer         *observability.Printer

	// Sleep is injectable for tests; nil means time.Sleep.
	Sleep func(time.Duration)
}

// Run processes every URL sequentially to a terminal outcome, aggregates the
// results, and saves the workbook incrementally after each successful URL.
// It returns early only on a fatal error (rejected credential).
func Run(ctx context.Context, fetcher Fetcher, extractor Extractor, opts RunOptions) (aggregate.Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("run_id", uuid.NewString()))
	sleep := opts.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	delay := opts.PolitenessDelay
	if delay == 0 {
		delay = DefaultPolitenessDelay
	}

	agg := aggregate.New(opts.OutputDir, logger)
	orch := New(fetcher, extractor, opts.Retry, logger)
	orch.sleep = sleep

	logger.Info("starting run", zap.Int("urls", len(opts.URLs)))

	for i, url := range opts.URLs {
		if opts.Printer != nil {
			opts.Printer.PrintProgress(i+1, len(opts.URLs), url)
		}

		outcome, err := orch.ProcessURL(ctx, url)
		if err != nil {
			return agg.Summary(), err
		}

		observability.LogOutcome(logger, outcome)
		if err := agg.Record(url, outcome); err != nil {
			logger.Error("failed to record outcome", zap.String("url", url), zap.Error(err))
		}

		// Save after every URL that produced records, so a crash later in
		// the run loses nothing already extracted.
		if outcome.Status == types.StatusSuccess && len(outcome.Records) > 0 {
			if err := report.WriteWorkbook(opts.WorkbookPath, agg.Keys(), currentSheets(agg)); err != nil {
				logger.Error("failed to save workbook", zap.Error(err))
			} else {
				logger.Info("saved workbook", zap.String("path", opts.WorkbookPath))
			}
		}

		if i < len(opts.URLs)-1 {
			sleep(delay)
		}
	}

	agg.Finalize()

	summary := agg.Summary()
	logger.Info("run complete",
		zap.Int("urls_with_professors", summary.URLsWithProfessors),
		zap.Int("urls_no_professors", summary.URLsNoProfessors),
		zap.Int("urls_failed", summary.Failures()),
		zap.Int("total_professors", summary.TotalProfessors))

	return summary, nil
}

// currentSheets snapshots the aggregator's mapping for an incremental save.
func currentSheets(agg *aggregate.Aggregator) map[string][]types.ProfessorRecord {
	sheets := make(map[string][]types.ProfessorRecord)
	for _, key := range agg.Keys() {
		sheets[key] = agg.Sheet(key)
	}
	return sheets
}
