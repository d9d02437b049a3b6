// Package pipeline drives each URL through fetch, extraction, and parsing
// with independent bounded retry loops, producing one terminal URLOutcome
// per URL.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sukarth/faculty-scraper/internal/extraction"
	"github.com/sukarth/faculty-scraper/internal/parsing"
	"github.com/sukarth/faculty-scraper/internal/types"
)

// Fetcher retrieves cleaned page text for a URL in a single attempt.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Extractor sends cleaned text to the model and returns the raw response in
// a single attempt. Together with the parser it forms one logical operation:
// a parse failure is retried by re-querying the model, not by re-parsing.
type Extractor interface {
	Extract(ctx context.Context, sourceURL, cleanText string) (string, error)
}

// Config holds the retry policy. The values are passed in at construction so
// tests can override them; there is no hidden global state.
type Config struct {
	// MaxRetries bounds attempts per stage. The counter is shared per stage,
	// not per error type.
	MaxRetries int
	// RetryDelay is the wait between attempts within a stage.
	RetryDelay time.Duration
}

// DefaultConfig matches the documented defaults: 3 attempts, 2s delay.
func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
	}
}

// FatalError wraps an error that must abort the whole run, such as a
// rejected API key.
type FatalError struct {
	Cause error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal pipeline error: %v", e.Cause)
}

func (e *FatalError) Unwrap() error {
	return e.Cause
}

// Orchestrator owns the per-URL retry state machine.
type Orchestrator struct {
	fetcher   Fetcher
	extractor Extractor
	cfg       Config
	logger    *zap.Logger
	sleep     func(time.Duration)
}

// New creates an Orchestrator. A nil logger disables attempt logging.
func New(fetcher Fetcher, extractor Extractor, cfg Config, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		fetcher:   fetcher,
		extractor: extractor,
		cfg:       cfg,
		logger:    logger,
		sleep:     time.Sleep,
	}
}

// ProcessURL drives one URL to a terminal outcome. The returned error is
// non-nil only for fatal conditions (authentication failure), which must
// abort the run without consuming further retry budget.
func (o *Orchestrator) ProcessURL(ctx context.Context, url string) (types.URLOutcome, error) {
	state := StatePending

	state = mustTransition(state, StateFetching)
	cleanText, ok := o.runFetchLoop(ctx, url)
	if !ok {
		mustTransition(state, StateFetchFailed)
		return types.URLOutcome{URL: url, Status: types.StatusFetchFailed}, nil
	}
	state = mustTransition(state, StateFetched)

	state = mustTransition(state, StateExtracting)
	records, lastRaw, err := o.runExtractParseLoop(ctx, url, cleanText)
	if err != nil {
		// Fatal abort; the URL never reaches a terminal state.
		return types.URLOutcome{URL: url}, err
	}
	if records == nil {
		mustTransition(state, StateParseFailed)
		return types.URLOutcome{URL: url, Status: types.StatusParseFailed, RawResponse: lastRaw}, nil
	}

	mustTransition(state, StateSuccess)
	return types.URLOutcome{URL: url, Status: types.StatusSuccess, Records: records}, nil
}

// runFetchLoop attempts the fetcher up to MaxRetries times. It returns the
// cleaned text and whether any attempt succeeded.
func (o *Orchestrator) runFetchLoop(ctx context.Context, url string) (string, bool) {
	for attempt := 1; attempt <= o.cfg.MaxRetries; attempt++ {
		o.logger.Info("fetching page",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", o.cfg.MaxRetries))

		text, err := o.fetcher.Fetch(ctx, url)
		if err == nil {
			o.logger.Info("fetched page",
				zap.String("url", url),
				zap.Int("chars", len(text)))
			return text, true
		}

		o.logger.Warn("fetch attempt failed",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt < o.cfg.MaxRetries {
			o.sleep(o.cfg.RetryDelay)
		}
	}
	return "", false
}

// runExtractParseLoop attempts {extract -> parse} up to MaxRetries times.
// A parse failure triggers a fresh model call on the next attempt. Fatal
// service errors return immediately without consuming the budget. On
// exhaustion it returns nil records plus the last raw response.
func (o *Orchestrator) runExtractParseLoop(ctx context.Context, url, cleanText string) ([]types.ProfessorRecord, string, error) {
	var lastRaw string

	for attempt := 1; attempt <= o.cfg.MaxRetries; attempt++ {
		o.logger.Info("querying model",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", o.cfg.MaxRetries))

		raw, err := o.extractor.Extract(ctx, url, cleanText)
		if err != nil {
			var svcErr *extraction.ServiceError
			if errors.As(err, &svcErr) && svcErr.Fatal() {
				o.logger.Error("authentication failed, aborting run",
					zap.String("url", url),
					zap.Error(err))
				return nil, lastRaw, &FatalError{Cause: err}
			}

			o.logger.Warn("model attempt failed",
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Error(err))

			if attempt < o.cfg.MaxRetries {
				o.sleep(o.cfg.RetryDelay)
			}
			continue
		}
		lastRaw = raw

		records, err := parsing.ParseRecords(raw)
		if err == nil {
			return records, lastRaw, nil
		}

		o.logger.Warn("response did not parse, re-querying model",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt < o.cfg.MaxRetries {
			o.sleep(o.cfg.RetryDelay)
		}
	}

	return nil, lastRaw, nil
}

// mustTransition applies a state change, panicking on an invalid edge.
// Invalid edges are programmer errors; the flow above is linear.
func mustTransition(from, to State) State {
	next, err := transition(from, to)
	if err != nil {
		panic(err)
	}
	return next
}
