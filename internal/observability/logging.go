// Package observability provides the run logger and formatted console
// output for the scraper.
package observability

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sukarth/faculty-scraper/internal/types"
)

// Fixed marker tokens. Every per-URL outcome log entry starts with one of
// these, so failure and zero-result counts can be derived by scanning the
// log stream.
const (
	MarkerSuccess = "SUCCESS"
	MarkerEmpty   = "EMPTY"
	MarkerFailed  = "FAILED"
)

// NewLogger builds a logger that tees human-readable output to stderr and to
// a timestamped, append-only log file under logDir. It returns the logger
// and the log file path.
func NewLogger(logDir string, now time.Time) (*zap.Logger, string, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, "", fmt.Errorf("failed to create log directory %s: %w", logDir, err)
	}

	path := filepath.Join(logDir, fmt.Sprintf("scraper_%s.log", now.Format("20060102_150405")))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(encCfg)

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.AddSync(file), zapcore.InfoLevel),
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), zapcore.InfoLevel),
	)

	return zap.New(core), path, nil
}

// LogOutcome writes the single per-URL outcome entry, tagged with the
// marker token for its class.
func LogOutcome(logger *zap.Logger, outcome types.URLOutcome) {
	url := zap.String("url", outcome.URL)

	switch outcome.Status {
	case types.StatusSuccess:
		if len(outcome.Records) == 0 {
			logger.Info(MarkerEmpty+": no professors found", url)
			return
		}
		logger.Info(MarkerSuccess+": professors extracted", url,
			zap.Int("professors", len(outcome.Records)))
	case types.StatusFetchFailed:
		logger.Error(MarkerFailed+": could not fetch page", url)
	case types.StatusParseFailed:
		logger.Error(MarkerFailed+": could not parse model response", url)
	}
}
