// Package aggregate accumulates per-URL outcomes into per-institution record
// sets and persists raw model responses when parsing was unrecoverable.
package aggregate

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sukarth/faculty-scraper/internal/types"
)

// sheetNameMax is the Excel sheet name length limit.
const sheetNameMax = 31

// illegalSheetChars matches characters Excel forbids in sheet names.
var illegalSheetChars = regexp.MustCompile(`[\\/*?\[\]:]+`)

// Summary counts outcomes across a whole run.
type Summary struct {
	URLsWithProfessors int
	URLsNoProfessors   int
	URLsFetchFailed    int
	URLsParseFailed    int
	TotalProfessors    int
}

// Failures returns the number of URLs that ended in a failure state.
func (s Summary) Failures() int {
	return s.URLsFetchFailed + s.URLsParseFailed
}

// Aggregator groups successfully parsed records by institution key.
// It is built for single-writer use; Record must be called once per URL in
// input order, and Finalize only after every URL has a terminal outcome.
type Aggregator struct {
	outputDir string
	logger    *zap.Logger

	keys      []string
	sheets    map[string][]types.ProfessorRecord
	summary   Summary
	finalized bool
}

// New creates an Aggregator that writes fallback artifacts under outputDir.
func New(outputDir string, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		outputDir: outputDir,
		logger:    logger,
		sheets:    make(map[string][]types.ProfessorRecord),
	}
}

// Record consumes one terminal outcome. Success outcomes append records to
// the institution sheet; parse failures persist the raw response artifact;
// fetch failures record nothing beyond the summary count.
func (a *Aggregator) Record(rawURL string, outcome types.URLOutcome) error {
	if a.finalized {
		return fmt.Errorf("aggregator already finalized")
	}

	switch outcome.Status {
	case types.StatusSuccess:
		if len(outcome.Records) == 0 {
			a.summary.URLsNoProfessors++
			return nil
		}
		key := InstitutionKey(rawURL)
		if _, seen := a.sheets[key]; !seen {
			a.keys = append(a.keys, key)
		}
		a.sheets[key] = append(a.sheets[key], outcome.Records...)
		a.summary.URLsWithProfessors++
		a.summary.TotalProfessors += len(outcome.Records)

	case types.StatusFetchFailed:
		a.summary.URLsFetchFailed++

	case types.StatusParseFailed:
		a.summary.URLsParseFailed++
		path, err := a.writeRawArtifact(rawURL, outcome.RawResponse)
		if err != nil {
			return fmt.Errorf("failed to persist raw response for %s: %w", rawURL, err)
		}
		a.logger.Info("saved raw response artifact",
			zap.String("url", rawURL),
			zap.String("path", path))
	}

	return nil
}

// Keys returns the institution keys in first-seen order.
func (a *Aggregator) Keys() []string {
	out := make([]string, len(a.keys))
	copy(out, a.keys)
	return out
}

// Sheet returns the accumulated records for one institution key.
func (a *Aggregator) Sheet(key string) []types.ProfessorRecord {
	return a.sheets[key]
}

// Summary returns the running outcome counts.
func (a *Aggregator) Summary() Summary {
	return a.summary
}

// Finalize marks the aggregation complete and returns the full mapping.
// It is idempotent; repeated calls return the same mapping.
func (a *Aggregator) Finalize() map[string][]types.ProfessorRecord {
	a.finalized = true
	return a.sheets
}

// writeRawArtifact saves a raw model response for manual recovery, keyed by
// timestamp and institution so concurrent-second failures do not collide.
func (a *Aggregator) writeRawArtifact(rawURL, response string) (string, error) {
	if err := os.MkdirAll(a.outputDir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("raw_response_%s_%s.txt", timestamp, InstitutionKey(rawURL))
	path := filepath.Join(a.outputDir, name)

	var sb strings.Builder
	sb.WriteString("Source URL: " + rawURL + "\n")
	sb.WriteString("Timestamp: " + timestamp + "\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")
	sb.WriteString(response)

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// InstitutionKey derives a short, human-readable sheet label from a URL.
// It takes the organization label of the host (the label left of the public
// suffix), so econ.example.edu and www.example.edu both map to "example".
// The result is safe to use as an Excel sheet name.
func InstitutionKey(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return sanitizeSheetName(rawURL)
	}

	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")
	host = strings.TrimPrefix(host, "www4.")

	if net.ParseIP(host) != nil {
		return sanitizeSheetName(host)
	}

	parts := strings.Split(host, ".")
	name := host
	if len(parts) >= 2 {
		name = parts[len(parts)-2]
	}
	return sanitizeSheetName(name)
}

// sanitizeSheetName strips Excel-illegal characters and caps the length.
func sanitizeSheetName(name string) string {
	name = illegalSheetChars.ReplaceAllString(name, "")
	if len(name) > sheetNameMax {
		name = name[:sheetNameMax]
	}
	return name
}
