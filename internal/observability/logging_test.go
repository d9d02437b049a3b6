package observability

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sukarth/faculty-scraper/internal/aggregate"
	"github.com/sukarth/faculty-scraper/internal/types"
)

func TestNewLogger_WritesTimestampedFile(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

	logger, path, err := NewLogger(dir, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "scraper_20260828_090000.log"), path)

	logger.Info("hello from the run")
	// Sync can fail on the stderr sink; the file core still flushes
	_ = logger.Sync()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "hello from the run")
}

func TestLogOutcome_Markers(t *testing.T) {
	tests := []struct {
		name       string
		outcome    types.URLOutcome
		wantMarker string
	}{
		{
			name: "success with records",
			outcome: types.URLOutcome{
				URL:     "https://econ.example.edu/people",
				Status:  types.StatusSuccess,
				Records: []types.ProfessorRecord{{Name: "Ada Lovelace"}},
			},
			wantMarker: MarkerSuccess,
		},
		{
			name: "success with zero records",
			outcome: types.URLOutcome{
				URL:     "https://econ.example.edu/people",
				Status:  types.StatusSuccess,
				Records: []types.ProfessorRecord{},
			},
			wantMarker: MarkerEmpty,
		},
		{
			name:       "fetch failure",
			outcome:    types.URLOutcome{URL: "https://econ.example.edu/people", Status: types.StatusFetchFailed},
			wantMarker: MarkerFailed,
		},
		{
			name:       "parse failure",
			outcome:    types.URLOutcome{URL: "https://econ.example.edu/people", Status: types.StatusParseFailed},
			wantMarker: MarkerFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.InfoLevel)
			LogOutcome(zap.New(core), tt.outcome)

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.True(t, strings.HasPrefix(entry.Message, tt.wantMarker),
				"message %q should start with marker %q", entry.Message, tt.wantMarker)
		})
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSummary(aggregate.Summary{
		URLsWithProfessors: 2,
		URLsNoProfessors:   1,
		URLsParseFailed:    1,
		TotalProfessors:    17,
	}, 4, "professors_x.xlsx", "logs/scraper_x.log")

	out := buf.String()
	assert.Contains(t, out, "URLs with professors:    2/4")
	assert.Contains(t, out, "URLs with no professors: 1/4")
	assert.Contains(t, out, "URLs with errors:        1/4")
	assert.Contains(t, out, "Professors extracted:    17")
}
