package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sukarth/faculty-scraper/internal/extraction"
)

// mapFetcher serves fixed text per URL, erroring for unknown URLs.
type mapFetcher struct {
	pages map[string]string
}

func (m *mapFetcher) Fetch(_ context.Context, url string) (string, error) {
	if text, ok := m.pages[url]; ok {
		return text, nil
	}
	return "", errors.New("connection refused")
}

// mapExtractor serves a fixed raw response per URL.
type mapExtractor struct {
	responses map[string]string
}

func (m *mapExtractor) Extract(_ context.Context, url, _ string) (string, error) {
	return m.responses[url], nil
}

func TestRun_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	workbook := filepath.Join(dir, "professors.xlsx")

	urls := []string{
		"https://econ.example.edu/people",
		"https://cs.example.edu/faculty",
		"https://down.university.edu/staff",
		"https://cbs.dk/economics",
	}
	fetcher := &mapFetcher{pages: map[string]string{
		urls[0]: "econ page",
		urls[1]: "cs page",
		urls[3]: "cbs page",
	}}
	extractor := &mapExtractor{responses: map[string]string{
		urls[0]: "Name,Title,Notes\nAda Lovelace,Professor,\n",
		urls[1]: "Name,Title,Notes\nGrace Hopper,Associate Professor,\n",
		urls[3]: "complete gibberish, no csv here at all",
	}}

	summary, err := Run(context.Background(), fetcher, extractor, RunOptions{
		URLs:         urls,
		OutputDir:    dir,
		WorkbookPath: workbook,
		Retry:        Config{MaxRetries: 3, RetryDelay: time.Millisecond},
		Sleep:        func(time.Duration) {},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.URLsWithProfessors)
	assert.Equal(t, 1, summary.URLsFetchFailed)
	assert.Equal(t, 1, summary.URLsParseFailed)
	assert.Equal(t, 2, summary.TotalProfessors)

	// The two example.edu URLs share one merged sheet
	f, err := excelize.OpenFile(workbook)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.Equal(t, []string{"example"}, f.GetSheetList())

	rows, err := f.GetRows("example")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Ada Lovelace", rows[1][0])
	assert.Equal(t, "Grace Hopper", rows[2][0])

	// The parse failure left a raw-response artifact behind
	matches, err := filepath.Glob(filepath.Join(dir, "raw_response_*_cbs.txt"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	content, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(content), "complete gibberish")
}

// fatalExtractor rejects the credential on every call.
type fatalExtractor struct{ calls int }

func (f *fatalExtractor) Extract(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return "", &extraction.ServiceError{Kind: extraction.KindAuth, Message: "API key rejected"}
}

func TestRun_AuthFailureAbortsWithoutOutput(t *testing.T) {
	dir := t.TempDir()
	workbook := filepath.Join(dir, "professors.xlsx")

	fetcher := &mapFetcher{pages: map[string]string{
		"https://a.example.edu/people": "page a",
		"https://b.example.edu/people": "page b",
	}}
	extractor := &fatalExtractor{}

	_, err := Run(context.Background(), fetcher, extractor, RunOptions{
		URLs:         []string{"https://a.example.edu/people", "https://b.example.edu/people"},
		OutputDir:    dir,
		WorkbookPath: workbook,
		Retry:        Config{MaxRetries: 3, RetryDelay: time.Millisecond},
		Sleep:        func(time.Duration) {},
	})
	require.Error(t, err)

	var fatal *FatalError
	assert.ErrorAs(t, err, &fatal)

	// Aborted on the first URL; the second was never attempted and no
	// partial workbook was written.
	assert.Equal(t, 1, extractor.calls)
	assert.NoFileExists(t, workbook)
}
