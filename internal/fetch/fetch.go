// Package fetch retrieves faculty web pages and reduces them to cleaned text
// suitable for model input. It performs exactly one network attempt per call;
// retry policy belongs to the pipeline.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
// Faculty pages behind naive bot filters respond better to a browser UA.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// DefaultMaxTextChars bounds the cleaned text passed downstream, which in
// turn bounds the size of the model request.
const DefaultMaxTextChars = 50000

// Error represents a failed page fetch.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures a Fetcher. Zero-valued fields fall back to the package
// defaults.
type Options struct {
	Timeout      time.Duration
	UserAgent    string
	MaxTextChars int
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:      DefaultTimeout,
		UserAgent:    DefaultUserAgent,
		MaxTextChars: DefaultMaxTextChars,
	}
}

// Fetcher performs single-attempt page fetches. The underlying HTTP client
// is reused across calls.
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxChars  int
}

// NewFetcher creates a Fetcher. Nil options mean defaults.
func NewFetcher(opts *Options) *Fetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		maxChars:  opts.MaxTextChars,
	}
}

// Fetch retrieves one faculty page and returns its cleaned, truncated text.
// This is the single-attempt operation the pipeline retries on failure.
func (f *Fetcher) Fetch(ctx context.Context, urlStr string) (string, error) {
	html, err := f.get(ctx, urlStr)
	if err != nil {
		return "", err
	}

	text, err := ExtractPageText(html)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to extract text", Cause: err}
	}

	return Truncate(text, f.maxChars), nil
}

// get performs the HTTP GET and returns the raw HTML. Any non-2xx status is
// a fetch failure.
func (f *Fetcher) get(ctx context.Context, urlStr string) (string, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", &Error{URL: urlStr, Message: fmt.Sprintf("unsupported scheme %q", parsed.Scheme)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	return string(body), nil
}

// ExtractPageText parses HTML and returns the page body text with markup,
// scripts, styles, and chrome elements removed and whitespace collapsed.
func ExtractPageText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	// Remove elements that never contain faculty listings
	doc.Find("script, style, noscript, nav, footer, header").Remove()

	return cleanWhitespace(doc.Find("body").Text()), nil
}

// Truncate caps text at maxChars. Zero or negative means unlimited.
func Truncate(text string, maxChars int) string {
	if maxChars <= 0 || len(text) <= maxChars {
		return text
	}
	return text[:maxChars]
}

// cleanWhitespace collapses runs of spaces within each line and drops empty
// lines.
func cleanWhitespace(text string) string {
	var cleaned []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
