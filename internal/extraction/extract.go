// Package extraction sends cleaned faculty-page text to the AI service with
// the fixed extraction instruction and returns the raw textual response.
package extraction

import (
	"context"
	"strings"

	"github.com/sukarth/faculty-scraper/internal/llm"
	"github.com/sukarth/faculty-scraper/internal/prompts"
)

// Extractor performs one model call per Extract invocation.
// It holds no state between calls beyond the shared client.
type Extractor struct {
	client llm.Client
}

// New creates an Extractor backed by the given model client.
func New(client llm.Client) *Extractor {
	return &Extractor{client: client}
}

// Extract sends cleanText plus the extraction instruction to the service and
// returns the raw response. Failures are classified as ServiceError.
func (x *Extractor) Extract(ctx context.Context, sourceURL, cleanText string) (string, error) {
	prompt, err := BuildPrompt(sourceURL, cleanText)
	if err != nil {
		return "", err
	}

	raw, err := x.client.GenerateContent(ctx, prompt)
	if err != nil {
		return "", Classify(err)
	}

	if strings.TrimSpace(raw) == "" {
		return "", &ServiceError{Kind: KindTransient, Message: "empty response from model"}
	}

	return raw, nil
}

// BuildPrompt fills the extraction instruction template with the source URL
// and page content. The instruction itself is a process-wide constant.
func BuildPrompt(sourceURL, content string) (string, error) {
	return prompts.ExtractProfessors(prompts.ExtractionInput{
		SourceURL: sourceURL,
		Content:   content,
	})
}
