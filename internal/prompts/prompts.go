// Package prompts holds the Gemini prompt templates embedded into the binary.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"text/template"
)

//go:embed extraction.json
var rawPrompts []byte

var (
	parseOnce sync.Once
	templates map[string]*template.Template
	parseErr  error
)

func parseAll() {
	var texts map[string]string
	if err := json.Unmarshal(rawPrompts, &texts); err != nil {
		parseErr = fmt.Errorf("failed to parse embedded prompts: %w", err)
		return
	}

	templates = make(map[string]*template.Template, len(texts))
	for key, text := range texts {
		tmpl, err := template.New(key).Parse(text)
		if err != nil {
			parseErr = fmt.Errorf("failed to parse prompt %q: %w", key, err)
			return
		}
		templates[key] = tmpl
	}
}

func render(key string, data any) (string, error) {
	parseOnce.Do(parseAll)
	if parseErr != nil {
		return "", parseErr
	}

	tmpl, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt %q not found", key)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %q: %w", key, err)
	}
	return sb.String(), nil
}

// ExtractionInput carries the per-page substitutions for the
// professor-extraction prompt.
type ExtractionInput struct {
	SourceURL string
	Content   string
}

// ExtractProfessors renders the faculty extraction prompt for one page.
func ExtractProfessors(in ExtractionInput) (string, error) {
	return render("extract-professors", in)
}

// Ping returns the trivial connectivity-check prompt used by check-setup.
func Ping() (string, error) {
	return render("ping", nil)
}
