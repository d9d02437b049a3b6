// Package parsing converts raw model responses into structured professor
// records. A response either conforms to the expected CSV shape or yields a
// ParseError; there is no best-effort partial parsing.
package parsing

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/sukarth/faculty-scraper/internal/types"
)

// expectedHeader is the required first CSV row, compared case-insensitively.
var expectedHeader = []string{"Name", "Title", "Notes"}

// ParseRecords parses a raw model response into professor records.
//
// The response must be CSV with a Name,Title,Notes header. A header-only
// response parses to zero records, which is success, not failure. Records
// with an empty name are dropped rather than trusted; the model instruction
// already asks for valid names, but the invariant is enforced here.
func ParseRecords(raw string) ([]types.ProfessorRecord, error) {
	cleaned := stripCodeFences(raw)
	if strings.TrimSpace(cleaned) == "" {
		return nil, &ParseError{Message: "response is empty"}
	}

	reader := csv.NewReader(strings.NewReader(cleaned))
	reader.FieldsPerRecord = len(expectedHeader)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, &ParseError{Message: "failed to read CSV header", Cause: err}
	}
	if !headerMatches(header) {
		return nil, &ParseError{Message: "unexpected CSV header: " + strings.Join(header, ",")}
	}

	records := make([]types.ProfessorRecord, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Message: "malformed CSV row", Cause: err}
		}

		rec := types.ProfessorRecord{
			Name:  strings.TrimSpace(row[0]),
			Title: strings.TrimSpace(row[1]),
			Notes: strings.TrimSpace(row[2]),
		}
		if rec.Name == "" {
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

// headerMatches compares a header row to the expected columns, ignoring case.
func headerMatches(header []string) bool {
	if len(header) != len(expectedHeader) {
		return false
	}
	for i, col := range header {
		if !strings.EqualFold(strings.TrimSpace(col), expectedHeader[i]) {
			return false
		}
	}
	return true
}

// stripCodeFences removes a surrounding markdown code block, which models
// sometimes add despite instructions not to.
func stripCodeFences(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	lines := strings.Split(text, "\n")
	if strings.HasPrefix(lines[0], "```") {
		lines = lines[1:]
	}
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
