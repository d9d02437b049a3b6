package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/sukarth/faculty-scraper/internal/aggregate"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 60

// Printer handles formatted console output for the run.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintBanner prints the startup banner.
func (p *Printer) PrintBanner() {
	p.printBox("Faculty Scraper",
		"Extract professor data from university websites")
}

// PrintProgress prints the per-URL progress line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(index, total int, url string) {
	fmt.Fprintf(p.out, "\n[%d/%d] Processing: %s\n", index, total, url)
}

// PrintSummary prints the end-of-run summary block.
func (p *Printer) PrintSummary(summary aggregate.Summary, totalURLs int, workbookPath, logPath string) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("URLs with professors:    %d/%d\n", summary.URLsWithProfessors, totalURLs))
	sb.WriteString(fmt.Sprintf("URLs with no professors: %d/%d\n", summary.URLsNoProfessors, totalURLs))
	sb.WriteString(fmt.Sprintf("URLs with errors:        %d/%d\n", summary.Failures(), totalURLs))
	sb.WriteString(fmt.Sprintf("Professors extracted:    %d\n", summary.TotalProfessors))
	sb.WriteString("\n")
	if summary.URLsWithProfessors > 0 {
		sb.WriteString("Output: " + workbookPath + "\n")
	}
	sb.WriteString("Log:    " + logPath)

	p.printBox("PROCESSING COMPLETE", sb.String())
}
