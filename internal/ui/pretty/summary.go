package pretty

import (
	"fmt"
	"strings"

	"golang.org/x/term"

	"github.com/comradekingu/po4a/pkg/runner"
)

// defaultWidth is used when the output is not a terminal.
const defaultWidth = 80

// FormatSummary renders a one-block run summary.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var b strings.Builder

	b.WriteString(s.SummaryTitle.Render("Summary") + "\n")
	fmt.Fprintf(&b, "  %s %s\n", s.Dim.Render("documents:"),
		s.SummaryValue.Render(fmt.Sprintf("%d processed, %d failed (of %d)",
			stats.DocsProcessed, stats.DocsFailed, stats.DocsDiscovered)))
	fmt.Fprintf(&b, "  %s %s\n", s.Dim.Render("messages: "),
		s.SummaryValue.Render(fmt.Sprintf("%d", stats.Messages)))
	if stats.Warnings > 0 {
		fmt.Fprintf(&b, "  %s %s\n", s.Dim.Render("warnings: "),
			s.Warning.Render(fmt.Sprintf("%d", stats.Warnings)))
	}

	if stats.DocsFailed > 0 {
		b.WriteString(s.Failure.Render("Some documents could not be transformed.") + "\n")
	} else {
		b.WriteString(s.Success.Render("All documents transformed.") + "\n")
	}
	return b.String()
}

// TerminalWidth returns the width of the terminal attached to fd, or
// defaultWidth.
func TerminalWidth(fd int) int {
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		return w
	}
	return defaultWidth
}
