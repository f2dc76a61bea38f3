package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/cloudai-x/cwkit/pkg/report/styles"
)

// Format represents the output format type
type Format int

const (
	// FormatAuto automatically detects the appropriate format based on terminal capabilities
	FormatAuto Format = iota
	// FormatTerminal renders rich terminal output with colors and styling
	FormatTerminal
	// FormatText renders plain text output without any styling
	FormatText
)

// DetectFormat determines the appropriate output format based on
// environment and terminal capabilities.
func DetectFormat(output *os.File) Format {
	if os.Getenv("NO_COLOR") != "" {
		return FormatText
	}
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return FormatText
	}
	if termenv.NewOutput(output).ColorProfile() == termenv.Ascii {
		return FormatText
	}
	return FormatTerminal
}

// categoryRow pairs a display label with its count.
type categoryRow struct {
	label string
	count int
	unit  string
}

func (s Summary) rows() []categoryRow {
	return []categoryRow{
		{label: "agents", count: s.Agents, unit: "agent"},
		{label: "commands", count: s.Commands, unit: "command"},
		{label: "skills", count: s.Skills, unit: "skill"},
		{label: "hooks", count: s.Hooks, unit: "hook"},
	}
}

// Render writes the summary to w using the given format.
func Render(s Summary, w io.Writer, format Format) {
	if format == FormatAuto {
		if f, ok := w.(*os.File); ok {
			format = DetectFormat(f)
		} else {
			format = FormatText
		}
	}

	var b strings.Builder
	if format == FormatTerminal {
		b.WriteString(styles.Get("Heading").Render("Installed workflow components"))
	} else {
		b.WriteString("Installed workflow components")
	}
	b.WriteString("\n")

	for _, row := range s.rows() {
		if format == FormatTerminal {
			b.WriteString(fmt.Sprintf("  %s %s\n",
				styles.Get("Category").Render(row.label),
				styles.Get("Count").Render(fmt.Sprintf("%d", row.count))))
		} else {
			b.WriteString(fmt.Sprintf("  %-10s %d\n", row.label, row.count))
		}
	}

	fmt.Fprint(w, b.String())
}
