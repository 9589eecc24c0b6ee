package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aretw0/protocompat/pkg/domain"
	"github.com/aretw0/protocompat/pkg/matrix"
)

// Format selects how the matrix sequence is rendered.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, "":
		return FormatText, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

// Write renders every round of a run in the given format.
func Write(w io.Writer, format Format, matrices []*matrix.Matrix) error {
	switch format {
	case FormatMarkdown:
		return WriteMarkdown(w, matrices)
	default:
		return WriteText(w, matrices)
	}
}

// WriteText writes each round as "For iterate = i" followed by an aligned table.
func WriteText(w io.Writer, matrices []*matrix.Matrix) error {
	for i, m := range matrices {
		if _, err := fmt.Fprintf(w, "For iterate = %d\n\n%s\n\n", i, Table(m)); err != nil {
			return err
		}
	}
	return nil
}

// Table renders a matrix with graph-1 states as the header and one line per graph-2 state.
// Numbers are right-aligned, labels of the rows left-aligned.
func Table(m *matrix.Matrix) string {
	rows, cols := m.Rows(), m.Cols()

	cells := make([][]string, len(rows))
	widths := make([]int, len(cols))
	for c, name := range cols {
		widths[c] = len(name)
	}
	labelWidth := 0
	for r, name := range rows {
		labelWidth = max(labelWidth, len(name))
		values, _ := m.Row(name)
		cells[r] = make([]string, len(values))
		for c, v := range values {
			cells[r][c] = FormatValue(v)
			widths[c] = max(widths[c], len(cells[r][c]))
		}
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", labelWidth))
	for c, name := range cols {
		fmt.Fprintf(&sb, "  %*s", widths[c], name)
	}
	for r, name := range rows {
		fmt.Fprintf(&sb, "\n%-*s", labelWidth, name)
		for c, cell := range cells[r] {
			fmt.Fprintf(&sb, "  %*s", widths[c], cell)
		}
	}
	return sb.String()
}

// FormatValue prints a score with at most 3 decimals and at least one.
func FormatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	return s
}

// WriteMarkdown writes each round as a "## Round i" section with a pipe table.
func WriteMarkdown(w io.Writer, matrices []*matrix.Matrix) error {
	var sb strings.Builder
	for i, m := range matrices {
		fmt.Fprintf(&sb, "## Round %d\n\n", i)
		cols := m.Cols()

		sb.WriteString("| |")
		for _, c := range cols {
			fmt.Fprintf(&sb, " %s |", escapeCell(c))
		}
		sb.WriteString("\n|---|")
		for range cols {
			sb.WriteString("---:|")
		}
		sb.WriteString("\n")

		for _, r := range m.Rows() {
			values, _ := m.Row(r)
			fmt.Fprintf(&sb, "| **%s** |", escapeCell(r))
			for _, v := range values {
				fmt.Fprintf(&sb, " %s |", FormatValue(v))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// WriteGenerationReport lists every state and outgoing transition of the graphs.
func WriteGenerationReport(w io.Writer, graphs ...*domain.Graph) error {
	var sb strings.Builder
	sb.WriteString("GRAPHS GENERATION REPORT\n")
	for _, g := range graphs {
		transitions := 0
		for _, s := range g.States() {
			transitions += s.NumOutgoing()
		}
		fmt.Fprintf(&sb, "\ngraph = %s (%d states, %d transitions)\n", g.Name(), g.Len(), transitions)
		for _, s := range g.States() {
			fmt.Fprintf(&sb, "  [%s] %s (in: %d, out: %d)\n", s.Kind(), s.Name(), s.NumIncoming(), s.NumOutgoing())
			for _, t := range s.Outgoing() {
				fmt.Fprintf(&sb, "      %s\n", t)
			}
		}
	}
	sb.WriteString("\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
