// Package render writes engine results to a terminal as styled tables or
// as JSON.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Format selects the output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat accepts "table" or "json", ignoring case.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatTable, "":
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table or json)", s)
	}
}

// maxNameWidth caps the processor name column.
const maxNameWidth = 44

type styles struct {
	title  lipgloss.Style
	header lipgloss.Style
	dim    lipgloss.Style
	good   lipgloss.Style
	badge  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, color bool) styles {
	if !color {
		plain := r.NewStyle()
		return styles{title: plain, header: plain, dim: plain, good: plain, badge: plain}
	}
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("62")),
		header: r.NewStyle().Bold(true),
		dim:    r.NewStyle().Foreground(lipgloss.Color("240")),
		good:   r.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		badge:  r.NewStyle().Foreground(lipgloss.Color("205")),
	}
}

// Renderer writes results to one writer in one format.
type Renderer struct {
	w       io.Writer
	format  Format
	styles  styles
	printer *message.Printer
}

// New returns a Renderer. Color only affects the table format.
func New(w io.Writer, format Format, color bool) *Renderer {
	return &Renderer{
		w:       w,
		format:  format,
		styles:  newStyles(lipgloss.NewRenderer(w), color),
		printer: message.NewPrinter(language.English),
	}
}

// Format returns the renderer's output format.
func (r *Renderer) Format() Format { return r.format }

func (r *Renderer) writeJSON(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *Renderer) printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...) //nolint:errcheck
}

func (r *Renderer) line(s string) {
	fmt.Fprintln(r.w, s) //nolint:errcheck
}

// currency formats a whole-dollar amount with thousands separators.
func (r *Renderer) currency(usd float64) string {
	return r.printer.Sprintf("$%.0f", usd)
}

// table writes rows under a styled header with columns padded to their
// display width. Columns listed in right are right-aligned.
func (r *Renderer) table(headers []string, rows [][]string, right ...int) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	alignRight := make([]bool, len(headers))
	for _, i := range right {
		alignRight[i] = true
	}
	format := func(cells []string) string {
		out := make([]string, len(cells))
		for i, c := range cells {
			if alignRight[i] {
				out[i] = padLeft(c, widths[i])
			} else {
				out[i] = padRight(c, widths[i])
			}
		}
		return strings.TrimRight(strings.Join(out, "  "), " ")
	}

	r.line(r.styles.header.Render(format(headers)))
	for _, row := range rows {
		r.line(format(row))
	}
}

// truncate shortens s to width display cells, ending in "…" when cut.
func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func padLeft(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return strings.Repeat(" ", width-sw) + s
}
