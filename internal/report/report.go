// Package report renders verification verdicts for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/wavecheck/internal/verify"
)

var (
	green = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	red   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	cyan  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dim   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// Render returns a styled per-wave summary with the aggregate verdict.
func Render(v *verify.Verdict) string {
	var b strings.Builder

	for _, w := range v.Waves {
		mark := green.Render("ok")
		if !w.Passed {
			mark = red.Render("FAIL")
		}
		b.WriteString(fmt.Sprintf("  %-16s %s  %s\n",
			cyan.Render(w.Wave.String()),
			mark,
			dim.Render(fmt.Sprintf("ratio %.4f bound %.4f", w.Ratio, w.Bound)),
		))
	}

	if v.Passed {
		b.WriteString(green.Render("PASS") + ": all wave families converged\n")
	} else {
		b.WriteString(red.Render("FAIL") + ": " + failureSummary(v) + "\n")
	}
	return b.String()
}

func failureSummary(v *verify.Verdict) string {
	var failed []string
	for _, w := range v.Waves {
		if !w.Passed {
			failed = append(failed, w.Wave.String())
		}
	}
	return "convergence below cutoff for " + strings.Join(failed, ", ")
}

// WriteTable emits the full diagnostic record as an aligned table.
func WriteTable(out io.Writer, v *verify.Verdict) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WAVE\tERR_LOW\tERR_HIGH\tRATIO\tBOUND\tRESULT")
	for _, r := range v.Waves {
		result := "pass"
		if !r.Passed {
			result = "fail"
		}
		fmt.Fprintf(w, "%s\t%.6e\t%.6e\t%.4f\t%.4f\t%s\n",
			r.Wave, r.ErrLow, r.ErrHigh, r.Ratio, r.Bound, result)
	}
	return w.Flush()
}

// Ratios extracts the per-wave error ratios in report order, for plotting.
func Ratios(v *verify.Verdict) []float64 {
	out := make([]float64, len(v.Waves))
	for i, w := range v.Waves {
		out[i] = w.Ratio
	}
	return out
}
