// Package cli implements the dod command-line interface: a thin transport
// layer over internal/engine, internal/exoskeleton, and internal/pipeline.
// Inputs are validated by the core; this package only parses flags and
// renders results.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/seanchatmangpt/uvmgr-sub002/internal/engine"
	"github.com/seanchatmangpt/uvmgr-sub002/internal/validator"
)

var (
	stylePass = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	styleFail = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	styleDim  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	styleBold = lipgloss.NewStyle().Bold(true)
)

// colorEnabled mirrors the teacher's terminal-capability checks: only
// colorize when stdout is a real TTY.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// terminalWidth returns the current terminal width, falling back to 100
// columns when it cannot be determined (redirected output, CI runners).
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 100
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 100
	}
	return width
}

// RenderReport writes a human-readable AutomationReport table to w.
func RenderReport(w io.Writer, report engine.AutomationReport) {
	colored := colorEnabled(w)

	fmt.Fprintf(w, "%s\n\n", label("Definition of Done Report", styleBold, colored))

	for _, cr := range report.Results {
		marker := passMarker(cr.Result, colored)
		fmt.Fprintf(w, "  %s %-16s score=%-6.1f weight=%-5.2f outcome=%s\n",
			marker, cr.Spec.ID, cr.Result.Score, cr.Spec.Weight, cr.Result.Outcome)
		if cr.Result.Details != "" {
			fmt.Fprintf(w, "      %s\n", label(cr.Result.Details, styleDim, colored))
		}
		for _, fix := range cr.Result.FixSuggestions {
			fmt.Fprintf(w, "      fix: %s\n", label(fix, styleDim, colored))
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "overall_score: %.1f\n", report.OverallScore)
	for _, tier := range []string{"critical", "important", "optional"} {
		if score, ok := report.TierScores[tier]; ok {
			fmt.Fprintf(w, "%s_score: %.1f\n", tier, score)
		}
	}
	fmt.Fprintf(w, "success: %s\n", label(fmt.Sprintf("%t", report.Success), successStyle(report.Success, colored), colored))
}

func passMarker(res validator.Result, colored bool) string {
	if res.Outcome == validator.OutcomeOK && res.Passed {
		return label("PASS", stylePass, colored)
	}
	return label("FAIL", styleFail, colored)
}

func successStyle(success bool, colored bool) lipgloss.Style {
	if success {
		return stylePass
	}
	return styleFail
}

func label(text string, style lipgloss.Style, colored bool) string {
	if !colored {
		return text
	}
	return style.Render(text)
}
