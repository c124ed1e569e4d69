package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Terminal styling for the result summary printed after a run. Stage
// progress goes through the charm logger; these helpers cover only the
// human-facing lines: one status line per analyzed input, one indented
// line per written artifact.
var (
	styleOK    = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	styleFail  = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))
	styleWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	styleNote  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleMuted = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	stylePath  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	styleSpin  = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
)

// printOK reports a completed analysis.
func printOK(format string, args ...any) {
	fmt.Println(styleOK.Render("✓") + " " + fmt.Sprintf(format, args...))
}

// printFail reports a failed input or command.
func printFail(format string, args ...any) {
	fmt.Println(styleFail.Render("✗") + " " + fmt.Sprintf(format, args...))
}

// printWarn reports a partial success, like a batch with skipped files.
func printWarn(format string, args ...any) {
	fmt.Println(styleWarn.Render("! " + fmt.Sprintf(format, args...)))
}

// printNote prints a secondary status line.
func printNote(format string, args ...any) {
	fmt.Println(styleNote.Render("›") + " " + fmt.Sprintf(format, args...))
}

// printArtifact prints one written output file under its run line.
func printArtifact(kind, path string) {
	fmt.Println("  " + styleMuted.Render(kind) + " " + stylePath.Render(path))
}

// printRun summarizes one analyzed input: graph size and whether the
// centrality scores were recomputed or served from the cache.
func printRun(nodes, edges int, cached bool) {
	freshness := "computed"
	if cached {
		freshness = "cached"
	}
	fmt.Println("  " + styleMuted.Render(fmt.Sprintf("%d nodes · %d edges · %s", nodes, edges, freshness)))
}
