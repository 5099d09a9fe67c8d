package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Console messages mirror makepkg's "::" status lines
var (
	prefixStyle  = lipgloss.NewStyle().Bold(true)
	noticeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B"))
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444"))
)

var stdout io.Writer = os.Stdout

// notice prints a highlighted status line
func notice(msg string) {
	fmt.Fprintf(stdout, "%s %s\n", prefixStyle.Render("::"), noticeStyle.Render(msg))
}

// done prints the final success line
func done() {
	fmt.Fprintf(stdout, "%s %s\n", prefixStyle.Render("::"), successStyle.Render("Done."))
}

// PrintError prints err as the single error line of a failed run
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %s: %v\n", prefixStyle.Render("::"), errorStyle.Render("Error"), err)
}
