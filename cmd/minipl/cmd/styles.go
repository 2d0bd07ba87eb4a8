package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	mdwerrors "github.com/msto63/minipl/foundation/core/errors"
	"github.com/msto63/minipl/foundation/minipl"
)

var (
	colorError   = lipgloss.Color("#EF4444")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#8B5CF6")

	errorLabelStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(colorSuccess).
		Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	headerStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)
)

// statusStyle picks the style used to render a run status
func statusStyle(status string) lipgloss.Style {
	switch status {
	case minipl.StatusOK:
		return okStyle
	case mdwerrors.CategoryInternal:
		return warnStyle
	default:
		return errorLabelStyle
	}
}

// printError writes a diagnostic to stderr. Program errors are labelled
// with their category, everything else as a plain error.
func printError(err error) {
	label := "error"
	if mdwerrors.IsProgramError(err) {
		label = mdwerrors.Category(err) + " error"
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", errorLabelStyle.Render(label+":"), mdwerrors.Message(err))
}
