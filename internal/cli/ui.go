package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
)

// checkSummary formats the one-line result of a check run.
func checkSummary(path string, warningCount int) string {
	if warningCount == 0 {
		return fmt.Sprintf("%s %s", styleSuccess.Render("ok"), styleDim.Render(path))
	}
	return fmt.Sprintf("%s %s",
		styleWarning.Render(fmt.Sprintf("ok with %d warning(s)", warningCount)),
		styleDim.Render(path))
}
