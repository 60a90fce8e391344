// ABOUTME: Compact stat block widget for the dashboard page
// ABOUTME: Renders a count with icon and label in a bordered panel

package widgets

import (
	"fmt"
	"strings"

	"github.com/chaitanya1270/blog-cli/internal/tui/icons"
	"github.com/chaitanya1270/blog-cli/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

// StatBlockConfig holds configuration for a stat block
type StatBlockConfig struct {
	Width       int
	BorderColor lipgloss.Color
	TitleColor  lipgloss.Color
	ValueColor  lipgloss.Color
}

// DefaultStatBlockConfig returns sensible defaults
func DefaultStatBlockConfig() StatBlockConfig {
	return StatBlockConfig{
		Width:       22,
		BorderColor: styles.Muted,
		TitleColor:  styles.Primary,
		ValueColor:  styles.Text,
	}
}

// StatBlock renders a compact stat display block with the title set
// into the top border
func StatBlock(icon icons.Icon, title string, value string, subtitle string, config StatBlockConfig) string {
	if config.Width <= 0 {
		config.Width = 22
	}

	// Inner width accounts for border + padding
	innerWidth := config.Width - 4

	titleStr := fmt.Sprintf("%s %s", icon.String(), title)
	if len(titleStr) > innerWidth {
		titleStr = titleStr[:innerWidth]
	}

	titleStyle := lipgloss.NewStyle().Foreground(config.TitleColor)

	topBorder := fmt.Sprintf("┌─ %s %s┐",
		titleStyle.Render(titleStr),
		strings.Repeat("─", max(0, innerWidth-len(titleStr)-1)))

	valueStyle := lipgloss.NewStyle().Foreground(config.ValueColor).Bold(true)
	valueLine := fmt.Sprintf("│  %s│", padCell(valueStyle.Render(truncate(value, innerWidth)), innerWidth))

	subtitleStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	subtitleLine := fmt.Sprintf("│  %s│", padCell(subtitleStyle.Render(truncate(subtitle, innerWidth)), innerWidth))

	bottomBorder := fmt.Sprintf("└%s┘", strings.Repeat("─", config.Width-2))

	borderStyle := lipgloss.NewStyle().Foreground(config.BorderColor)

	return strings.Join([]string{
		borderStyle.Render(topBorder),
		borderStyle.Render(valueLine),
		borderStyle.Render(subtitleLine),
		borderStyle.Render(bottomBorder),
	}, "\n")
}

// CountBlock renders a simple count stat (posts, comments)
func CountBlock(icon icons.Icon, title string, count int, label string, config StatBlockConfig) string {
	return StatBlock(icon, title, fmt.Sprintf("%d", count), label, config)
}

// padCell right-pads a possibly styled string to the given display
// width, measuring with lipgloss so ANSI escapes don't count
func padCell(s string, width int) string {
	return s + strings.Repeat(" ", max(0, width-lipgloss.Width(s)))
}

// truncate shortens a string to maxLen with ellipsis if needed
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
