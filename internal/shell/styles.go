package shell

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#CCCCCC"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"}
	AccentColor        = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#54A0FF"}
	BorderColor        = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor)

	menuItemStyle = lipgloss.NewStyle().
			Foreground(TextPrimaryColor).
			PaddingLeft(2)

	selectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(AccentColor)

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextPrimaryColor)

	hintStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)

	successStyle = lipgloss.NewStyle().
			Foreground(StatusSuccessColor)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(StatusErrorColor)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextPrimaryColor)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	paneTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextMutedColor)
)

// logLineStyle colors a log entry by its level tag.
func logLineStyle(entry string) lipgloss.Style {
	switch {
	case strings.Contains(entry, "[ERROR]"):
		return lipgloss.NewStyle().Foreground(StatusErrorColor)
	case strings.Contains(entry, "[WARN]"):
		return lipgloss.NewStyle().Foreground(StatusWarningColor)
	case strings.Contains(entry, "[INFO]"):
		return lipgloss.NewStyle().Foreground(TextPrimaryColor)
	default:
		return lipgloss.NewStyle().Foreground(TextMutedColor)
	}
}
