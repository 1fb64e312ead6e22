package tui

import "github.com/charmbracelet/lipgloss"

// Colors - medical blue/green palette matching the MedicalHope branding
const (
	colorBg        = "#0F172A" // Slate 900
	colorBgCard    = "#1E293B" // Slate 800
	colorFg        = "#F8FAFC" // Slate 50
	colorFgMuted   = "#94A3B8" // Slate 400
	colorPrimary   = "#0EA5E9" // Sky 500
	colorSecondary = "#10B981" // Emerald 500
	colorWarning   = "#F59E0B" // Amber 500
	colorError     = "#EF4444" // Red 500
	colorBorder    = "#334155" // Slate 700
	colorUserMsg   = "#0EA5E9" // Sky 500
	colorBotMsg    = "#10B981" // Emerald 500
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorFg)).
			Background(lipgloss.Color(colorBgCard)).
			Padding(0, 2)

	headerBadgeStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(colorPrimary)).
				Background(lipgloss.Color(colorBgCard)).
				Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorPrimary))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorFgMuted))

	cardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorFg)).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(0, 2)

	cardValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorSecondary))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorFgMuted))

	focusedLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(colorPrimary))

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorBorder)).
			Padding(0, 1)

	inputFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(colorPrimary)).
				Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorError))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorSecondary))

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorPrimary)).
			Padding(1, 3)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorFgMuted)).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorFgMuted)).
			Padding(0, 2)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorPrimary)).
			Padding(0, 2).
			Underline(true)

	userMessageStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(colorUserMsg))

	botMessageStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorBotMsg))

	chatPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorPrimary)).
			Padding(0, 1)

	badgeScheduledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(colorPrimary))

	badgeDoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorSecondary))

	badgeCancelledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(colorError))
)

func statusBadge(status string) string {
	switch status {
	case "scheduled":
		return badgeScheduledStyle.Render("Đã lên lịch")
	case "completed":
		return badgeDoneStyle.Render("Hoàn thành")
	case "cancelled":
		return badgeCancelledStyle.Render("Đã hủy")
	default:
		return labelStyle.Render(status)
	}
}
