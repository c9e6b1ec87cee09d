package display

import "github.com/charmbracelet/lipgloss"

// ── Styles ───────────────────────────────────────────────────────

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#52525b")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c4b5fd")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	moneyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a")).
			Bold(true)

	calmStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	hurryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	urgentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8")).
			Italic(true)

	flavorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd")).
			Italic(true)

	hereStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f0abfc")).
			Bold(true)

	// BannerStyle is the muted purple of the title art.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a78bfa"))
)
