package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#0f172a")
	Mantle   = lipgloss.Color("#1e293b")
	Surface0 = lipgloss.Color("#334155")
	Surface1 = lipgloss.Color("#475569")
	Text     = lipgloss.Color("#e2e8f0")
	Subtext0 = lipgloss.Color("#94a3b8")
	Violet   = lipgloss.Color("#a78bfa")
	Cyan     = lipgloss.Color("#22d3ee")
	Green    = lipgloss.Color("#4ade80")
	Amber    = lipgloss.Color("#fbbf24")
	Red      = lipgloss.Color("#f87171")

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Violet)

	Title = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Violet).Bold(true)
	Good  = lipgloss.NewStyle().Foreground(Green)
	Warn  = lipgloss.NewStyle().Foreground(Amber)
	Bad   = lipgloss.NewStyle().Foreground(Red)
)
