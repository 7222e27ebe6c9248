package render

import "github.com/charmbracelet/lipgloss"

// Theme holds the styles used by the renderer. Two built-in themes
// exist: "default" (colored) and "mono" (no color, for pipes and
// colorless terminals).
type Theme struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Done      lipgloss.Style
	Pending   lipgloss.Style
	Available lipgloss.Style
	Blocked   lipgloss.Style
	Muted     lipgloss.Style
	Box       lipgloss.Style
	BarFill   lipgloss.Style
	BarEmpty  lipgloss.Style
}

// Colors shared by the default theme.
var (
	primaryColor = lipgloss.Color("#A78BFA") // Purple
	greenColor   = lipgloss.Color("#10B981") // Green
	amberColor   = lipgloss.Color("#F59E0B") // Amber
	redColor     = lipgloss.Color("#F87171") // Red
	mutedColor   = lipgloss.Color("#9CA3AF") // Gray
	borderColor  = lipgloss.Color("#6B7280") // Gray
)

// DefaultTheme returns the colored theme.
func DefaultTheme() Theme {
	return Theme{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor),
		Subtitle: lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true),
		Done:      lipgloss.NewStyle().Foreground(greenColor),
		Pending:   lipgloss.NewStyle().Foreground(mutedColor),
		Available: lipgloss.NewStyle().Foreground(amberColor).Bold(true),
		Blocked:   lipgloss.NewStyle().Foreground(redColor),
		Muted:     lipgloss.NewStyle().Foreground(mutedColor),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1),
		BarFill:  lipgloss.NewStyle().Foreground(greenColor),
		BarEmpty: lipgloss.NewStyle().Foreground(borderColor),
	}
}

// MonoTheme returns a theme with no color or emphasis, suitable for
// redirected output.
func MonoTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Title:     plain,
		Subtitle:  plain,
		Done:      plain,
		Pending:   plain,
		Available: plain,
		Blocked:   plain,
		Muted:     plain,
		Box: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1),
		BarFill:  plain,
		BarEmpty: plain,
	}
}

// ThemeByName maps a configured theme name to a Theme, defaulting to
// the colored theme for unknown names.
func ThemeByName(name string) Theme {
	if name == "mono" {
		return MonoTheme()
	}
	return DefaultTheme()
}
