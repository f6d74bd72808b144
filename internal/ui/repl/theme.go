package repl

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/longkey1/chatc/internal/chatc"
	"github.com/longkey1/chatc/internal/chatc/config"
)

// Theme holds the styles used to render the conversation
type Theme struct {
	Name      string
	User      lipgloss.Style
	Assistant lipgloss.Style
	Info      lipgloss.Style
	Typing    lipgloss.Style
}

// NewTheme returns the named theme; anything other than "dark" is light.
func NewTheme(name string) Theme {
	if name == config.ThemeDark {
		return Theme{
			Name:      config.ThemeDark,
			User:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C4B5FD")),
			Assistant: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6EE7B7")),
			Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
			Typing:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#93C5FD")),
		}
	}
	return Theme{
		Name:      config.ThemeLight,
		User:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6D28D9")),
		Assistant: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#047857")),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("#4B5563")),
		Typing:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("#2563EB")),
	}
}

// Toggle returns the opposite theme
func (t Theme) Toggle() Theme {
	if t.Name == config.ThemeDark {
		return NewTheme(config.ThemeLight)
	}
	return NewTheme(config.ThemeDark)
}

// RenderMessage renders a single message as "<Label>> <text>"
func (t Theme) RenderMessage(m chatc.Message) string {
	label := m.Label() + "> "
	if m.Role == chatc.RoleAssistant {
		return t.Assistant.Render(label) + m.Text
	}
	return t.User.Render(label) + m.Text
}
