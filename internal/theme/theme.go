package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Title        *lipgloss.Style
	Clock        *lipgloss.Style
	LinkUp       *lipgloss.Style
	LinkDown     *lipgloss.Style
	LinkUnknown  *lipgloss.Style
	Panel        *lipgloss.Style
	PanelFocused *lipgloss.Style
	PanelTitle   *lipgloss.Style
	Timestamp    *lipgloss.Style
	Entry        *lipgloss.Style
	SelectedRow  *lipgloss.Style
	Placeholder  *lipgloss.Style
	Prompt       *lipgloss.Style
	Input        *lipgloss.Style
	Cursor       *lipgloss.Style
	Help         *lipgloss.Style
	HelpKey      *lipgloss.Style
	Error        *lipgloss.Style
}

var defaultStyles = Styles{
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	Clock: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	LinkUp: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	LinkDown: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	LinkUnknown: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Panel: ptr(
		lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("238")),
	),
	PanelFocused: ptr(
		lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("33")),
	),
	PanelTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Timestamp: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Entry: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedRow: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Placeholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	Prompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Input: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
	),
	Help: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	HelpKey: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
