// Package report renders formation results for people and for machines.
package report

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#A78BFA") // Purple
	goodColor    = lipgloss.Color("#10B981") // Green
	warnColor    = lipgloss.Color("#F59E0B") // Amber
	mutedColor   = lipgloss.Color("#9CA3AF") // Gray
	borderColor  = lipgloss.Color("#6B7280") // Gray
)

// Styles holds the lipgloss styles used by a Printer.
type Styles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Label  lipgloss.Style
	Muted  lipgloss.Style
	Good   lipgloss.Style
	Warn   lipgloss.Style
	Rule   lipgloss.Style
}

// ColorStyles returns the styles used on color terminals.
func ColorStyles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(primaryColor),
		Header: lipgloss.NewStyle().Bold(true),
		Label:  lipgloss.NewStyle().Foreground(primaryColor),
		Muted:  lipgloss.NewStyle().Foreground(mutedColor),
		Good:   lipgloss.NewStyle().Foreground(goodColor),
		Warn:   lipgloss.NewStyle().Foreground(warnColor),
		Rule:   lipgloss.NewStyle().Foreground(borderColor),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:  plain,
		Header: plain,
		Label:  plain,
		Muted:  plain,
		Good:   plain,
		Warn:   plain,
		Rule:   plain,
	}
}
