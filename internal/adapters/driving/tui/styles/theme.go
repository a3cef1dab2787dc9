// Package styles holds the TUI palette and the lipgloss styles built on it.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Cosine similarity bands for colouring job matches.
const (
	StrongMatch = 0.6
	WeakMatch   = 0.3
)

// Theme is the palette. Each colour carries a light and a dark variant;
// lipgloss picks one from the terminal background.
type Theme struct {
	Accent  lipgloss.AdaptiveColor
	Source  lipgloss.AdaptiveColor
	Text    lipgloss.AdaptiveColor
	Dim     lipgloss.AdaptiveColor
	Strong  lipgloss.AdaptiveColor
	Partial lipgloss.AdaptiveColor
	Weak    lipgloss.AdaptiveColor
	Frame   lipgloss.AdaptiveColor
	Bar     lipgloss.AdaptiveColor
}

func adaptive(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// DefaultTheme is blue and teal on either background.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:  adaptive("#1D4ED8", "#60A5FA"),
		Source:  adaptive("#0F766E", "#2DD4BF"),
		Text:    adaptive("#111827", "#E5E7EB"),
		Dim:     adaptive("#6B7280", "#9CA3AF"),
		Strong:  adaptive("#15803D", "#4ADE80"),
		Partial: adaptive("#A16207", "#FACC15"),
		Weak:    adaptive("#B91C1C", "#F87171"),
		Frame:   adaptive("#D1D5DB", "#374151"),
		Bar:     adaptive("#F3F4F6", "#111827"),
	}
}

// Styles are the rendered building blocks shared by every view.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style

	InputField   lipgloss.Style
	FocusedInput lipgloss.Style

	StatusBar lipgloss.Style
	Help      lipgloss.Style
	Border    lipgloss.Style

	// Source labels the file a job chunk came from.
	Source lipgloss.Style

	// MenuItem and MenuCursor render the main menu rows.
	MenuItem   lipgloss.Style
	MenuCursor lipgloss.Style
}

// NewStyles builds styles from t, or from DefaultTheme when t is nil.
func NewStyles(t *Theme) *Styles {
	if t == nil {
		t = DefaultTheme()
	}
	text := lipgloss.NewStyle().Foreground(t.Text)
	framed := lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).Padding(0, 1)

	return &Styles{
		theme: t,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(t.Source),
		Normal:   text,
		Muted:    lipgloss.NewStyle().Foreground(t.Dim),
		Selected: text.Bold(true).Background(t.Accent),
		Error:    lipgloss.NewStyle().Foreground(t.Weak),
		Success:  lipgloss.NewStyle().Foreground(t.Strong),
		Warning:  lipgloss.NewStyle().Foreground(t.Partial),

		InputField:   framed.BorderForeground(t.Frame),
		FocusedInput: framed.BorderForeground(t.Accent),

		StatusBar: lipgloss.NewStyle().Foreground(t.Dim).Background(t.Bar).Padding(0, 1),
		Help:      lipgloss.NewStyle().Foreground(t.Dim),
		Border:    lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(t.Frame),

		Source: lipgloss.NewStyle().Italic(true).Foreground(t.Source),

		MenuItem:   text,
		MenuCursor: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
	}
}

// DefaultStyles is NewStyles(DefaultTheme()).
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette behind s.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Score picks the colour for a similarity score: strong matches green,
// middling ones yellow, the rest red.
func (s *Styles) Score(score float64) lipgloss.Style {
	switch {
	case score >= StrongMatch:
		return s.Success
	case score >= WeakMatch:
		return s.Warning
	default:
		return s.Error
	}
}
