package styles

import (
	"github.com/allbin/uartlog/internal/tui/colors"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Header styles
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Mauve).
			Background(colors.Surface0).
			Padding(0, 1)

	// Console line styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(colors.Green).
			Bold(true)

	WarnStyle = lipgloss.NewStyle().
			Foreground(colors.Yellow).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colors.Red).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(colors.Mauve).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(colors.Subtext0)

	// Message body in the receive view
	MessageStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colors.Surface2).
			Padding(0, 1)

	// Table header for list --table
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colors.Mauve)
)

// Glyphs prefixed to console lines.
const (
	GlyphOK    = "✓"
	GlyphFail  = "✗"
	GlyphInfo  = "⚡"
	GlyphWarn  = "!"
	GlyphWrite = "📝"
	GlyphSend  = "📤"
)

// ReceiveState is the coarse state of a receive run.
type ReceiveState int

const (
	StateOpening ReceiveState = iota
	StateWaiting
	StatePartial
	StateDone
	StateFailed
)

func (s ReceiveState) String() string {
	switch s {
	case StateOpening:
		return "opening"
	case StateWaiting:
		return "waiting"
	case StatePartial:
		return "partial"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func GetStateStyle(state ReceiveState) lipgloss.Style {
	switch state {
	case StateOpening, StatePartial:
		return WarnStyle
	case StateWaiting:
		return InfoStyle
	case StateDone:
		return SuccessStyle
	default:
		return ErrorStyle
	}
}
