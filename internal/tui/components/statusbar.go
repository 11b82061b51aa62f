package components

import (
	"fmt"

	"github.com/allbin/uartlog/internal/tui/colors"
	"github.com/allbin/uartlog/internal/tui/styles"
	"github.com/charmbracelet/lipgloss"
)

type ConnectionInfo struct {
	BaudRate  int
	Backend   string
	MinLength int
}

type StatusBar struct {
	portPath       string
	state          styles.ReceiveState
	attempts       int
	lastBytes      int
	err            error
	width          int
	connectionInfo *ConnectionInfo
}

func NewStatusBar(portPath string) *StatusBar {
	return &StatusBar{
		portPath: portPath,
		state:    styles.StateOpening,
	}
}

func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

func (sb *StatusBar) SetConnectionInfo(info *ConnectionInfo) {
	sb.connectionInfo = info
}

func (sb *StatusBar) SetState(state styles.ReceiveState) {
	sb.state = state
}

func (sb *StatusBar) State() styles.ReceiveState {
	return sb.state
}

// SetAttempt records the number and byte count of the latest read.
func (sb *StatusBar) SetAttempt(number, bytes int) {
	sb.attempts = number
	sb.lastBytes = bytes
}

func (sb *StatusBar) SetError(err error) {
	sb.err = err
	sb.state = styles.StateFailed
}

// Summary is the plain text status, without styling.
func (sb *StatusBar) Summary() string {
	if sb.err != nil {
		return fmt.Sprintf("failed: %v", sb.err)
	}
	if sb.attempts == 0 {
		return sb.state.String()
	}
	return fmt.Sprintf("%s, attempt %d, last read %d bytes", sb.state, sb.attempts, sb.lastBytes)
}

// View renders the full width status bar.
func (sb *StatusBar) View(timestamp string) string {
	terminalWidth := sb.width
	if terminalWidth <= 0 {
		terminalWidth = 80
	}

	// Section 1: State badge
	badge := lipgloss.NewStyle().
		Foreground(colors.Base).
		Background(styles.GetStateStyle(sb.state).GetForeground()).
		Bold(true).
		Padding(0, 1).
		Render(fmt.Sprintf("%-7s", sb.state))

	// Section 2: Port path
	port := lipgloss.NewStyle().
		Foreground(colors.Mauve).
		Bold(true).
		Padding(0, 1).
		Render(sb.portPath)

	// Section 3: Attempt counter
	attempt := lipgloss.NewStyle().
		Foreground(colors.Peach).
		Padding(0, 1).
		Render(fmt.Sprintf("#%d %dB", sb.attempts, sb.lastBytes))

	// Section 4: Line settings
	connInfo := "⚡ serial"
	if sb.connectionInfo != nil {
		connInfo = fmt.Sprintf("⚡ %d baud 8N1 %s ≥%dB",
			sb.connectionInfo.BaudRate,
			sb.connectionInfo.Backend,
			sb.connectionInfo.MinLength)
	}
	connectionDetails := lipgloss.NewStyle().
		Foreground(colors.Subtext0).
		Padding(0, 1).
		Render(connInfo)

	// Section 5: Timestamp
	clock := lipgloss.NewStyle().
		Foreground(colors.Subtext1).
		Padding(0, 1).
		Render(timestamp)

	divider := lipgloss.NewStyle().
		Foreground(colors.Surface2).
		Padding(0, 1).
		Render("│")

	leftSide := lipgloss.JoinHorizontal(lipgloss.Left, badge, port, attempt, divider)
	rightSide := lipgloss.JoinHorizontal(lipgloss.Left, connectionDetails, divider, clock)

	spacerWidth := terminalWidth - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")

	statusBarStyle := lipgloss.NewStyle().
		Foreground(colors.Text).
		Background(colors.Surface0).
		Width(terminalWidth)

	return statusBarStyle.Render(lipgloss.JoinHorizontal(lipgloss.Left, leftSide, spacer, rightSide))
}
