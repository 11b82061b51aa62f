package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/allbin/uartlog/internal/tui/colors"
	"github.com/charmbracelet/lipgloss"
)

// Direction tells whether a message was received or echoed back.
type Direction int

const (
	RX Direction = iota
	TX
)

// Message is one line of traffic shown in the receive view or on the console.
type Message struct {
	Timestamp time.Time
	Data      []byte
	Direction Direction
}

type DisplayMode struct {
	ShowHex   bool
	ShowASCII bool
}

type DataFormatter struct {
	mode DisplayMode
}

func NewDataFormatter(showHex, showASCII bool) *DataFormatter {
	return &DataFormatter{
		mode: DisplayMode{
			ShowHex:   showHex,
			ShowASCII: showASCII,
		},
	}
}

func (df *DataFormatter) Mode() DisplayMode {
	return df.mode
}

func (df *DataFormatter) ToggleHex() {
	df.mode.ShowHex = !df.mode.ShowHex
}

// Hex renders data as space separated upper case hex bytes.
func Hex(data []byte) string {
	return fmt.Sprintf("% X", data)
}

// ASCII renders data with every non-printable byte replaced by a dot, so the
// result never carries terminal control sequences.
func ASCII(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data))
	for _, b := range data {
		if b >= 32 && b <= 126 {
			sb.WriteByte(b)
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// Body returns the unstyled payload part of a formatted message.
func (df *DataFormatter) Body(data []byte) string {
	var parts []string
	if df.mode.ShowHex {
		parts = append(parts, "HEX: "+Hex(data))
	}
	if df.mode.ShowASCII {
		parts = append(parts, "ASCII: "+ASCII(data))
	}
	// If both are disabled, show raw bytes count
	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("BYTES: %d", len(data)))
	}
	return strings.Join(parts, "  ")
}

func (df *DataFormatter) FormatMessage(msg Message) string {
	var indicator string
	if msg.Direction == TX {
		indicator = lipgloss.NewStyle().
			Foreground(colors.Peach).
			Bold(true).
			Render("↗ TX")
	} else {
		indicator = lipgloss.NewStyle().
			Foreground(colors.Sky).
			Bold(true).
			Render("↙ RX")
	}

	timestamp := lipgloss.NewStyle().
		Foreground(colors.Subtext0).
		Render(fmt.Sprintf("[%s]", msg.Timestamp.Format("15:04:05.000")))

	return fmt.Sprintf("%s %s: %s", timestamp, indicator, df.Body(msg.Data))
}
