package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/allbin/uartlog"
	"github.com/allbin/uartlog/internal/tui/components"
	"github.com/allbin/uartlog/internal/tui/keys"
	"github.com/allbin/uartlog/internal/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// EventMsg carries a pipeline event into the program.
type EventMsg struct {
	Event uartlog.Event
}

// DoneMsg reports that the pipeline returned.
type DoneMsg struct {
	Result *uartlog.Result
	Err    error
}

// ReceiveModel is the live view of a single receive-log-echo run.
type ReceiveModel struct {
	device         string
	journal        string
	journalExisted bool
	journalKnown   bool

	statusBar *components.StatusBar
	formatter *components.DataFormatter
	spinner   spinner.Model
	help      help.Model
	keys      keys.ReceiveKeys

	messages []components.Message
	result   *uartlog.Result
	err      error
	done     bool
	quitting bool

	cancel context.CancelFunc
	now    func() time.Time
}

// NewReceiveModel returns a model for the given settings. cancel is called
// when the user quits, which aborts a pipeline still waiting for data.
func NewReceiveModel(settings uartlog.Settings, showHex bool, cancel context.CancelFunc) *ReceiveModel {
	sb := components.NewStatusBar(settings.Device)
	sb.SetConnectionInfo(&components.ConnectionInfo{
		BaudRate:  settings.BaudRate,
		Backend:   settings.Backend,
		MinLength: settings.MinLength,
	})

	return &ReceiveModel{
		device:    settings.Device,
		journal:   settings.LogFile,
		statusBar: sb,
		formatter: components.NewDataFormatter(showHex, true),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.InfoStyle)),
		help:      help.New(),
		keys:      keys.NewReceiveKeys(),
		cancel:    cancel,
		now:       time.Now,
	}
}

func (m *ReceiveModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *ReceiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.statusBar.SetWidth(msg.Width)
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.ToggleHex):
			m.formatter.ToggleHex()
		}

	case EventMsg:
		m.handleEvent(msg.Event)

	case DoneMsg:
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		if msg.Err != nil {
			m.statusBar.SetError(msg.Err)
		} else {
			m.statusBar.SetState(styles.StateDone)
		}

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *ReceiveModel) handleEvent(e uartlog.Event) {
	switch e.Kind {
	case uartlog.EventJournalOpened:
		m.journal = e.Path
		m.journalExisted = e.Existed
		m.journalKnown = true
	case uartlog.EventPortOpened:
		m.statusBar.SetState(styles.StateWaiting)
	case uartlog.EventAttempt:
		m.statusBar.SetAttempt(e.Attempt.Number, e.Attempt.Bytes)
		if e.Attempt.Outcome == uartlog.OutcomeShort {
			m.statusBar.SetState(styles.StatePartial)
		} else {
			m.statusBar.SetState(styles.StateWaiting)
		}
	case uartlog.EventPersisted:
		m.messages = append(m.messages, components.Message{Timestamp: m.now(), Data: e.Data, Direction: components.RX})
	case uartlog.EventEchoed:
		m.messages = append(m.messages, components.Message{Timestamp: m.now(), Data: e.Data, Direction: components.TX})
	}
}

// Done reports whether the pipeline has returned.
func (m *ReceiveModel) Done() bool {
	return m.done
}

// Quitting reports whether the user asked to quit.
func (m *ReceiveModel) Quitting() bool {
	return m.quitting
}

func (m *ReceiveModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("uartlog " + m.device))
	b.WriteString("\n\n")

	if m.journalKnown {
		state := "doesn't exist"
		if m.journalExisted {
			state = "exists"
		}
		b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("%s %s.", m.journal, state)))
		b.WriteString("\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(styles.ErrorStyle.Render(styles.GlyphFail) + " " + m.statusBar.Summary())
	case m.done:
		b.WriteString(styles.SuccessStyle.Render(styles.GlyphOK) + " " + m.summary())
	default:
		b.WriteString(m.spinner.View() + " " + m.statusBar.Summary())
	}
	b.WriteString("\n\n")

	if len(m.messages) > 0 {
		lines := make([]string, len(m.messages))
		for i, msg := range m.messages {
			lines[i] = m.formatter.FormatMessage(msg)
		}
		b.WriteString(styles.MessageStyle.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, b.String(), m.statusBar.View(m.now().Format("15:04:05")))
}

func (m *ReceiveModel) summary() string {
	if m.result == nil {
		return "done"
	}
	return fmt.Sprintf("received %d bytes, echoed %d bytes after %d attempt(s)",
		m.result.Bytes, m.result.Echoed, m.result.Attempts)
}
