/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/allbin/uartlog"
	"github.com/allbin/uartlog/internal/tui/components"
	"github.com/allbin/uartlog/internal/tui/styles"
)

// console prints pipeline progress as styled lines.
type console struct {
	w         io.Writer
	hexMode   bool
	formatter *components.DataFormatter
}

func newConsole(w io.Writer, hexMode bool) *console {
	return &console{
		w:         w,
		hexMode:   hexMode,
		formatter: components.NewDataFormatter(true, true),
	}
}

func (c *console) event(e uartlog.Event) {
	switch e.Kind {
	case uartlog.EventJournalOpened:
		if e.Existed {
			fmt.Fprintf(c.w, "%s %s exists.\n", styles.InfoStyle.Render(styles.GlyphInfo), e.Path)
		} else {
			fmt.Fprintf(c.w, "%s %s doesn't exist.\n", styles.InfoStyle.Render(styles.GlyphInfo), e.Path)
		}
	case uartlog.EventPortOpened:
		fmt.Fprintf(c.w, "%s Opened %s\n", styles.SuccessStyle.Render(styles.GlyphOK), e.Path)
	case uartlog.EventAttempt:
		if e.Attempt.Outcome == uartlog.OutcomeShort {
			fmt.Fprintf(c.w, "%s Partial read: %d bytes.\n", styles.WarnStyle.Render(styles.GlyphWarn), e.Attempt.Bytes)
		}
	case uartlog.EventPersisted:
		fmt.Fprintf(c.w, "%s Write %d bytes to %s\n", styles.InfoStyle.Render(styles.GlyphWrite), e.Bytes, e.Path)
		fmt.Fprintln(c.w, "Received message:")
		if c.hexMode {
			fmt.Fprintln(c.w, c.formatter.Body(e.Data))
		} else {
			fmt.Fprintln(c.w, string(e.Data))
		}
	case uartlog.EventEchoed:
		fmt.Fprintf(c.w, "%s Send message to %s.\n", styles.SuccessStyle.Render(styles.GlyphSend), e.Path)
	}
}
